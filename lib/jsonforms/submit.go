package jsonforms

import (
	"context"
	"fmt"
	"log/slog"

	"tennisleagues/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("tennisleagues/lib/jsonforms")

type Submitter struct {
	http *resty.Client
}

// NewSubmitter wraps client, which must not follow redirects on its own
// (see restyutil.NoFollowPolicy), otherwise Redirect outcomes are never seen.
func NewSubmitter(client *resty.Client) *Submitter {
	if client == nil {
		client = restyutil.NewClient(restyutil.ClientOptions{
			TracerName: "tennisleagues/jsonforms/http",
		})
	}
	return &Submitter{http: client}
}

// Submit sends the form's JSON request and interprets the reply.
func (s *Submitter) Submit(ctx context.Context, form *Form) (Outcome, error) {
	req, err := form.Request()
	if err != nil {
		return Outcome{}, err
	}
	return s.Send(ctx, req)
}

// Send performs req. transport failures are logged and returned, there are
// no retries.
func (s *Submitter) Send(ctx context.Context, req Request) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "Submitter:Send")
	defer span.End()

	target := req.URL.String()
	span.SetAttributes(
		attribute.String("form.method", req.Method),
		attribute.String("form.action", target),
	)

	r := s.http.R().
		SetContext(ctx).
		SetBody(req.Body)
	for key, values := range req.Header {
		for _, v := range values {
			r.Header.Add(key, v)
		}
	}

	res, err := r.Execute(req.Method, target)
	if err != nil {
		slog.ErrorContext(ctx, "form submission failed", "method", req.Method, "url", target, "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send form")
		return Outcome{}, fmt.Errorf("submit %s %s: %w", req.Method, target, err)
	}

	outcome, err := Interpret(req.URL, Reply{
		Status: res.StatusCode(),
		Header: res.Header(),
		Body:   res.Body(),
	})
	span.SetAttributes(
		attribute.Int("form.status", res.StatusCode()),
		attribute.String("form.outcome", outcome.Kind.String()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected reply")
		return outcome, err
	}

	slog.DebugContext(ctx, "form submitted", "method", req.Method, "url", target, "status", res.StatusCode(), "outcome", outcome.Kind)
	return outcome, nil
}
