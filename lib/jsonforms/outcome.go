package jsonforms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var ErrMalformedBody = errors.New("response body is not valid json")

type Kind int

const (
	Ignored Kind = iota
	Redirect
	Reload
	Data
)

func (k Kind) String() string {
	switch k {
	case Redirect:
		return "redirect"
	case Reload:
		return "reload"
	case Data:
		return "data"
	default:
		return "ignored"
	}
}

// Outcome is what the client should do after a form submission.
type Outcome struct {
	Kind   Kind
	Status int
	// set when Kind == Redirect
	Location *url.URL
	// set when Kind == Data
	Data json.RawMessage
}

// Reply is the part of an HTTP response Interpret looks at.
type Reply struct {
	Status int
	Header http.Header
	Body   []byte
}

// StatusError is returned for non-2xx replies that neither redirect nor
// ask for a reload.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.Status)
	if e.Body == "" {
		return fmt.Sprintf("request failed: %d %s", e.Status, text)
	}
	return fmt.Sprintf("request failed: %d %s: %s", e.Status, text, e.Body)
}

// Interpret decides what a reply means. a Location header always wins,
// then 205 Reset Content, then a JSON body on a 2xx. relative locations are
// resolved against requestURL.
func Interpret(requestURL *url.URL, reply Reply) (Outcome, error) {
	out := Outcome{Kind: Ignored, Status: reply.Status}

	if location := strings.TrimSpace(reply.Header.Get("Location")); location != "" {
		ref, err := url.Parse(location)
		if err != nil {
			return out, fmt.Errorf("parse location %q: %w", location, err)
		}
		if requestURL != nil {
			ref = requestURL.ResolveReference(ref)
		}
		out.Kind = Redirect
		out.Location = ref
		return out, nil
	}

	if reply.Status == http.StatusResetContent {
		out.Kind = Reload
		return out, nil
	}

	if reply.Status < 200 || reply.Status > 299 {
		return out, &StatusError{
			Status: reply.Status,
			Body:   strings.TrimSpace(string(reply.Body)),
		}
	}

	body := bytes.TrimSpace(reply.Body)
	if len(body) == 0 {
		return out, nil
	}
	if !json.Valid(body) {
		return out, ErrMalformedBody
	}
	out.Kind = Data
	out.Data = json.RawMessage(body)
	return out, nil
}

// Handler performs the side effect an Outcome asks for.
type Handler interface {
	Redirect(ctx context.Context, location *url.URL) error
	Reload(ctx context.Context) error
	Data(ctx context.Context, data json.RawMessage) error
}

// HandlerFuncs adapts plain functions to Handler, nil functions are no-ops.
type HandlerFuncs struct {
	OnRedirect func(ctx context.Context, location *url.URL) error
	OnReload   func(ctx context.Context) error
	OnData     func(ctx context.Context, data json.RawMessage) error
}

func (h HandlerFuncs) Redirect(ctx context.Context, location *url.URL) error {
	if h.OnRedirect == nil {
		return nil
	}
	return h.OnRedirect(ctx, location)
}

func (h HandlerFuncs) Reload(ctx context.Context) error {
	if h.OnReload == nil {
		return nil
	}
	return h.OnReload(ctx)
}

func (h HandlerFuncs) Data(ctx context.Context, data json.RawMessage) error {
	if h.OnData == nil {
		return nil
	}
	return h.OnData(ctx, data)
}

// Dispatch hands the outcome to the matching Handler method.
func Dispatch(ctx context.Context, outcome Outcome, handler Handler) error {
	switch outcome.Kind {
	case Redirect:
		return handler.Redirect(ctx, outcome.Location)
	case Reload:
		return handler.Reload(ctx)
	case Data:
		return handler.Data(ctx, outcome.Data)
	}
	return nil
}
