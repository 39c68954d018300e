// Package webpage loads HTML documents from disk or over HTTP so that forms
// and league pages can be driven outside a browser.
package webpage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("tennisleagues/lib/webpage")

type Page struct {
	Doc *goquery.Document
	// the address relative links on the page resolve against
	URL *url.URL
}

// HTML renders the whole document back to markup.
func (p Page) HTML() (string, error) {
	return goquery.OuterHtml(p.Doc.Selection)
}

type Loader struct {
	http *resty.Client
	base *url.URL
}

// NewLoader returns a loader whose relative references resolve against base.
// pages read from disk are treated as if they had been served from base.
func NewLoader(client *resty.Client, base *url.URL) *Loader {
	if base == nil {
		base = &url.URL{}
	}
	return &Loader{http: client, base: base}
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Load reads ref, which is either an http(s) URL or a path to an html file.
func (l *Loader) Load(ctx context.Context, ref string) (Page, error) {
	if isRemote(ref) {
		target, err := url.Parse(ref)
		if err != nil {
			return Page{}, err
		}
		return l.Fetch(ctx, target)
	}

	contents, err := os.ReadFile(ref)
	if err != nil {
		return Page{}, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(contents))
	if err != nil {
		return Page{}, fmt.Errorf("parse %s: %w", ref, err)
	}
	pageURL := *l.base
	return Page{Doc: doc, URL: &pageURL}, nil
}

// Fetch performs a GET for target (resolved against the base) and parses
// the response as html.
func (l *Loader) Fetch(ctx context.Context, target *url.URL) (Page, error) {
	ctx, span := tracer.Start(ctx, "Loader:Fetch")
	defer span.End()

	target = l.base.ResolveReference(target)
	span.SetAttributes(attribute.String("page.url", target.String()))

	res, err := l.http.R().
		SetContext(ctx).
		Get(target.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return Page{}, err
	}
	if !res.IsSuccess() {
		err := fmt.Errorf("fetch %s: %s", target, res.Status())
		span.SetStatus(codes.Error, err.Error())
		return Page{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Page{}, err
	}

	pageURL := target
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		pageURL = res.RawResponse.Request.URL
	}
	return Page{Doc: doc, URL: pageURL}, nil
}
