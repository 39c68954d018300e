package jsonforms

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrUnknownField   = errors.New("form has no input with that name")
	ErrFormNotFound   = errors.New("form not found")
	ErrBodyNotAllowed = errors.New("request method cannot carry a body")
	ErrNoFormsOnPage  = errors.New("page has no forms")
)

// InvalidNumberError is returned when a number input does not hold an integer.
type InvalidNumberError struct {
	Field string
	Value string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("field %q: %q is not an integer", e.Field, e.Value)
}

type Input struct {
	Name  string
	ID    string
	Type  string
	Value string
}

type Form struct {
	// position of the form among the page's forms
	Index  int
	ID     string
	Action *url.URL
	Method string
	Inputs []Input
}

// ParseForms reads every <form> of doc in document order. pageURL is the
// address the document was loaded from, form actions are resolved against it.
func ParseForms(doc *goquery.Document, pageURL *url.URL) ([]*Form, error) {
	var forms []*Form
	var parseErr error
	doc.Find("form").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		form, err := ParseForm(sel, pageURL)
		if err != nil {
			parseErr = fmt.Errorf("form %d: %w", i, err)
			return false
		}
		form.Index = i
		forms = append(forms, form)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return forms, nil
}

// ParseForm reads a single <form> selection.
func ParseForm(sel *goquery.Selection, pageURL *url.URL) (*Form, error) {
	action, err := resolveAction(sel.AttrOr("action", ""), pageURL)
	if err != nil {
		return nil, err
	}

	form := &Form{
		ID:     sel.AttrOr("id", ""),
		Action: action,
		Method: formMethod(sel),
	}
	sel.Find("input").Each(func(_ int, input *goquery.Selection) {
		inputType := strings.ToLower(strings.TrimSpace(input.AttrOr("type", "")))
		if inputType == "" {
			inputType = "text"
		}
		form.Inputs = append(form.Inputs, Input{
			Name:  input.AttrOr("name", ""),
			ID:    input.AttrOr("id", ""),
			Type:  inputType,
			Value: input.AttrOr("value", ""),
		})
	})
	return form, nil
}

// data-method wins over method since html forms can only declare GET and POST.
func formMethod(sel *goquery.Selection) string {
	method := strings.TrimSpace(sel.AttrOr("data-method", ""))
	if method == "" {
		method = strings.TrimSpace(sel.AttrOr("method", ""))
	}
	if method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(method)
}

func resolveAction(action string, pageURL *url.URL) (*url.URL, error) {
	action = strings.TrimSpace(action)
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	if action == "" {
		out := *pageURL
		out.Fragment = ""
		return &out, nil
	}
	ref, err := url.Parse(action)
	if err != nil {
		return nil, fmt.Errorf("parse action %q: %w", action, err)
	}
	return pageURL.ResolveReference(ref), nil
}

// FindForm picks a form either by its position ("0", "1", ...) or by its id
// attribute (with or without a leading "#"). an empty ref selects the first form.
func FindForm(forms []*Form, ref string) (*Form, error) {
	if len(forms) == 0 {
		return nil, ErrNoFormsOnPage
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return forms[0], nil
	}
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 0 || i >= len(forms) {
			return nil, fmt.Errorf("%w: index %d of %d", ErrFormNotFound, i, len(forms))
		}
		return forms[i], nil
	}
	id := strings.TrimPrefix(ref, "#")
	for _, f := range forms {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: #%s", ErrFormNotFound, id)
}

// Set overwrites the value of every input named `name`.
func (f *Form) Set(name, value string) error {
	found := false
	for i := range f.Inputs {
		if f.Inputs[i].Name == name {
			f.Inputs[i].Value = value
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Payload keys each named input by its name attribute in document order,
// inputs without a name are skipped. number inputs must hold a base 10
// integer.
func (f *Form) Payload() (*Payload, error) {
	payload := NewPayload()
	for _, input := range f.Inputs {
		if input.Name == "" {
			continue
		}
		if input.Type != "number" {
			payload.Set(input.Name, String(input.Value))
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(input.Value), 10, 64)
		if err != nil {
			return nil, &InvalidNumberError{Field: input.Name, Value: input.Value}
		}
		payload.Set(input.Name, Int(n))
	}
	return payload, nil
}

// Request describes the HTTP call a form submission makes.
type Request struct {
	URL    *url.URL
	Method string
	Body   []byte
	Header http.Header
}

// Request builds the JSON request for the form's current values.
func (f *Form) Request() (Request, error) {
	if f.Method == http.MethodGet || f.Method == http.MethodHead {
		return Request{}, fmt.Errorf("%w: %s", ErrBodyNotAllowed, f.Method)
	}
	payload, err := f.Payload()
	if err != nil {
		return Request{}, err
	}
	body, err := payload.MarshalJSON()
	if err != nil {
		return Request{}, err
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return Request{
		URL:    f.Action,
		Method: f.Method,
		Body:   body,
		Header: header,
	}, nil
}
