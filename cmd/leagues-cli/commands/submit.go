package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"tennisleagues/lib/jsonforms"
	"tennisleagues/lib/webpage"

	"github.com/spf13/cobra"
)

// parseAssignments splits each "key=value" pair at its first '='.
func parseAssignments(pairs []string) ([][2]string, error) {
	out := make([][2]string, 0, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected key=value", pair)
		}
		out = append(out, [2]string{strings.TrimSpace(key), value})
	}
	return out, nil
}

func writeOutcome(w io.Writer, outcome jsonforms.Outcome) {
	switch outcome.Kind {
	case jsonforms.Redirect:
		fmt.Fprintf(w, "%s %d -> %s\n", outcome.Kind, outcome.Status, outcome.Location)
	case jsonforms.Data:
		var buf bytes.Buffer
		if json.Indent(&buf, outcome.Data, "", "  ") != nil {
			buf.Reset()
			buf.Write(outcome.Data)
		}
		fmt.Fprintf(w, "%s %d\n%s\n", outcome.Kind, outcome.Status, buf.String())
	default:
		fmt.Fprintf(w, "%s %d\n", outcome.Kind, outcome.Status)
	}
}

func newSubmitCmd(a *app) *cobra.Command {
	var pageRef, formRef string
	var sets []string
	var follow bool

	cmd := &cobra.Command{
		Use:   "submit --page <file or url> [--form <index or id>] [--set key=value ...]",
		Short: "Fills in one of a page's forms and submits it as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			assignments, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			loader := a.loader()
			page, err := loader.Load(ctx, pageRef)
			if err != nil {
				return fmt.Errorf("load page: %w", err)
			}
			forms, err := jsonforms.ParseForms(page.Doc, page.URL)
			if err != nil {
				return err
			}
			form, err := jsonforms.FindForm(forms, formRef)
			if err != nil {
				return err
			}
			for _, kv := range assignments {
				err = form.Set(kv[0], kv[1])
				if err != nil {
					return err
				}
			}

			outcome, err := jsonforms.NewSubmitter(a.http).Submit(ctx, form)
			if err != nil {
				return err
			}
			writeOutcome(out, outcome)
			if !follow {
				return nil
			}

			writePage := func(p webpage.Page) error {
				markup, err := p.HTML()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, markup)
				return err
			}
			return jsonforms.Dispatch(ctx, outcome, jsonforms.HandlerFuncs{
				OnRedirect: func(ctx context.Context, location *url.URL) error {
					next, err := loader.Fetch(ctx, location)
					if err != nil {
						return err
					}
					return writePage(next)
				},
				OnReload: func(ctx context.Context) error {
					next, err := loader.Load(ctx, pageRef)
					if err != nil {
						return err
					}
					return writePage(next)
				},
			})
		},
	}
	cmd.Flags().StringVar(&pageRef, "page", "", "Page holding the form, an html file or URL.")
	cmd.Flags().StringVar(&formRef, "form", "", "Form index or id, defaults to the first form.")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Input value to fill in as name=value, repeatable.")
	cmd.Flags().BoolVar(&follow, "follow", false, "Fetch the redirect target or reload the page and print it.")
	_ = cmd.MarkFlagRequired("page")
	return cmd
}
