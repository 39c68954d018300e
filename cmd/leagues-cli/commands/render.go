package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var pageRef, out, start string
	var nav []string

	cmd := &cobra.Command{
		Use:   "render [--page <file or url>] [--out <file>] [--nav next,prev,...]",
		Short: "Renders a league into the page markup and writes the resulting html.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			browser, page, err := openBrowser(ctx, a, pageRef, start)
			if err != nil {
				return err
			}
			for _, word := range nav {
				err = step(ctx, browser, word)
				if err != nil {
					return err
				}
			}

			markup, err := page.HTML()
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), markup)
				return err
			}
			err = os.WriteFile(out, []byte(markup), 0o644)
			if err != nil {
				return err
			}

			league, _, _ := browser.Shown()
			slog.Info("rendered league", "league_id", league.ID, "league", league.Name, "out", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&pageRef, "page", "", "Page markup to render into, defaults to a built-in page.")
	cmd.Flags().StringVarP(&out, "out", "o", "", "File to write the html to, defaults to stdout.")
	cmd.Flags().StringVar(&start, "league", "", "League id or name to start from.")
	cmd.Flags().StringSliceVar(&nav, "nav", nil, "Navigation steps to apply after loading (next, prev).")
	return cmd
}
