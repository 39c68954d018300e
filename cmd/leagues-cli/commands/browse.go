package commands

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"tennisleagues/lib/telemetry"

	"github.com/spf13/cobra"
)

const browseHelp = "n: next league, p: previous league, q: quit"

func newBrowseCmd(a *app) *cobra.Command {
	var pageRef, start string

	cmd := &cobra.Command{
		Use:   "browse [--page <file or url>]",
		Short: "Steps through the leagues interactively.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			telemetry.InstrumentPerfStats(ctx, time.Second*30)

			browser, _, err := openBrowser(ctx, a, pageRef, start)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			show := func() {
				league, detail, _ := browser.Shown()
				writeDetail(out, league, detail)
				fmt.Fprintln(out, browseHelp)
			}
			show()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				word := strings.TrimSpace(scanner.Text())
				switch strings.ToLower(word) {
				case "":
					continue
				case "q", "quit", "exit":
					return nil
				}
				err := step(ctx, browser, word)
				if err != nil {
					// a failed fetch leaves the previous league on screen
					fmt.Fprintln(out, err)
					continue
				}
				show()
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringVar(&pageRef, "page", "", "Page markup to render into, defaults to a built-in page.")
	cmd.Flags().StringVar(&start, "league", "", "League id or name to start from.")
	return cmd
}
