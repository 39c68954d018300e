package commands

import (
	"tennisleagues/lib/leagues"

	"github.com/spf13/cobra"
)

func newTableCmd(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "table [--league <id or name>]",
		Short: "Prints the standings and fixtures of a league.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.leaguesClient()
			if err != nil {
				return err
			}
			list, err := client.Leagues(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return leagues.ErrNoLeagues
			}

			index := 0
			if query != "" {
				index, err = leagues.Find(list, query)
				if err != nil {
					return err
				}
			}

			league := list[index]
			detail, err := client.Detail(cmd.Context(), league.ID)
			if err != nil {
				return err
			}
			writeDetail(cmd.OutOrStdout(), league, detail)
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "league", "", "League id or name, defaults to the first league.")
	return cmd
}
