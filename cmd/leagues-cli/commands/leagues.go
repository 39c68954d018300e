package commands

import (
	"github.com/spf13/cobra"
)

func newLeaguesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "Lists the leagues known to the site.",
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
			writeLeagues(cmd.OutOrStdout(), list)
			return nil
		},
	}
}
