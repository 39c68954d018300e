package commands

import (
	"fmt"
	"io"
	"strconv"

	"tennisleagues/lib/leagues"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

func writeLeagues(w io.Writer, list []leagues.League) {
	t := newTable(w, "")
	t.AppendHeader(table.Row{"#", "ID", "League"})
	for i, l := range list {
		t.AppendRow(table.Row{i, l.ID, l.Name})
	}
	t.Render()
}

func scoreline(set1, set2 int, tiebreak *int) []any {
	tb := "-"
	if tiebreak != nil {
		tb = strconv.Itoa(*tiebreak)
	}
	return []any{set1, set2, tb}
}

func playerCell(name string, won bool) string {
	if won {
		return name + " *"
	}
	return name
}

func writeDetail(w io.Writer, league leagues.League, detail leagues.LeagueDetail) {
	standings := newTable(w, league.Name)
	standings.AppendHeader(table.Row{"", "Player", "P", "W", "L", "SW", "SL", "GW", "GL", "Pts"})
	for i, row := range detail.Table {
		standings.AppendRow(table.Row{
			i + 1, row.Name, row.Played,
			row.MatchesWon, row.MatchesLost,
			row.SetsWon, row.SetsLost,
			row.GamesWon, row.GamesLost,
			row.Points,
		})
	}
	standings.Render()

	if len(detail.CompletedFixtures) == 0 {
		fmt.Fprintln(w, leagues.NoCompletedFixtures)
	} else {
		results := newTable(w, "Results")
		results.AppendHeader(table.Row{"Player", "1", "2", "3"})
		for i, f := range detail.CompletedFixtures {
			if i > 0 {
				results.AppendSeparator()
			}
			one := table.Row{playerCell(f.PlayerOneName, f.Winner != nil && *f.Winner == f.PlayerOneID)}
			one = append(one, scoreline(f.PlayerOneSetOneGames, f.PlayerOneSetTwoGames, f.PlayerOneTiebreakPoints)...)
			two := table.Row{playerCell(f.PlayerTwoName, f.Winner != nil && *f.Winner == f.PlayerTwoID)}
			two = append(two, scoreline(f.PlayerTwoSetOneGames, f.PlayerTwoSetTwoGames, f.PlayerTwoTiebreakPoints)...)
			results.AppendRow(one)
			results.AppendRow(two)
		}
		results.Render()
	}

	if len(detail.UncompletedFixtures) == 0 {
		fmt.Fprintln(w, leagues.NoUncompletedFixtures)
		return
	}
	upcoming := newTable(w, "Fixtures")
	for _, f := range detail.UncompletedFixtures {
		upcoming.AppendRow(table.Row{fmt.Sprintf("%s vs %s", f.PlayerOneName, f.PlayerTwoName)})
	}
	upcoming.Render()
}
