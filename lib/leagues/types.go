package leagues

type League struct {
	ID   int64  `json:"league_id"`
	Name string `json:"league_name"`
}

type LeagueDetail struct {
	Table               []TableRow `json:"league_table"`
	CompletedFixtures   []Fixture  `json:"completed_fixtures"`
	UncompletedFixtures []Fixture  `json:"uncompleted_fixtures"`
}

// TableRow is one player's standing. rows arrive already ordered, a row's
// rank is its 1-based position in the table.
type TableRow struct {
	Name        string `json:"name"`
	Played      int    `json:"played"`
	MatchesWon  int    `json:"matches_won"`
	MatchesLost int    `json:"matches_lost"`
	SetsWon     int    `json:"sets_won"`
	SetsLost    int    `json:"sets_lost"`
	GamesWon    int    `json:"games_won"`
	GamesLost   int    `json:"games_lost"`
	Points      int    `json:"points"`
}

type Fixture struct {
	PlayerOneID   int64  `json:"player_one_id"`
	PlayerOneName string `json:"player_one_name"`
	PlayerTwoID   int64  `json:"player_two_id"`
	PlayerTwoName string `json:"player_two_name"`
	// player id of the winner, nil until the fixture is played
	Winner *int64 `json:"winner"`

	// tiebreak points are nil when no tiebreak was played. only nil renders
	// as the " - " placeholder, a recorded 0 renders as "0".
	PlayerOneSetOneGames    int  `json:"player_one_set_one_games"`
	PlayerOneSetTwoGames    int  `json:"player_one_set_two_games"`
	PlayerOneTiebreakPoints *int `json:"player_one_tiebreak_points"`
	PlayerTwoSetOneGames    int  `json:"player_two_set_one_games"`
	PlayerTwoSetTwoGames    int  `json:"player_two_set_two_games"`
	PlayerTwoTiebreakPoints *int `json:"player_two_tiebreak_points"`
}

func (f Fixture) wonBy(playerID int64) bool {
	return f.Winner != nil && *f.Winner == playerID
}
