package testutil

import (
	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

// SampleGame returns a decided regular-season game with the provided id.
func SampleGame(id string) games.GameRecord {
	return games.GameRecord{
		ID:        id,
		Date:      "2024-06-02",
		Year:      2024,
		Season:    "Summer",
		HomeTeam:  "Blue",
		AwayTeam:  "Orange",
		HomeScore: games.Numeric(5),
		AwayScore: games.Numeric(3),
		Winner:    games.WinnerOf("Blue"),
		GameType:  games.TypeRegular,
	}
}

// SampleLog returns a small log: a home win, a tie and an away playoff win.
func SampleLog() []games.GameRecord {
	tie := SampleGame("g2")
	tie.HomeTeam, tie.AwayTeam = "Gold", "Silver"
	tie.HomeScore, tie.AwayScore = games.Numeric(2), games.Numeric(2)
	tie.Winner = games.WinnerOf(games.TieToken)
	tie.Date = "2024-06-09"

	playoff := SampleGame("g3")
	playoff.HomeTeam, playoff.AwayTeam = "Orange", "Gold"
	playoff.HomeScore, playoff.AwayScore = games.Numeric(1), games.Numeric(4)
	playoff.Winner = games.WinnerOf("Gold")
	playoff.GameType = games.TypePlayoff
	playoff.Date = "2024-06-16"

	return []games.GameRecord{SampleGame("g1"), tie, playoff}
}
