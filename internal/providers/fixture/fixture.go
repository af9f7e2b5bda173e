package fixture

import (
	"context"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

// Provider returns a static league useful for local testing and bootstrapping.
type Provider struct {
	log []games.GameRecord
}

// New creates a fixture provider seeded with the sample league.
func New() *Provider {
	return &Provider{log: sampleLeague()}
}

// FetchGames returns a copy of the sample league's game log.
func (p *Provider) FetchGames(ctx context.Context) ([]games.GameRecord, error) {
	_ = ctx
	out := make([]games.GameRecord, len(p.log))
	copy(out, p.log)
	return out, nil
}

func played(id, date string, year int, season, home, away string, hs, as int, winner string, gt games.GameType) games.GameRecord {
	return games.GameRecord{
		ID:        id,
		Date:      date,
		Year:      year,
		Season:    season,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: games.Numeric(hs),
		AwayScore: games.Numeric(as),
		Winner:    games.ParseWinner(winner),
		GameType:  gt,
	}
}

func sampleLeague() []games.GameRecord {
	forfeit := games.GameRecord{
		ID:        "summer-2024-r3",
		Date:      "2024-06-09",
		Year:      2024,
		Season:    "Summer",
		HomeTeam:  "Red",
		AwayTeam:  "Black",
		HomeScore: games.Sentinel(games.OutcomeWin),
		AwayScore: games.Sentinel(games.OutcomeLoss),
		Winner:    games.ForfeitTo("Red"),
		GameType:  games.TypeRegular,
		Forfeit:   true,
	}
	forfeitTie := played("summer-2024-r6", "2024-06-16", 2024, "Summer", "Black", "Orange", 0, 0, "Forfeit - Tie", games.TypeRegular)
	forfeitTie.Forfeit = true

	return []games.GameRecord{
		played("summer-2024-r1", "2024-06-02", 2024, "Summer", "Blue", "Orange", 5, 3, "Blue", games.TypeRegular),
		played("summer-2024-r2", "2024-06-02", 2024, "Summer", "Gold", "Silver", 2, 2, games.TieToken, games.TypeRegular),
		forfeit,
		played("summer-2024-r4", "2024-06-09", 2024, "Summer", "Orange", "Gold", 4, 6, "Gold", games.TypeRegular),
		played("summer-2024-r5", "2024-06-16", 2024, "Summer", "Silver", "Blue", 1, 7, "Blue", games.TypeRegular),
		forfeitTie,
		played("summer-2024-p1", "2024-06-23", 2024, "Summer", "Blue", "Gold", 3, 4, "Gold", games.TypePlayoff),
		played("fall-2024-r1", "2024-09-08", 2024, "Fall", "Red", "Blue", 6, 5, "Red", games.TypeRegular),
		played("fall-2024-r2", "2024-09-08", 2024, "Fall", "Silver", "Orange", 3, 1, "Silver", games.TypeRegular),
	}
}
