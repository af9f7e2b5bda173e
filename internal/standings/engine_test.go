package standings

import (
	"fmt"
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/domain/teams"
)

func game(home, away string, hs, as int, winner string) games.GameRecord {
	return games.GameRecord{
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: games.Numeric(hs),
		AwayScore: games.Numeric(as),
		Winner:    games.ParseWinner(winner),
		GameType:  games.TypeRegular,
	}
}

func playoff(g games.GameRecord) games.GameRecord {
	g.GameType = games.TypePlayoff
	return g
}

func TestComputeStandingsSingleDecidedGame(t *testing.T) {
	got := ComputeStandings([]games.GameRecord{game("Blue", "Orange", 12, 8, "Blue")})

	require.Len(t, got, 2)
	assert.Equal(t, teams.TeamRecord{Name: "Blue", Wins: 1, GamesPlayed: 1, WinPct: "1.000"}, got[0])
	assert.Equal(t, teams.TeamRecord{Name: "Orange", Losses: 1, GamesPlayed: 1, WinPct: ".000"}, got[1])
}

func TestComputeStandingsTie(t *testing.T) {
	got := ComputeStandings([]games.GameRecord{game("Gold", "Silver", 5, 5, "Tie")})

	require.Len(t, got, 2)
	for _, rec := range got {
		assert.Equal(t, 1, rec.Ties, rec.Name)
		assert.Zero(t, rec.Wins, rec.Name)
		assert.Zero(t, rec.Losses, rec.Name)
		assert.Equal(t, ".000", rec.WinPct, rec.Name)
	}
}

func TestComputeStandingsForfeit(t *testing.T) {
	g := game("Blue", "Orange", 0, 0, "Forfeit - Blue")
	g.Forfeit = true

	got := ComputeStandings([]games.GameRecord{g})

	require.Len(t, got, 2)
	assert.Equal(t, "Blue", got[0].Name)
	assert.Equal(t, 1, got[0].Wins)
	assert.Equal(t, "Orange", got[1].Name)
	assert.Equal(t, 1, got[1].Losses)
	assert.Equal(t, "0-0 (Forfeit)", FormatScoreDisplay(g, ""))
}

func TestComputeStandingsForfeitTie(t *testing.T) {
	got := ComputeStandings([]games.GameRecord{game("Blue", "Orange", 0, 0, "Forfeit - Tie")})
	for _, rec := range got {
		assert.Equal(t, 1, rec.Ties)
	}
}

func TestComputeStandingsMalformedWinnerCountsPlayedOnly(t *testing.T) {
	got := ComputeStandings([]games.GameRecord{
		game("Blue", "Orange", 3, 2, "Green"),
		game("Blue", "Orange", 3, 2, ""),
		game("Blue", "Orange", 3, 2, "Forfeit - Green"),
	})

	require.Len(t, got, 2)
	for _, rec := range got {
		assert.Equal(t, 3, rec.GamesPlayed)
		assert.Zero(t, rec.Wins+rec.Losses+rec.Ties)
		assert.Equal(t, ".000", rec.WinPct)
	}
}

func TestComputeStandingsEmpty(t *testing.T) {
	assert.Empty(t, ComputeStandings(nil))
}

func TestComputeStandingsOrdersByPctThenWins(t *testing.T) {
	log := []games.GameRecord{
		// A: 2-1, B: 1-0, C: 1-2, D: 0-1
		game("A", "C", 5, 1, "A"),
		game("A", "C", 5, 1, "A"),
		game("C", "A", 5, 1, "C"),
		game("B", "D", 2, 1, "B"),
	}

	got := ComputeStandings(log)
	names := make([]string, len(got))
	for i, r := range got {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"B", "A", "C", "D"}, names)
	assert.Equal(t, ".667", got[1].WinPct)
}

func TestComputeStandingsWinsBreakEqualPct(t *testing.T) {
	log := []games.GameRecord{
		game("A", "X", 1, 0, "A"),
		game("B", "Y", 1, 0, "B"),
		game("B", "Z", 1, 0, "B"),
	}
	got := ComputeStandings(log)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
}

func TestComputeStandingsHeadToHeadTieBreak(t *testing.T) {
	// Alpha and Zeta both finish 1-1; Zeta won their meeting.
	log := []games.GameRecord{
		game("Alpha", "X", 3, 1, "Alpha"),
		game("Zeta", "Alpha", 4, 2, "Zeta"),
		game("Y", "Zeta", 6, 0, "Y"),
	}

	got := ComputeStandings(log)
	require.Len(t, got, 4)
	names := []string{got[0].Name, got[1].Name, got[2].Name, got[3].Name}
	assert.Equal(t, []string{"Y", "Zeta", "Alpha", "X"}, names)
}

func TestComputeStandingsThreeWayCycleFallsBackToName(t *testing.T) {
	log := []games.GameRecord{
		game("Charlie", "Bravo", 2, 1, "Charlie"),
		game("Bravo", "Alpha", 2, 1, "Bravo"),
		game("Alpha", "Charlie", 2, 1, "Alpha"),
	}

	got := ComputeStandings(log)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestComputeStandingsAlphabeticalWhenHeadToHeadLevel(t *testing.T) {
	log := []games.GameRecord{
		game("Silver", "Gold", 5, 5, "Tie"),
	}
	got := ComputeStandings(log)
	assert.Equal(t, "Gold", got[0].Name)
	assert.Equal(t, "Silver", got[1].Name)
}

func TestComputeStandingsEncounterOrderTieBreak(t *testing.T) {
	log := []games.GameRecord{
		game("Silver", "Gold", 5, 5, "Tie"),
	}
	got := ComputeStandings(log, WithTieBreak(TieBreakEncounterOrder))
	assert.Equal(t, "Silver", got[0].Name)
	assert.Equal(t, "Gold", got[1].Name)
}

func TestComputeStandingsIsIdempotent(t *testing.T) {
	log := randomLog(rand.New(rand.NewSource(7)), 60)
	first := ComputeStandings(log)
	second := ComputeStandings(log)
	assert.Equal(t, first, second)
}

var winPctPattern = regexp.MustCompile(`^\d?\.\d{3}$`)

func TestComputeStandingsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		log := randomLog(rng, rng.Intn(40))
		table := ComputeStandings(log)

		var wins, losses, ties int
		for _, rec := range table {
			wins += rec.Wins
			losses += rec.Losses
			ties += rec.Ties
			assert.Regexp(t, winPctPattern, rec.WinPct)
			assert.LessOrEqual(t, rec.Wins+rec.Losses+rec.Ties, rec.GamesPlayed)
		}
		assert.Equal(t, wins, losses, "run %d", run)
		assert.Zero(t, ties%2, "run %d", run)

		for i := 1; i < len(table); i++ {
			prev, cur := table[i-1], table[i]
			c := comparePct(prev.Wins, prev.Losses, cur.Wins, cur.Losses)
			assert.True(t, c > 0 || (c == 0 && prev.Wins >= cur.Wins), "run %d: %v before %v", run, prev, cur)
		}
	}
}

func TestComputeTeamRecordSplitsByType(t *testing.T) {
	log := []games.GameRecord{
		game("Blue", "Orange", 5, 3, "Blue"),
		game("Orange", "Blue", 5, 3, "Orange"),
		game("Blue", "Gold", 2, 2, "Tie"),
		playoff(game("Blue", "Orange", 9, 1, "Blue")),
		game("Gold", "Orange", 1, 0, "Gold"),
	}

	got := ComputeTeamRecord(log, "Blue")

	assert.Equal(t, teams.TeamRecord{Name: "Blue", Wins: 2, Losses: 1, Ties: 1, GamesPlayed: 4, WinPct: ".667"}, got.Overall)
	assert.Equal(t, teams.TeamRecord{Name: "Blue", Wins: 1, Losses: 1, Ties: 1, GamesPlayed: 3, WinPct: ".500"}, got.ByType.Regular)
	assert.Equal(t, teams.TeamRecord{Name: "Blue", Wins: 1, GamesPlayed: 1, WinPct: "1.000"}, got.ByType.Playoff)
	assert.Equal(t, "2-1-1, Regular: 1-1-1, Playoff: 1-0", got.Summary())
}

func TestComputeTeamRecordUnknownTypeCountsOverallOnly(t *testing.T) {
	g := game("Blue", "Orange", 5, 3, "Blue")
	g.GameType = "Exhibition"

	got := ComputeTeamRecord([]games.GameRecord{g}, "Blue")

	assert.Equal(t, 1, got.Overall.Wins)
	assert.Zero(t, got.ByType.Regular.GamesPlayed)
	assert.Zero(t, got.ByType.Playoff.GamesPlayed)
}

func TestComputeTeamRecordUnknownTeam(t *testing.T) {
	got := ComputeTeamRecord([]games.GameRecord{game("Blue", "Orange", 5, 3, "Blue")}, "Nobody")
	assert.Equal(t, teams.TeamRecord{Name: "Nobody", WinPct: ".000"}, got.Overall)
}

func TestComputeTeamRecordPartitionInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for run := 0; run < 30; run++ {
		log := randomLog(rng, rng.Intn(50))
		for _, name := range teamNames {
			got := ComputeTeamRecord(log, name)
			sum := got.ByType.Regular.Add(got.ByType.Playoff)
			assert.Equal(t, got.Overall, sum, "run %d team %s", run, name)
		}
	}
}

func TestComputeTeamRecordMatchesStandingsRow(t *testing.T) {
	log := randomLog(rand.New(rand.NewSource(3)), 40)
	for _, row := range ComputeStandings(log) {
		assert.Equal(t, row, ComputeTeamRecord(log, row.Name).Overall)
	}
}

func TestSelfPlayGamesAreSkippedConsistently(t *testing.T) {
	log := []games.GameRecord{
		game("Blue", "Blue", 4, 2, "Blue"),
		game("Blue", "Orange", 5, 3, "Blue"),
	}

	table := ComputeStandings(log)
	require.Len(t, table, 2)
	assert.Equal(t, teams.TeamRecord{Name: "Blue", Wins: 1, GamesPlayed: 1, WinPct: "1.000"}, table[0])
	assert.Equal(t, table[0], ComputeTeamRecord(log, "Blue").Overall)

	only := ComputeStandings(log[:1])
	assert.Empty(t, only)
	assert.Zero(t, ComputeTeamRecord(log[:1], "Blue").Overall.GamesPlayed)
}

var teamNames = []string{"Blue", "Orange", "Gold", "Silver", "Red", "Black"}

// randomLog builds a Regular/Playoff log with every kind of winner value.
func randomLog(rng *rand.Rand, n int) []games.GameRecord {
	out := make([]games.GameRecord, 0, n)
	for i := 0; i < n; i++ {
		home := teamNames[rng.Intn(len(teamNames))]
		away := teamNames[rng.Intn(len(teamNames))]
		for away == home {
			away = teamNames[rng.Intn(len(teamNames))]
		}
		var winner string
		switch rng.Intn(7) {
		case 0:
			winner = games.TieToken
		case 1:
			winner = "Forfeit - " + home
		case 2:
			winner = "Forfeit - Tie"
		case 3:
			winner = "Nobody"
		case 4:
			winner = away
		default:
			winner = home
		}
		g := game(home, away, rng.Intn(15), rng.Intn(15), winner)
		g.ID = fmt.Sprintf("g%d", i)
		if rng.Intn(4) == 0 {
			g.GameType = games.TypePlayoff
		}
		out = append(out, g)
	}
	return out
}
