package mongodb

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/providers"
)

func decode(t *testing.T, doc bson.M) games.GameRecord {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var gd gameDocument
	require.NoError(t, bson.Unmarshal(raw, &gd))
	return gd.record()
}

func TestDocumentAcceptsMixedScoreTypes(t *testing.T) {
	oid := primitive.NewObjectID()
	g := decode(t, bson.M{
		"_id":       oid,
		"homeTeam":  "Blue",
		"awayTeam":  "Orange",
		"homeScore": int32(5),
		"awayScore": 3.0,
		"winner":    "Blue",
		"year":      int64(2024),
		"season":    "Summer",
		"gameType":  "Regular",
	})

	assert.Equal(t, oid.Hex(), g.ID)
	assert.Equal(t, 5, g.HomeScore.Points())
	assert.Equal(t, 3, g.AwayScore.Points())
	assert.Equal(t, 2024, g.Year)
	assert.Equal(t, games.DecisionHome, g.Decide())
}

func TestDocumentAcceptsSentinelsAndMissingScores(t *testing.T) {
	g := decode(t, bson.M{
		"_id":       "g7",
		"homeTeam":  "Red",
		"awayTeam":  "Black",
		"homeScore": "w",
		"awayScore": "L",
		"winner":    "Forfeit - Red",
		"forfeit":   true,
	})
	assert.Equal(t, "g7", g.ID)
	assert.True(t, g.HomeScore.IsSentinel())
	assert.Equal(t, games.OutcomeWin, g.HomeScore.Outcome())
	assert.True(t, g.Forfeit)

	bare := decode(t, bson.M{"homeTeam": "Gold", "awayTeam": "Silver"})
	assert.Equal(t, 0, bare.HomeScore.Points())
	assert.Equal(t, games.DecisionUnresolved, bare.Decide())
}

func TestNewDocumentRoundTrips(t *testing.T) {
	in := games.GameRecord{
		ID: "g1", Date: "2024-06-09", Year: 2024, Season: "Summer",
		HomeTeam: "Red", AwayTeam: "Black",
		HomeScore: games.Sentinel(games.OutcomeWin), AwayScore: games.Sentinel(games.OutcomeLoss),
		Winner: games.ForfeitTo("Red"), GameType: games.TypeRegular, Forfeit: true,
	}
	raw, err := bson.Marshal(newDocument(in))
	require.NoError(t, err)
	var doc gameDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, in, doc.record())
}

func TestDocumentIDFallsBackToString(t *testing.T) {
	assert.Equal(t, "", documentID(nil))
	assert.Equal(t, "42", documentID(int32(42)))
}

func TestConnectRequiresURI(t *testing.T) {
	_, err := Connect(context.Background(), "", "league", "games")
	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)
}

func TestNilProviderIsUnavailable(t *testing.T) {
	var p *Provider
	_, err := p.FetchGames(context.Background())
	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)
	assert.NoError(t, p.Close(context.Background()))
}

func TestProviderAgainstMongo(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	p, err := Connect(ctx, uri, "league_test", "games")
	require.NoError(t, err)
	defer p.Close(ctx)
	_, _ = p.coll.DeleteMany(ctx, bson.D{})

	log := []games.GameRecord{
		{ID: "b", Date: "2024-06-09", HomeTeam: "Gold", AwayTeam: "Silver", HomeScore: games.Numeric(2), AwayScore: games.Numeric(2), Winner: games.WinnerOf(games.TieToken)},
		{ID: "a", Date: "2024-06-02", HomeTeam: "Blue", AwayTeam: "Orange", HomeScore: games.Numeric(5), AwayScore: games.Numeric(3), Winner: games.WinnerOf("Blue")},
	}
	require.NoError(t, p.Save(ctx, log))
	require.NoError(t, p.Save(ctx, log))

	got, err := p.FetchGames(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, games.DecisionTie, got[1].Decide())
}
