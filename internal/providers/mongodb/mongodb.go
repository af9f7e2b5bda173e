package mongodb

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/providers"
)

// Provider reads the game log from a mongo collection.
type Provider struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials uri and verifies the deployment is reachable.
func Connect(ctx context.Context, uri, database, collection string) (*Provider, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("%w: mongo uri not set", providers.ErrProviderUnavailable)
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}
	return &Provider{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// gameDocument mirrors how league sheets land in mongo: scores may be any
// numeric BSON type or the W/L markers, and ids may be ObjectIDs or strings.
type gameDocument struct {
	ID        any    `bson:"_id,omitempty"`
	Date      string `bson:"date,omitempty"`
	Year      any    `bson:"year,omitempty"`
	Season    string `bson:"season,omitempty"`
	HomeTeam  string `bson:"homeTeam"`
	AwayTeam  string `bson:"awayTeam"`
	HomeScore any    `bson:"homeScore,omitempty"`
	AwayScore any    `bson:"awayScore,omitempty"`
	Winner    string `bson:"winner,omitempty"`
	GameType  string `bson:"gameType,omitempty"`
	Forfeit   bool   `bson:"forfeit,omitempty"`
}

func (d gameDocument) record() games.GameRecord {
	return games.GameRecord{
		ID:        documentID(d.ID),
		Date:      d.Date,
		Year:      games.ScoreFromValue(d.Year).Points(),
		Season:    d.Season,
		HomeTeam:  d.HomeTeam,
		AwayTeam:  d.AwayTeam,
		HomeScore: games.ScoreFromValue(d.HomeScore),
		AwayScore: games.ScoreFromValue(d.AwayScore),
		Winner:    games.ParseWinner(d.Winner),
		GameType:  games.GameType(d.GameType),
		Forfeit:   d.Forfeit,
	}
}

func newDocument(g games.GameRecord) gameDocument {
	return gameDocument{
		ID:        g.ID,
		Date:      g.Date,
		Year:      g.Year,
		Season:    g.Season,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		HomeScore: scoreValue(g.HomeScore),
		AwayScore: scoreValue(g.AwayScore),
		Winner:    g.Winner.Raw,
		GameType:  string(g.GameType),
		Forfeit:   g.Forfeit,
	}
}

func scoreValue(s games.Score) any {
	if s.IsSentinel() {
		return string(s.Outcome())
	}
	return s.Points()
}

func documentID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	default:
		return fmt.Sprint(id)
	}
}

// FetchGames reads every document ordered by date then id.
func (p *Provider) FetchGames(ctx context.Context) ([]games.GameRecord, error) {
	if p == nil || p.coll == nil {
		return nil, providers.ErrProviderUnavailable
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := p.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer cursor.Close(ctx)

	log := []games.GameRecord{}
	for cursor.Next(ctx) {
		var doc gameDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding game document: %w", err)
		}
		log = append(log, doc.record())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating games: %w", err)
	}
	return log, nil
}

// Save upserts the given games keyed by id.
func (p *Provider) Save(ctx context.Context, log []games.GameRecord) error {
	if len(log) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(log))
	for _, g := range log {
		if g.ID == "" {
			return fmt.Errorf("insert game %s vs %s: id required", g.HomeTeam, g.AwayTeam)
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": g.ID}).
			SetReplacement(newDocument(g)).
			SetUpsert(true))
	}
	if _, err := p.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("saving games: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (p *Provider) Close(ctx context.Context) error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Disconnect(ctx)
}
