package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/providers"
)

// DefaultTable holds one row per game.
const DefaultTable = "games"

// undefinedTable is the SQLSTATE postgres reports for a missing relation.
const undefinedTable = "42P01"

// Provider reads the game log from a postgres table.
type Provider struct {
	db    *sql.DB
	table string
}

// Open connects to dsn, verifies the connection and creates the games table
// when a fresh database lacks it.
func Open(ctx context.Context, dsn string) (*Provider, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%w: database url not set", providers.ErrProviderUnavailable)
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	p, err := connect(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

func connect(ctx context.Context, db *sql.DB) (*Provider, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	p := New(db, DefaultTable)
	if err := p.Migrate(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// New wraps an existing connection pool.
func New(db *sql.DB, table string) *Provider {
	if table == "" {
		table = DefaultTable
	}
	return &Provider{db: db, table: table}
}

// Migrate creates the games table if it does not exist. Scores are text so
// the W/L markers survive alongside numeric tallies.
func (p *Provider) Migrate(ctx context.Context) error {
	q := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			game_date  TEXT NOT NULL DEFAULT '',
			year       INT  NOT NULL DEFAULT 0,
			season     TEXT NOT NULL DEFAULT '',
			home_team  TEXT NOT NULL,
			away_team  TEXT NOT NULL,
			home_score TEXT,
			away_score TEXT,
			winner     TEXT,
			game_type  TEXT NOT NULL DEFAULT '',
			forfeit    BOOLEAN NOT NULL DEFAULT FALSE
		)`, pq.QuoteIdentifier(p.table))
	if _, err := p.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}
	return nil
}

// Save upserts the given games by id inside one transaction.
func (p *Provider) Save(ctx context.Context, log []games.GameRecord) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := fmt.Sprintf(`
		INSERT INTO %s (id, game_date, year, season, home_team, away_team, home_score, away_score, winner, game_type, forfeit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			game_date = EXCLUDED.game_date,
			year = EXCLUDED.year,
			season = EXCLUDED.season,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			winner = EXCLUDED.winner,
			game_type = EXCLUDED.game_type,
			forfeit = EXCLUDED.forfeit`, pq.QuoteIdentifier(p.table))
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range log {
		if g.ID == "" {
			return fmt.Errorf("insert game %s vs %s: id required", g.HomeTeam, g.AwayTeam)
		}
		if _, err := stmt.ExecContext(ctx, rowValues(g)...); err != nil {
			return fmt.Errorf("insert game %s: %w", g.ID, err)
		}
	}
	return tx.Commit()
}

// FetchGames reads every row ordered by date then id.
func (p *Provider) FetchGames(ctx context.Context) ([]games.GameRecord, error) {
	if p == nil || p.db == nil {
		return nil, providers.ErrProviderUnavailable
	}
	q := fmt.Sprintf(`
		SELECT id, game_date, year, season, home_team, away_team, home_score, away_score, winner, game_type, forfeit
		FROM %s
		ORDER BY game_date, id`, pq.QuoteIdentifier(p.table))

	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
			return nil, fmt.Errorf("%w: %s", providers.ErrProviderUnavailable, pqErr.Message)
		}
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	log := []games.GameRecord{}
	for rows.Next() {
		g, err := scanGame(rows.Scan)
		if err != nil {
			return nil, err
		}
		log = append(log, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating games rows: %w", err)
	}
	return log, nil
}

// Close releases the connection pool.
func (p *Provider) Close(ctx context.Context) error {
	_ = ctx
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

func scanGame(scan func(dest ...any) error) (games.GameRecord, error) {
	var (
		g                         games.GameRecord
		homeScore, awayScore, win sql.NullString
		gameType                  string
	)
	if err := scan(&g.ID, &g.Date, &g.Year, &g.Season, &g.HomeTeam, &g.AwayTeam, &homeScore, &awayScore, &win, &gameType, &g.Forfeit); err != nil {
		return games.GameRecord{}, fmt.Errorf("scanning game row: %w", err)
	}
	g.HomeScore = games.ScoreFromValue(homeScore.String)
	g.AwayScore = games.ScoreFromValue(awayScore.String)
	g.Winner = games.ParseWinner(win.String)
	g.GameType = games.GameType(gameType)
	return g, nil
}

func rowValues(g games.GameRecord) []any {
	return []any{
		g.ID,
		g.Date,
		g.Year,
		g.Season,
		g.HomeTeam,
		g.AwayTeam,
		g.HomeScore.String(),
		g.AwayScore.String(),
		g.Winner.Raw,
		string(g.GameType),
		g.Forfeit,
	}
}
