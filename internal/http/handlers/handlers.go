package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/league-standings-service/internal/app/games"
	"github.com/preston-bernstein/league-standings-service/internal/app/teams"
	domaingames "github.com/preston-bernstein/league-standings-service/internal/domain/games"
	domainteams "github.com/preston-bernstein/league-standings-service/internal/domain/teams"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
	"github.com/preston-bernstein/league-standings-service/internal/poller"
	"github.com/preston-bernstein/league-standings-service/internal/standings"
)

var (
	errInvalidYear = errors.New("invalid year")
	errUnknownTeam = errors.New("unknown team")
)

// Handler wires HTTP routes to the standings services.
type Handler struct {
	games    *games.Service
	teams    *teams.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler.
func NewHandler(gamesSvc *games.Service, teamsSvc *teams.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		games:    gamesSvc,
		teams:    teamsSvc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Register mounts the read-only routes on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/standings", h.Standings).Methods(nethttp.MethodGet)
	r.HandleFunc("/seasons", h.Seasons).Methods(nethttp.MethodGet)
	r.HandleFunc("/teams", h.Teams).Methods(nethttp.MethodGet)
	r.HandleFunc("/teams/{team}/record", h.TeamRecord).Methods(nethttp.MethodGet)
	r.HandleFunc("/games", h.Games).Methods(nethttp.MethodGet)
	r.HandleFunc("/games/{id}", h.GameByID).Methods(nethttp.MethodGet)
}

// StandingsResponse is the body of GET /standings.
type StandingsResponse struct {
	Scope     domaingames.Scope        `json:"scope"`
	Standings []domainteams.TeamRecord `json:"standings"`
}

// TeamRecordResponse is the body of GET /teams/{team}/record.
type TeamRecordResponse struct {
	Team    domainteams.Team            `json:"team"`
	Scope   domaingames.Scope           `json:"scope"`
	Record  domainteams.CompositeRecord `json:"record"`
	Summary string                      `json:"summary"`
	Results []games.Result              `json:"results"`
}

// GamesResponse is the body of GET /games.
type GamesResponse struct {
	Scope domaingames.Scope `json:"scope"`
	Count int               `json:"count"`
	Games []games.Result    `json:"games"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. A service restored from snapshots is
// ready before the provider first answers, until refreshes keep failing.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if status.LastSuccess.IsZero() && !status.Failing() && h.games.Count() > 0 {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready", "source": "snapshot"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Standings ranks the teams inside the requested scope.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	scope, ok := h.scopeOrError(w, r)
	if !ok {
		return
	}
	table := h.games.Standings(scope)
	logging.Info(requestLogger(r, h.logger), "served standings", logging.FieldCount, len(table))
	writeJSON(w, nethttp.StatusOK, StandingsResponse{Scope: scope, Standings: table}, h.logger)
}

// Teams lists every team found in the game log.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{"teams": h.teams.Teams()}, h.logger)
}

// TeamRecord reports one team's record with its type split and results feed.
func (h *Handler) TeamRecord(w nethttp.ResponseWriter, r *nethttp.Request) {
	team, ok := h.teams.Resolve(mux.Vars(r)["team"])
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "team not found", h.logger)
		return
	}
	scope, ok := h.scopeOrError(w, r)
	if !ok {
		return
	}
	record := h.games.TeamRecord(scope, team.Name)
	results := h.games.Results(domaingames.Scope{Year: scope.Year, Season: scope.Season, GameType: scope.GameType}, team.Name)
	logging.Info(requestLogger(r, h.logger), "served team record", logging.FieldTeam, team.Name)
	writeJSON(w, nethttp.StatusOK, TeamRecordResponse{
		Team:    team,
		Scope:   scope,
		Record:  record,
		Summary: record.Summary(),
		Results: results,
	}, h.logger)
}

// Games lists scoped games newest first. With a team in scope, each game is
// shown from that team's side.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	scope, ok := h.scopeOrError(w, r)
	if !ok {
		return
	}
	results := h.games.Results(scope, scope.Team)
	writeJSON(w, nethttp.StatusOK, GamesResponse{Scope: scope, Count: len(results), Games: results}, h.logger)
}

// GameByID returns a specific game with its display score.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	game, ok := h.games.GameByID(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, games.Result{
		GameRecord: game,
		Display:    standings.FormatScoreDisplay(game, ""),
	}, h.logger)
}

// Seasons lists the seasons in the log.
func (h *Handler) Seasons(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{"seasons": h.games.Seasons()}, h.logger)
}

func (h *Handler) scopeOrError(w nethttp.ResponseWriter, r *nethttp.Request) (domaingames.Scope, bool) {
	scope, err := h.parseScope(r)
	switch {
	case err == nil:
		return scope, true
	case errors.Is(err, errUnknownTeam):
		writeError(w, r, nethttp.StatusNotFound, "team not found", h.logger)
	default:
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
	}
	return domaingames.Scope{}, false
}

// parseScope reads year, season, type and team query parameters. A season
// may be given as a slug such as "2024-summer", which also sets the year.
func (h *Handler) parseScope(r *nethttp.Request) (domaingames.Scope, error) {
	q := r.URL.Query()
	var scope domaingames.Scope

	if raw := strings.TrimSpace(q.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 0 {
			return scope, errInvalidYear
		}
		scope.Year = year
	}

	if season := strings.TrimSpace(q.Get("season")); season != "" {
		if key, ok := h.games.SeasonBySlug(strings.ToLower(season)); ok && scope.Year == 0 {
			scope.Year = key.Year
			scope.Season = key.Season
		} else {
			scope.Season = season
		}
	}

	if gt := strings.TrimSpace(q.Get("type")); gt != "" {
		scope.GameType = canonicalType(gt)
	}

	if raw := strings.TrimSpace(q.Get("team")); raw != "" {
		team, ok := h.teams.Resolve(raw)
		if !ok {
			return scope, errUnknownTeam
		}
		scope.Team = team.Name
	}
	return scope, nil
}

func canonicalType(raw string) domaingames.GameType {
	for _, known := range []domaingames.GameType{domaingames.TypeRegular, domaingames.TypePlayoff} {
		if strings.EqualFold(raw, string(known)) {
			return known
		}
	}
	return domaingames.GameType(raw)
}
