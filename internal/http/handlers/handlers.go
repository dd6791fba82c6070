package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/preston-bernstein/cfb-data-service/internal/app/analysis"
	"github.com/preston-bernstein/cfb-data-service/internal/app/games"
	"github.com/preston-bernstein/cfb-data-service/internal/app/teamstats"
	"github.com/preston-bernstein/cfb-data-service/internal/config"
	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/poller"
)

type nowFunc func() time.Time

// GamesService serves game boards.
type GamesService interface {
	Games(ctx context.Context, q games.Query) (domaingames.Board, error)
}

// TeamStatsService serves the team-stats table.
type TeamStatsService interface {
	Table(ctx context.Context, q teamstats.TableQuery) ([]teams.StatRow, error)
}

// AnalysisService serves matchup reports.
type AnalysisService interface {
	Analyze(ctx context.Context, req analysis.MatchupRequest) (analysis.Result, error)
	Context(ctx context.Context, req analysis.MatchupRequest) (analysis.Result, string, error)
}

// Deps wires a Handler. Season of zero follows the calendar.
type Deps struct {
	Games     GamesService
	TeamStats TeamStatsService
	Analysis  AnalysisService
	Season    int
	Logger    *slog.Logger
	Status    func() poller.Status
}

// Handler wires HTTP routes to the app services.
type Handler struct {
	games     GamesService
	teamStats TeamStatsService
	analysis  AnalysisService
	season    int
	logger    *slog.Logger
	now       nowFunc
	statusFn  func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		games:     deps.Games,
		teamStats: deps.TeamStats,
		analysis:  deps.Analysis,
		season:    deps.Season,
		logger:    deps.Logger,
		now:       time.Now,
		statusFn:  deps.Status,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic: the board warmer has succeeded recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"status":      "ready",
			"lastSuccess": status.LastSuccess.UTC(),
			"games":       status.LastGames,
		}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Preflight answers CORS preflight requests that reach the router.
func (h *Handler) Preflight(w nethttp.ResponseWriter, r *nethttp.Request) {
	w.WriteHeader(nethttp.StatusNoContent)
}

// NotFound keeps unknown routes in the JSON error shape.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed keeps wrong-method requests in the JSON error shape.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) currentSeason() int {
	if h.season > 0 {
		return h.season
	}
	return config.DefaultSeason(h.now())
}
