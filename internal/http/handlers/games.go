package handlers

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/cfb-data-service/internal/app/games"
	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
)

// Games serves GET /api/games/{year}?week=&date=&division=.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)

	q, err := parseGamesQuery(r)
	if err != nil {
		writeEnvelopeError(w, r, nethttp.StatusBadRequest, err.Error(), nil, h.logger)
		return
	}

	board, err := h.games.Games(r.Context(), q)
	if err != nil {
		if errors.Is(err, games.ErrInvalidQuery) {
			writeEnvelopeError(w, r, nethttp.StatusBadRequest, err.Error(), nil, h.logger)
			return
		}
		logging.Error(logger, "games request failed", err, logging.FieldSeason, q.Season, logging.FieldWeek, q.Week)
		writeEnvelopeError(w, r, nethttp.StatusInternalServerError, "failed to fetch games: "+err.Error(),
			map[string]any{"season": q.Season, "totalGames": 0}, h.logger)
		return
	}

	data := board.Games
	if data == nil {
		data = []domaingames.Game{}
	}
	writeJSON(w, nethttp.StatusOK, Envelope{
		Success:  true,
		Data:     data,
		Metadata: board.Metadata,
		Message:  gamesMessage(board.Metadata),
	}, h.logger)
}

func parseGamesQuery(r *nethttp.Request) (games.Query, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "year"))
	year, err := strconv.Atoi(raw)
	if err != nil {
		return games.Query{}, fmt.Errorf("%w: year %q", games.ErrInvalidQuery, raw)
	}
	params := r.URL.Query()
	week, err := optionalInt(params.Get("week"))
	if err != nil {
		return games.Query{}, fmt.Errorf("%w: week %q", games.ErrInvalidQuery, params.Get("week"))
	}
	return games.Query{
		Season:     year,
		Week:       week,
		Date:       params.Get("date"),
		Division:   params.Get("division"),
		SeasonType: strings.ToLower(strings.TrimSpace(params.Get("seasonType"))),
	}, nil
}

func optionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func gamesMessage(m domaingames.Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Retrieved %d games", m.TotalGames)
	switch {
	case m.Date != "":
		fmt.Fprintf(&b, " on %s", m.Date)
	case m.Week > 0:
		fmt.Fprintf(&b, " for week %d", m.Week)
	}
	fmt.Fprintf(&b, " of the %d season", m.Season)
	if m.Division != "" {
		fmt.Fprintf(&b, " (%s)", strings.ToUpper(m.Division))
	}
	if m.Cached {
		b.WriteString(" from the warmed board")
	}
	return b.String()
}
