package handlers

import (
	"fmt"
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/cfb-data-service/internal/app/teamstats"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
)

type teamStatsMetadata struct {
	TotalTeams int    `json:"totalTeams"`
	Year       int    `json:"year"`
	Conference string `json:"conference,omitempty"`
	Division   string `json:"division,omitempty"`
}

// TeamStats serves GET /api/team-stats?year=&conference=&division=.
func (h *Handler) TeamStats(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	params := r.URL.Query()

	year, err := optionalInt(params.Get("year"))
	if err != nil || year < 0 {
		writeEnvelopeError(w, r, nethttp.StatusBadRequest, fmt.Sprintf("invalid year %q", params.Get("year")), nil, h.logger)
		return
	}
	if year == 0 {
		year = h.currentSeason()
	}
	q := teamstats.TableQuery{
		Year:       year,
		Conference: strings.TrimSpace(params.Get("conference")),
		Division:   strings.TrimSpace(params.Get("division")),
	}

	rows, err := h.teamStats.Table(r.Context(), q)
	if err != nil {
		logging.Error(logger, "team stats request failed", err, logging.FieldSeason, year)
		writeEnvelopeError(w, r, nethttp.StatusInternalServerError, "failed to fetch team stats: "+err.Error(), nil, h.logger)
		return
	}
	if rows == nil {
		rows = []teams.StatRow{}
	}

	writeJSON(w, nethttp.StatusOK, Envelope{
		Success: true,
		Data:    rows,
		Metadata: teamStatsMetadata{
			TotalTeams: len(rows),
			Year:       year,
			Conference: q.Conference,
			Division:   q.Division,
		},
		Message: fmt.Sprintf("Retrieved %d teams for the %d season", len(rows), year),
	}, h.logger)
}
