package handlers

import (
	"errors"
	"fmt"
	nethttp "net/http"

	"github.com/preston-bernstein/cfb-data-service/internal/app/analysis"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
)

// Analysis serves GET /api/llm-analysis?homeTeam=&awayTeam=&year=&week=.
func (h *Handler) Analysis(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serveMatchup(w, r, false)
}

// AnalysisContext serves GET /api/llm-context with the narrative rendering attached.
func (h *Handler) AnalysisContext(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serveMatchup(w, r, true)
}

func (h *Handler) serveMatchup(w nethttp.ResponseWriter, r *nethttp.Request, withContext bool) {
	req, err := parseMatchup(r)
	if err != nil {
		h.writeAnalysisError(w, r, nethttp.StatusBadRequest, err.Error())
		return
	}

	var (
		res       analysis.Result
		narrative string
	)
	if withContext {
		res, narrative, err = h.analysis.Context(r.Context(), req)
	} else {
		res, err = h.analysis.Analyze(r.Context(), req)
	}
	if err != nil {
		if errors.Is(err, analysis.ErrMissingTeam) {
			h.writeAnalysisError(w, r, nethttp.StatusBadRequest, err.Error())
			return
		}
		logging.Error(loggerFromContext(r, h.logger), "matchup analysis failed", err,
			"homeTeam", req.HomeTeam, "awayTeam", req.AwayTeam)
		h.writeAnalysisError(w, r, nethttp.StatusInternalServerError, "failed to analyze matchup: "+err.Error())
		return
	}

	writeJSON(w, nethttp.StatusOK, AnalysisEnvelope{
		Success:  true,
		Matchup:  res.Matchup,
		Analysis: res.Report,
		Context:  narrative,
	}, h.logger)
}

func parseMatchup(r *nethttp.Request) (analysis.MatchupRequest, error) {
	params := r.URL.Query()
	req := analysis.MatchupRequest{
		HomeTeam: params.Get("homeTeam"),
		AwayTeam: params.Get("awayTeam"),
	}
	year, err := optionalInt(params.Get("year"))
	if err != nil || year < 0 {
		return req, fmt.Errorf("invalid year %q", params.Get("year"))
	}
	week, err := optionalInt(params.Get("week"))
	if err != nil || week < 0 {
		return req, fmt.Errorf("invalid week %q", params.Get("week"))
	}
	req.Year, req.Week = year, week
	return req, nil
}

func (h *Handler) writeAnalysisError(w nethttp.ResponseWriter, r *nethttp.Request, status int, message string) {
	writeJSON(w, status, AnalysisEnvelope{
		Success:   false,
		Error:     message,
		RequestID: requestID(r),
	}, h.logger)
}
