package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/couchcryptid/festival-guide/internal/domain"
	"github.com/couchcryptid/festival-guide/internal/recommend"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const (
	defaultRankingLimit = 10
	maxRankingLimit     = 100
	seasonalPicks       = 5
	maxGuideBody        = 4 << 10
)

type festivalsResponse struct {
	Available bool                    `json:"available"`
	Summary   domain.Summary          `json:"summary"`
	Festivals []domain.FestivalRecord `json:"festivals"`
}

type guideRequest struct {
	Query string `json:"query"`
	Lang  string `json:"lang"`
}

type guideResponse struct {
	recommend.Result
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// records returns the current catalog records. Source failures are logged by
// the catalog and surface here as an empty table.
func (s *Server) records(r *http.Request) []domain.FestivalRecord {
	cat, err := s.catalog.Current(r.Context())
	if err != nil {
		s.logger.Debug("serving empty catalog", "path", r.URL.Path, "error", err)
	}
	return cat.Records
}

func (s *Server) handleFestivals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	months, err := parseMonthRange(q)
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	all := s.records(r)
	filter := domain.Filter{
		Months:     months,
		Regions:    q["region"],
		Categories: q["category"],
		NameQuery:  q.Get("q"),
	}
	matched := domain.SortByVisitors(filter.Apply(all))

	sharedobs.WriteJSON(w, http.StatusOK, festivalsResponse{
		Available: len(all) > 0,
		Summary:   domain.Summarize(matched),
		Festivals: matched,
	})
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	lang := domain.ParseLanguage(r.URL.Query().Get("lang"))
	sharedobs.WriteJSON(w, http.StatusOK, domain.BuildVocabulary(s.records(r), lang))
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r.URL.Query(), "limit", defaultRankingLimit, 1, maxRankingLimit)
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, domain.TopByVisitors(s.records(r), limit))
}

func (s *Server) handleSeasonal(w http.ResponseWriter, r *http.Request) {
	lang := domain.ParseLanguage(r.URL.Query().Get("lang"))
	sharedobs.WriteJSON(w, http.StatusOK, domain.SeasonalPicks(s.records(r), lang, seasonalPicks))
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil && !s.limiter.Allow() {
		s.metrics.GuideRequests.WithLabelValues("rate_limited").Inc()
		sharedobs.WriteJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many guide requests"})
		return
	}

	var req guideRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxGuideBody)).Decode(&req); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid guide request body"})
		return
	}

	lang := domain.ParseLanguage(req.Lang)
	res := s.matcher.Match(req.Query, s.records(r), lang)

	outcome := "found"
	if !res.Found {
		outcome = "not_found"
	}
	s.metrics.GuideRequests.WithLabelValues(outcome).Inc()
	s.logger.Debug("guide answered",
		"outcome", outcome,
		"region", res.RegionCode,
		"category", res.Category,
		"candidates", res.Candidates,
	)

	sharedobs.WriteJSON(w, http.StatusOK, guideResponse{Result: res, Message: recommend.Message(res)})
}

var errMonthRange = errors.New("from must not be after to")

func parseMonthRange(q url.Values) (domain.MonthRange, error) {
	from, err := parseIntParam(q, "from", 1, 1, 12)
	if err != nil {
		return domain.MonthRange{}, err
	}
	to, err := parseIntParam(q, "to", 12, 1, 12)
	if err != nil {
		return domain.MonthRange{}, err
	}
	if from > to {
		return domain.MonthRange{}, errMonthRange
	}
	return domain.MonthRange{From: from, To: to}, nil
}

func parseIntParam(q url.Values, key string, fallback, lo, hi int) (int, error) {
	s := q.Get(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be an integer in %d..%d", key, lo, hi)
	}
	return n, nil
}
