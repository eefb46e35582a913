package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/CandiaAntonio/secular-hub/internal/aggregate"
	"github.com/CandiaAntonio/secular-hub/internal/model"
)

// parseIntDefault treats unparseable values as absent, falling back to the
// given default instead of failing the request.
func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

// parseOptionalInt returns nil for empty or unparseable values.
func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

func (s *Server) handleListOutlooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := model.Filter{
		Year:          parseOptionalInt(q.Get("year")),
		Institution:   q.Get("institution"),
		Theme:         q.Get("theme"),
		ThemeCategory: q.Get("theme_category"),
		Conviction:    q.Get("conviction"),
		Search:        q.Get("search"),
	}
	limit := parseIntDefault(q.Get("limit"), aggregate.DefaultLimit)
	page := parseIntDefault(q.Get("page"), aggregate.DefaultPage)

	result, err := s.engine.List(filter, limit, page)
	if err != nil {
		log.Printf("List query failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":       result.Data,
		"pagination": result.Pagination,
		"filters_applied": map[string]interface{}{
			"year":          filter.Year,
			"institution":   filter.Institution,
			"theme":         filter.Theme,
			"themeCategory": filter.ThemeCategory,
			"conviction":    filter.Conviction,
			"search":        filter.Search,
		},
	})
}

func (s *Server) handleGetOutlook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	call, err := s.engine.Get(id)
	if err != nil {
		log.Printf("Get outlook %d failed: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if call == nil {
		respondError(w, http.StatusNotFound, "outlook call not found")
		return
	}

	respondJSON(w, http.StatusOK, call)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.Stats()
	if err != nil {
		log.Printf("Stats query failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year1, err1 := strconv.Atoi(q.Get("year1"))
	year2, err2 := strconv.Atoi(q.Get("year2"))
	if err1 != nil || err2 != nil {
		respondError(w, http.StatusBadRequest, "year1 and year2 parameters required")
		return
	}

	result, err := s.comparator.Compare(year1, year2)
	if err != nil {
		log.Printf("Compare %d/%d failed: %v", year1, year2, err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleThemesForYear(w http.ResponseWriter, r *http.Request) {
	year := parseIntDefault(r.URL.Query().Get("year"), 0)
	themes, err := s.engine.ThemesForYear(year)
	if err != nil {
		log.Printf("Theme stats for year %d failed: %v", year, err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusOK, themes)
}

func (s *Server) handleInstitutionsForYear(w http.ResponseWriter, r *http.Request) {
	year := parseIntDefault(r.URL.Query().Get("year"), 0)
	institutions, err := s.engine.InstitutionsForYear(year)
	if err != nil {
		log.Printf("Institution stats for year %d failed: %v", year, err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusOK, institutions)
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "year parameter required")
		return
	}

	rankings, rErr := s.comparator.Rankings(year)
	if rErr != nil {
		log.Printf("Rankings for year %d failed: %v", year, rErr)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusOK, rankings)
}

func (s *Server) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year := parseOptionalInt(q.Get("year"))
	limit := parseIntDefault(q.Get("limit"), 0)

	result, err := s.words.Frequency(year, limit)
	if err != nil {
		log.Printf("Word frequency failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	var yearField interface{} = "all"
	if year != nil {
		yearField = *year
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"year":           yearField,
		"wordCount":      len(result.Words),
		"totalDocuments": result.TotalDocuments,
		"words":          result.Words,
		"availableYears": result.AvailableYears,
	})
}

func (s *Server) handleWordRain(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "year parameter required")
		return
	}

	result, rErr := s.words.Rain(year, s.semantic)
	if rErr != nil {
		log.Printf("Word rain for year %d failed: %v", year, rErr)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSentimentTerm(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		respondError(w, http.StatusBadRequest, "term parameter required")
		return
	}

	result := s.analyzer.Analyze(r.Context(), term)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"term":      term,
		"sentiment": result,
	})
}

func (s *Server) handleSentimentBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Terms []string `json:"terms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Terms) == 0 {
		respondError(w, http.StatusBadRequest, "Invalid request: terms array required")
		return
	}

	terms := body.Terms
	if len(terms) > s.analyzer.MaxTerms() {
		terms = terms[:s.analyzer.MaxTerms()]
	}

	results := s.analyzer.BatchAnalyze(r.Context(), terms)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results":  results,
		"analyzed": len(terms),
		"cached":   s.analyzer.CacheSize(),
	})
}
