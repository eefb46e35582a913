package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/CandiaAntonio/secular-hub/internal/aggregate"
	"github.com/CandiaAntonio/secular-hub/internal/compare"
	"github.com/CandiaAntonio/secular-hub/internal/sentiment"
	"github.com/CandiaAntonio/secular-hub/internal/textstats"
)

// Server wires the aggregation, comparison and text-analytics engines into
// the JSON API consumed by the dashboard frontend.
type Server struct {
	engine     *aggregate.Engine
	comparator *compare.Comparator
	words      *textstats.WordStats
	analyzer   *sentiment.Analyzer
	semantic   textstats.SemanticProvider
}

func New(engine *aggregate.Engine, comparator *compare.Comparator, words *textstats.WordStats, analyzer *sentiment.Analyzer, semantic textstats.SemanticProvider) *Server {
	return &Server{
		engine:     engine,
		comparator: comparator,
		words:      words,
		analyzer:   analyzer,
		semantic:   semantic,
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/outlooks", s.handleListOutlooks)
		r.Get("/outlooks/{id}", s.handleGetOutlook)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", s.handleStats)
			r.Get("/compare", s.handleCompare)
			r.Get("/themes", s.handleThemesForYear)
			r.Get("/institutions", s.handleInstitutionsForYear)
			r.Get("/rankings", s.handleRankings)
			r.Get("/wordcloud", s.handleWordCloud)
			r.Get("/wordrain", s.handleWordRain)
			r.Get("/sentiment", s.handleSentimentTerm)
			r.Post("/sentiment", s.handleSentimentBatch)
		})
	})

	return r
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError serves the stable error envelope every failure on this API
// uses. Responses are whole or not at all, never partial.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
