package textstats

import (
	"fmt"
	"math"
	"sort"
)

// RainPoint positions one term in the word rain: TF-IDF drives prominence,
// the semantic coordinate drives horizontal placement.
type RainPoint struct {
	Text      string  `json:"text"`
	TFIDF     float64 `json:"tfidf"`
	SemanticX float64 `json:"semanticX"`
}

// RainResult is the word rain payload for one year.
type RainResult struct {
	Year       int         `json:"year"`
	Points     []RainPoint `json:"points"`
	TotalYears int         `json:"totalYears"`
}

// SemanticProvider supplies a precomputed 1-D semantic coordinate in [0,1]
// for a term. Coordinates come from an external embedding projection; terms
// the provider does not know fall back to the midpoint.
type SemanticProvider interface {
	Coordinate(term string) (float64, bool)
}

// StaticProvider is a fixed term → coordinate table, typically loaded from a
// projection file produced offline.
type StaticProvider map[string]float64

func (p StaticProvider) Coordinate(term string) (float64, bool) {
	x, ok := p[term]
	return x, ok
}

const defaultSemanticX = 0.5

// YearTFIDF scores every term of one year's corpus slice against the set of
// years as documents: tf(term, year) * log(totalYears / yearsContainingTerm).
// Terms absent from the selected year are excluded, so yearsContainingTerm is
// always at least 1 for every scored term. Output is sorted by score
// descending, alphabetical on ties, truncated to the configured cap.
func (w *WordStats) YearTFIDF(year int) ([]RainPoint, int, error) {
	texts, err := w.db.YearCallTexts()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load corpus texts: %w", err)
	}

	// term frequencies per year
	perYear := make(map[int]map[string]int)
	for _, yt := range texts {
		counts := perYear[yt.Year]
		if counts == nil {
			counts = make(map[string]int)
			perYear[yt.Year] = counts
		}
		for _, token := range w.tokenizer.Tokenize(yt.Text) {
			counts[token]++
		}
	}

	totalYears := len(perYear)
	if totalYears == 0 {
		return []RainPoint{}, 0, nil
	}

	yearsWithTerm := make(map[string]int)
	for _, counts := range perYear {
		for term := range counts {
			yearsWithTerm[term]++
		}
	}

	points := make([]RainPoint, 0, len(perYear[year]))
	for term, tf := range perYear[year] {
		df := yearsWithTerm[term]
		if df == 0 {
			continue
		}
		score := float64(tf) * math.Log(float64(totalYears)/float64(df))
		points = append(points, RainPoint{Text: term, TFIDF: score})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].TFIDF != points[j].TFIDF {
			return points[i].TFIDF > points[j].TFIDF
		}
		return points[i].Text < points[j].Text
	})

	if len(points) > w.maxWords {
		points = points[:w.maxWords]
	}
	return points, totalYears, nil
}

// Rain joins the year's TF-IDF scores with semantic coordinates.
func (w *WordStats) Rain(year int, provider SemanticProvider) (RainResult, error) {
	points, totalYears, err := w.YearTFIDF(year)
	if err != nil {
		return RainResult{}, err
	}

	for i := range points {
		x := defaultSemanticX
		if provider != nil {
			if coord, ok := provider.Coordinate(points[i].Text); ok {
				x = coord
			}
		}
		points[i].SemanticX = x
	}

	return RainResult{
		Year:       year,
		Points:     points,
		TotalYears: totalYears,
	}, nil
}
