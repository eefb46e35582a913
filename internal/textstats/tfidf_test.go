package textstats_test

import (
	"math"
	"testing"

	"github.com/CandiaAntonio/secular-hub/internal/model"
	"github.com/CandiaAntonio/secular-hub/internal/storage"
	"github.com/CandiaAntonio/secular-hub/internal/textstats"
)

func seedThreeYears(t *testing.T) *storage.OutlookDB {
	t.Helper()
	return newSeededDB(t, []model.OutlookCall{
		textCall(1, 2024, "inflation bonds"),
		textCall(2, 2025, "inflation equities"),
		textCall(3, 2026, "inflation tariffs tariffs"),
	})
}

func TestYearTFIDF(t *testing.T) {
	db := seedThreeYears(t)
	ws := textstats.NewWordStats(db, 0)

	points, totalYears, err := ws.YearTFIDF(2026)
	if err != nil {
		t.Fatalf("YearTFIDF error: %v", err)
	}
	if totalYears != 3 {
		t.Fatalf("Expected 3 years, got %d", totalYears)
	}

	scores := make(map[string]float64)
	for _, p := range points {
		scores[p.Text] = p.TFIDF
	}

	// "tariffs" appears twice in 2026 and in no other year
	expectedTariffs := 2 * math.Log(3.0/1.0)
	if math.Abs(scores["tariffs"]-expectedTariffs) > 1e-9 {
		t.Errorf("Expected tariffs score %f, got %f", expectedTariffs, scores["tariffs"])
	}

	// "inflation" appears in every year, so its idf term is log(1) = 0
	if scores["inflation"] != 0 {
		t.Errorf("Expected inflation score 0, got %f", scores["inflation"])
	}

	// terms absent from 2026 never appear
	if _, ok := scores["bonds"]; ok {
		t.Error("Term from another year should not be scored")
	}
	if _, ok := scores["equities"]; ok {
		t.Error("Term from another year should not be scored")
	}

	if points[0].Text != "tariffs" {
		t.Errorf("Expected scores sorted descending, top was %+v", points[0])
	}
}

func TestYearTFIDFEmptyCorpus(t *testing.T) {
	db := newSeededDB(t, nil)
	ws := textstats.NewWordStats(db, 0)

	points, totalYears, err := ws.YearTFIDF(2026)
	if err != nil {
		t.Fatalf("YearTFIDF error: %v", err)
	}
	if totalYears != 0 || len(points) != 0 {
		t.Errorf("Expected empty result, got %d points over %d years", len(points), totalYears)
	}
}

type fixedProvider map[string]float64

func (p fixedProvider) Coordinate(term string) (float64, bool) {
	x, ok := p[term]
	return x, ok
}

func TestRainCoordinates(t *testing.T) {
	db := seedThreeYears(t)
	ws := textstats.NewWordStats(db, 0)

	result, err := ws.Rain(2026, fixedProvider{"tariffs": 0.9})
	if err != nil {
		t.Fatalf("Rain error: %v", err)
	}
	if result.Year != 2026 || result.TotalYears != 3 {
		t.Errorf("Unexpected result envelope: %+v", result)
	}

	for _, p := range result.Points {
		switch p.Text {
		case "tariffs":
			if p.SemanticX != 0.9 {
				t.Errorf("Expected provider coordinate 0.9, got %f", p.SemanticX)
			}
		default:
			if p.SemanticX != 0.5 {
				t.Errorf("Expected midpoint fallback for %q, got %f", p.Text, p.SemanticX)
			}
		}
	}
}

func TestRainWithoutProvider(t *testing.T) {
	db := seedThreeYears(t)
	ws := textstats.NewWordStats(db, 0)

	result, err := ws.Rain(2026, nil)
	if err != nil {
		t.Fatalf("Rain error: %v", err)
	}
	for _, p := range result.Points {
		if p.SemanticX != 0.5 {
			t.Errorf("Expected midpoint for %q without a provider, got %f", p.Text, p.SemanticX)
		}
	}
}
