package textstats_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/CandiaAntonio/secular-hub/internal/model"
	"github.com/CandiaAntonio/secular-hub/internal/storage"
	"github.com/CandiaAntonio/secular-hub/internal/textstats"
)

func newSeededDB(t *testing.T, calls []model.OutlookCall) *storage.OutlookDB {
	t.Helper()
	db, err := storage.NewOutlookDB(filepath.Join(t.TempDir(), "outlooks.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.InsertCalls(calls); err != nil {
		t.Fatalf("Failed to insert calls: %v", err)
	}
	return db
}

func textCall(id int64, year int, text string) model.OutlookCall {
	return model.OutlookCall{
		ID:                   id,
		Year:                 year,
		Institution:          "Test",
		InstitutionCanonical: "Test",
		Theme:                "GROWTH",
		ThemeCategory:        "Macro Outlook",
		CallText:             text,
		ConvictionTier:       model.ConvictionLow,
		WordCount:            model.CountWords(text),
	}
}

func TestFrequencyCountsAndFilters(t *testing.T) {
	db := newSeededDB(t, []model.OutlookCall{
		textCall(1, 2026, "The AI boom is real"),
		textCall(2, 2026, "AI and growth dominate"),
	})
	ws := textstats.NewWordStats(db, 0)

	result, err := ws.Frequency(nil, 0)
	if err != nil {
		t.Fatalf("Frequency error: %v", err)
	}

	if result.TotalDocuments != 2 {
		t.Errorf("Expected 2 documents, got %d", result.TotalDocuments)
	}

	values := make(map[string]int)
	for _, entry := range result.Words {
		values[entry.Text] = entry.Value
	}
	if values["boom"] != 1 || values["real"] != 1 || values["growth"] != 1 || values["dominate"] != 1 {
		t.Errorf("Unexpected counts: %v", values)
	}
	for _, excluded := range []string{"the", "is", "and", "ai"} {
		if _, ok := values[excluded]; ok {
			t.Errorf("Token %q should have been excluded", excluded)
		}
	}
}

func TestFrequencySortedAndDeterministic(t *testing.T) {
	db := newSeededDB(t, []model.OutlookCall{
		textCall(1, 2026, "inflation inflation inflation growth growth bonds"),
	})
	ws := textstats.NewWordStats(db, 0)

	first, err := ws.Frequency(nil, 0)
	if err != nil {
		t.Fatalf("Frequency error: %v", err)
	}

	if first.Words[0].Text != "inflation" || first.Words[0].Value != 3 {
		t.Errorf("Expected inflation first with 3, got %+v", first.Words[0])
	}
	for i := 1; i < len(first.Words); i++ {
		if first.Words[i].Value > first.Words[i-1].Value {
			t.Errorf("Words not sorted by value descending at %d: %+v", i, first.Words)
		}
	}

	second, err := ws.Frequency(nil, 0)
	if err != nil {
		t.Fatalf("Frequency error: %v", err)
	}
	if !reflect.DeepEqual(first.Words, second.Words) {
		t.Errorf("Repeated calls differ:\n%v\n%v", first.Words, second.Words)
	}
}

func TestFrequencyYearFilterAndLimit(t *testing.T) {
	db := newSeededDB(t, []model.OutlookCall{
		textCall(1, 2025, "recession recession recession"),
		textCall(2, 2026, "expansion expansion rally bonds"),
	})
	ws := textstats.NewWordStats(db, 0)

	year := 2026
	result, err := ws.Frequency(&year, 2)
	if err != nil {
		t.Fatalf("Frequency error: %v", err)
	}

	if result.TotalDocuments != 1 {
		t.Errorf("Expected 1 document for 2026, got %d", result.TotalDocuments)
	}
	if len(result.Words) != 2 {
		t.Fatalf("Expected limit of 2 words, got %d", len(result.Words))
	}
	if result.Words[0].Text != "expansion" || result.Words[0].Value != 2 {
		t.Errorf("Expected expansion first, got %+v", result.Words[0])
	}
	for _, entry := range result.Words {
		if entry.Text == "recession" {
			t.Error("Token from another year leaked through the filter")
		}
	}

	if !reflect.DeepEqual(result.AvailableYears, []int{2026, 2025}) {
		t.Errorf("Expected available years [2026 2025], got %v", result.AvailableYears)
	}
}

func TestFrequencyLimitCappedAtMax(t *testing.T) {
	db := newSeededDB(t, []model.OutlookCall{
		textCall(1, 2026, "alpha beta gamma delta epsilon"),
	})
	ws := textstats.NewWordStats(db, 3)

	result, err := ws.Frequency(nil, 100)
	if err != nil {
		t.Fatalf("Frequency error: %v", err)
	}
	if len(result.Words) != 3 {
		t.Errorf("Expected configured cap of 3 to apply, got %d words", len(result.Words))
	}
}
