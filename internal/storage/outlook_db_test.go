package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/CandiaAntonio/secular-hub/internal/model"
	"github.com/CandiaAntonio/secular-hub/internal/storage"
)

func intPtr(v int) *int { return &v }

func newTestDB(t *testing.T) *storage.OutlookDB {
	t.Helper()
	db, err := storage.NewOutlookDB(filepath.Join(t.TempDir(), "outlooks.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedCalls(t *testing.T, db *storage.OutlookDB, calls []model.OutlookCall) {
	t.Helper()
	if err := db.InsertCalls(calls); err != nil {
		t.Fatalf("Failed to insert calls: %v", err)
	}
}

func call(id int64, year int, institution, theme, category, text string) model.OutlookCall {
	return model.OutlookCall{
		ID:                   id,
		Year:                 year,
		Institution:          institution,
		InstitutionCanonical: model.CanonicalInstitution(institution),
		Theme:                theme,
		ThemeCategory:        category,
		CallText:             text,
		ConvictionTier:       model.ConvictionLow,
		WordCount:            model.CountWords(text),
	}
}

func TestInsertAndGetByID(t *testing.T) {
	db := newTestDB(t)

	sub := "Rate path"
	seedCalls(t, db, []model.OutlookCall{
		{
			ID:                   1,
			Year:                 2026,
			Institution:          "Goldman Sachs",
			InstitutionCanonical: "Goldman Sachs",
			Theme:                "RATE CUTS",
			SubTheme:             &sub,
			ThemeCategory:        "Monetary Policy",
			CallText:             "Cuts continue into the second half",
			Rank:                 intPtr(3),
			ConvictionTier:       model.ConvictionHigh,
			WordCount:            6,
		},
	})

	got, err := db.GetByID(1)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got == nil {
		t.Fatal("Expected record, got nil")
	}
	if got.Theme != "RATE CUTS" || got.ThemeCategory != "Monetary Policy" {
		t.Errorf("Unexpected theme fields: %+v", got)
	}
	if got.SubTheme == nil || *got.SubTheme != "Rate path" {
		t.Errorf("Expected sub theme 'Rate path', got %v", got.SubTheme)
	}
	if got.Rank == nil || *got.Rank != 3 {
		t.Errorf("Expected rank 3, got %v", got.Rank)
	}

	missing, err := db.GetByID(99)
	if err != nil {
		t.Fatalf("GetByID error for missing record: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing record, got %+v", missing)
	}
}

func TestFindManyOrderAndFilters(t *testing.T) {
	db := newTestDB(t)
	seedCalls(t, db, []model.OutlookCall{
		call(3, 2026, "BlackRock", "AI", "Thematic", "AI adoption accelerates"),
		call(1, 2026, "Goldman Sachs", "GROWTH", "Macro Outlook", "Growth slows"),
		call(2, 2025, "Goldman Sachs", "GROWTH", "Macro Outlook", "Growth holds"),
	})

	all, err := db.FindMany(model.Filter{}, 50, 0)
	if err != nil {
		t.Fatalf("FindMany error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].ID <= all[i-1].ID {
			t.Errorf("Records not in ascending id order: %d after %d", all[i].ID, all[i-1].ID)
		}
	}

	tests := []struct {
		name     string
		filter   model.Filter
		expected int
	}{
		{"year filter", model.Filter{Year: intPtr(2026)}, 2},
		{"institution substring", model.Filter{Institution: "Black"}, 1},
		{"institution wrong case", model.Filter{Institution: "black"}, 0},
		{"theme substring", model.Filter{Theme: "GROW"}, 2},
		{"category equality", model.Filter{ThemeCategory: "Thematic"}, 1},
		{"search across fields", model.Filter{Search: "Growth"}, 2},
		{"search matches institution", model.Filter{Search: "BlackRock"}, 1},
		{"no match", model.Filter{Search: "bitcoin"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := db.Count(tt.filter)
			if err != nil {
				t.Fatalf("Count error: %v", err)
			}
			if count != tt.expected {
				t.Errorf("Expected %d matches, got %d", tt.expected, count)
			}
		})
	}
}

func TestGroupings(t *testing.T) {
	db := newTestDB(t)
	seedCalls(t, db, []model.OutlookCall{
		call(1, 2025, "Goldman Sachs", "GROWTH", "Macro Outlook", ""),
		call(2, 2026, "Goldman Sachs", "GROWTH", "Macro Outlook", ""),
		call(3, 2026, "Goldman Sachs", "AI", "Thematic", ""),
		call(4, 2026, "BlackRock", "AI", "Thematic", ""),
		call(5, 2026, "BlackRock", "BONDS", "Fixed Income", ""),
	})

	years, err := db.GroupByYear(model.Filter{})
	if err != nil {
		t.Fatalf("GroupByYear error: %v", err)
	}
	if len(years) != 2 || years[0].Year != 2026 || years[0].Count != 4 {
		t.Errorf("Unexpected year buckets: %+v", years)
	}

	themes, err := db.GroupByThemeCategory(model.Filter{})
	if err != nil {
		t.Fatalf("GroupByThemeCategory error: %v", err)
	}
	if len(themes) != 3 {
		t.Fatalf("Expected 3 theme buckets, got %d", len(themes))
	}
	if themes[0].Theme != "Macro Outlook" && themes[0].Theme != "Thematic" {
		t.Errorf("Expected a top bucket with count 2, got %+v", themes[0])
	}
	if themes[len(themes)-1].Theme != "Fixed Income" || themes[len(themes)-1].Count != 1 {
		t.Errorf("Expected Fixed Income last with count 1, got %+v", themes[len(themes)-1])
	}

	institutions, err := db.GroupByInstitution(model.Filter{})
	if err != nil {
		t.Fatalf("GroupByInstitution error: %v", err)
	}
	if len(institutions) != 2 {
		t.Fatalf("Expected 2 institution buckets, got %d", len(institutions))
	}

	pairs, err := db.InstitutionThemePairs(2026)
	if err != nil {
		t.Fatalf("InstitutionThemePairs error: %v", err)
	}
	if len(pairs) != 4 {
		t.Errorf("Expected 4 distinct pairs for 2026, got %d: %+v", len(pairs), pairs)
	}

	yearsOnly, err := db.Years()
	if err != nil {
		t.Fatalf("Years error: %v", err)
	}
	if len(yearsOnly) != 2 || yearsOnly[0] != 2026 || yearsOnly[1] != 2025 {
		t.Errorf("Expected years [2026 2025], got %v", yearsOnly)
	}
}

func TestCallTexts(t *testing.T) {
	db := newTestDB(t)
	seedCalls(t, db, []model.OutlookCall{
		call(1, 2025, "A", "GROWTH", "Macro Outlook", "first text"),
		call(2, 2026, "A", "GROWTH", "Macro Outlook", "second text"),
		call(3, 2026, "B", "AI", "Thematic", ""),
	})

	all, err := db.CallTexts(nil)
	if err != nil {
		t.Fatalf("CallTexts error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 texts including the empty one, got %d", len(all))
	}

	year := 2026
	filtered, err := db.CallTexts(&year)
	if err != nil {
		t.Fatalf("CallTexts error: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("Expected 2 texts for 2026, got %d", len(filtered))
	}

	tagged, err := db.YearCallTexts()
	if err != nil {
		t.Fatalf("YearCallTexts error: %v", err)
	}
	if len(tagged) != 3 {
		t.Errorf("Expected 3 tagged texts, got %d", len(tagged))
	}
}
