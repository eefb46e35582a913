package textstats

import (
	"fmt"
	"sort"

	"github.com/CandiaAntonio/secular-hub/internal/storage"
	"github.com/CandiaAntonio/secular-hub/internal/tokenizer"
)

// DefaultMaxWords caps word cloud payloads.
const DefaultMaxWords = 150

// Entry is one word cloud entry: a token with its occurrence count.
type Entry struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// FrequencyResult is the word cloud payload for one year selection.
type FrequencyResult struct {
	Words          []Entry
	TotalDocuments int
	AvailableYears []int
}

type WordStats struct {
	db        *storage.OutlookDB
	tokenizer *tokenizer.Tokenizer
	maxWords  int
}

func NewWordStats(db *storage.OutlookDB, maxWords int) *WordStats {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &WordStats{
		db:        db,
		tokenizer: tokenizer.NewTokenizer(),
		maxWords:  maxWords,
	}
}

// MaxWords reports the configured payload cap.
func (w *WordStats) MaxWords() int {
	return w.maxWords
}

// Frequency computes occurrence counts across every call text matching the
// optional year filter. Counts are corpus-wide totals, not per-document
// weights. Limit values outside (0, maxWords] fall back to maxWords.
func (w *WordStats) Frequency(year *int, limit int) (FrequencyResult, error) {
	if limit <= 0 || limit > w.maxWords {
		limit = w.maxWords
	}

	texts, err := w.db.CallTexts(year)
	if err != nil {
		return FrequencyResult{}, fmt.Errorf("failed to load call texts: %w", err)
	}

	counts := make(map[string]int)
	for _, text := range texts {
		for _, token := range w.tokenizer.Tokenize(text) {
			counts[token]++
		}
	}

	years, err := w.db.Years()
	if err != nil {
		return FrequencyResult{}, fmt.Errorf("failed to load available years: %w", err)
	}

	return FrequencyResult{
		Words:          topEntries(counts, limit),
		TotalDocuments: len(texts),
		AvailableYears: years,
	}, nil
}

// topEntries sorts by count descending and truncates. Ties order
// alphabetically so identical input always yields identical output.
func topEntries(counts map[string]int, limit int) []Entry {
	entries := make([]Entry, 0, len(counts))
	for text, value := range counts {
		entries = append(entries, Entry{Text: text, Value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Text < entries[j].Text
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
