package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/CandiaAntonio/secular-hub/internal/model"
	"github.com/CandiaAntonio/secular-hub/internal/storage"
)

type Config struct {
	CSVPath   string
	DBPath    string
	BatchSize int
}

func (c Config) Validate() error {
	if c.CSVPath == "" {
		return errors.New("missing -csv")
	}
	if c.DBPath == "" {
		return errors.New("missing -db")
	}
	if c.BatchSize <= 0 {
		return errors.New("batch-size must be > 0")
	}
	return nil
}

func main() {
	cfg := Config{BatchSize: 100}
	flag.StringVar(&cfg.CSVPath, "csv", "", "Path to the outlook calls CSV export")
	flag.StringVar(&cfg.DBPath, "db", "outlooks.db", "Path to the target database")
	flag.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Records inserted per transaction")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	log.Printf("Starting ingestion...")
	log.Printf("CSV: %s", cfg.CSVPath)
	log.Printf("Database: %s", cfg.DBPath)

	db, err := storage.NewOutlookDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	file, err := os.Open(cfg.CSVPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	processed, err := ingest(csv.NewReader(file), db, cfg.BatchSize)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	log.Printf("Ingestion complete. Processed %d records.", processed)
}

// columnIndex maps header names (case-insensitive) to their positions.
func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// ingest reads rows, derives the categorization fields, and writes records in
// batches. Derivations happen here, once, so every read path sees the same
// values.
func ingest(reader *csv.Reader, db *storage.OutlookDB, batchSize int) (int, error) {
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := columnIndex(header)

	for _, required := range []string{"id", "year", "institution", "theme"} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	processed := 0
	batch := make([]model.OutlookCall, 0, batchSize)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return processed, fmt.Errorf("failed to read CSV row: %w", err)
		}

		call, err := buildCall(row, index)
		if err != nil {
			log.Printf("Skipping row: %v", err)
			continue
		}
		batch = append(batch, call)

		if len(batch) == batchSize {
			if err := db.InsertCalls(batch); err != nil {
				return processed, fmt.Errorf("failed to insert batch: %w", err)
			}
			processed += len(batch)
			batch = batch[:0]
			log.Printf("Processed %d records...", processed)
		}
	}

	if len(batch) > 0 {
		if err := db.InsertCalls(batch); err != nil {
			return processed, fmt.Errorf("failed to insert final batch: %w", err)
		}
		processed += len(batch)
	}

	return processed, nil
}

func buildCall(row []string, index map[string]int) (model.OutlookCall, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(field(row, index, "id")), 10, 64)
	if err != nil {
		return model.OutlookCall{}, fmt.Errorf("invalid id %q", field(row, index, "id"))
	}

	year, err := strconv.Atoi(strings.TrimSpace(field(row, index, "year")))
	if err != nil {
		return model.OutlookCall{}, fmt.Errorf("record %d has invalid year %q", id, field(row, index, "year"))
	}

	institution := strings.TrimSpace(field(row, index, "institution"))
	theme := strings.TrimSpace(field(row, index, "theme"))
	if theme == "" {
		theme = "Unknown"
	}
	callText := field(row, index, "call_text")

	var rank *int
	if raw := strings.TrimSpace(field(row, index, "rank")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			rank = &value
		}
	}

	call := model.OutlookCall{
		ID:                   id,
		Year:                 year,
		Institution:          institution,
		InstitutionCanonical: model.CanonicalInstitution(institution),
		Theme:                theme,
		ThemeCategory:        model.CategoryForTheme(theme),
		CallText:             callText,
		Rank:                 rank,
		ConvictionTier:       model.ConvictionTierForRank(rank),
		WordCount:            model.CountWords(callText),
	}

	if subTheme := strings.TrimSpace(field(row, index, "sub_theme")); subTheme != "" {
		call.SubTheme = &subTheme
	}
	if section := strings.TrimSpace(field(row, index, "section_description")); section != "" {
		call.SectionDescription = &section
	}

	return call, nil
}
