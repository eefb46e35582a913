package storage

const Schema = `
-- Outlook calls: the full categorized corpus, one row per call.
-- Rows are written once by the ingest tool and read-only afterwards.
CREATE TABLE IF NOT EXISTS outlook_calls (
    id INTEGER PRIMARY KEY,
    year INTEGER NOT NULL,
    institution TEXT NOT NULL,
    institution_canonical TEXT NOT NULL,
    theme TEXT NOT NULL,
    sub_theme TEXT,
    theme_category TEXT NOT NULL,
    section_description TEXT,
    call_text TEXT NOT NULL DEFAULT '',
    rank INTEGER,                     -- editorial ordering, unique within a year only
    conviction_tier TEXT NOT NULL,
    word_count INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_outlook_calls_year ON outlook_calls(year);
CREATE INDEX IF NOT EXISTS idx_outlook_calls_theme_category ON outlook_calls(theme_category);
CREATE INDEX IF NOT EXISTS idx_outlook_calls_institution ON outlook_calls(institution_canonical);
-- Composite index for per-year category rollups and pivot pairs
CREATE INDEX IF NOT EXISTS idx_outlook_calls_year_category ON outlook_calls(year, theme_category);
`
