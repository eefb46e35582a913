package model

// OutlookCall is one categorized outlook call from the corpus. Records are
// immutable once ingested; derived fields (conviction tier, word count) are
// computed at ingestion time, not on read.
type OutlookCall struct {
	ID                   int64   `json:"id"`
	Year                 int     `json:"year"`
	Institution          string  `json:"institution"`
	InstitutionCanonical string  `json:"institutionCanonical"`
	Theme                string  `json:"theme"`
	SubTheme             *string `json:"subTheme"`
	ThemeCategory        string  `json:"themeCategory"`
	SectionDescription   *string `json:"sectionDescription"`
	CallText             string  `json:"callText"`
	Rank                 *int    `json:"rank"`
	ConvictionTier       string  `json:"convictionTier"`
	WordCount            int     `json:"wordCount"`
}

// Filter selects a subset of the corpus. Zero values mean "no constraint".
// Institution, Theme and Search are case-sensitive substring matches;
// Search ORs across call text, theme and institution.
type Filter struct {
	Year          *int
	Institution   string
	Theme         string
	ThemeCategory string
	Conviction    string
	Search        string
}

// YearCount is the grouped count for a single year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// ThemeCount is the grouped count for a single theme category (or raw theme).
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// InstitutionCount is the grouped count for a single canonical institution.
type InstitutionCount struct {
	Institution string `json:"institution"`
	Count       int    `json:"count"`
}

// InstitutionTheme is one distinct (institution, theme category) pairing
// observed within a year.
type InstitutionTheme struct {
	Institution   string
	ThemeCategory string
}

// YearText is one call text tagged with its year, for per-year term statistics.
type YearText struct {
	Year int
	Text string
}

// Stats is the corpus-wide rollup served by the stats endpoint.
type Stats struct {
	TotalRecords int                `json:"total_records"`
	Years        []YearCount        `json:"years"`
	Themes       []ThemeCount       `json:"themes"`
	Institutions []InstitutionCount `json:"institutions"`
}

// ThemeDelta records how much a theme category grew or declined between the
// two compared years.
type ThemeDelta struct {
	Theme string `json:"theme"`
	Delta int    `json:"delta"`
}

// InstitutionalChange lists the theme categories an institution covered in
// each of the two compared years.
type InstitutionalChange struct {
	Institution string   `json:"institution"`
	Year1Themes []string `json:"year1_themes"`
	Year2Themes []string `json:"year2_themes"`
}

// ComparisonResult is the year-over-year delta between two corpus snapshots.
// It is computed on demand and never persisted.
type ComparisonResult struct {
	Year1                int                   `json:"year1"`
	Year2                int                   `json:"year2"`
	ThemesEmerged        []string              `json:"themes_emerged"`
	ThemesExtinct        []string              `json:"themes_extinct"`
	ThemesGrew           []ThemeDelta          `json:"themes_grew"`
	ThemesDeclined       []ThemeDelta          `json:"themes_declined"`
	InstitutionalChanges []InstitutionalChange `json:"institutional_changes"`
}

// ThemeRanking is a theme's position within one year's ranking. Rank 0 is
// reserved for the base-case anchor theme.
type ThemeRanking struct {
	Year  int    `json:"year"`
	Theme string `json:"theme"`
	Type  string `json:"type"` // "Macro" or "Thematic"
	Rank  int    `json:"rank"`
	Count int    `json:"count"`
}
