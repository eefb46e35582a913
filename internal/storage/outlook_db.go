package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/CandiaAntonio/secular-hub/internal/model"
)

type OutlookDB struct {
	db *sql.DB
}

func NewOutlookDB(dbPath string) (*OutlookDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open outlook database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	odb := &OutlookDB{db: db}

	if err := odb.initSchema(); err != nil {
		return nil, err
	}

	return odb, nil
}

func (o *OutlookDB) initSchema() error {
	_, err := o.db.Exec(Schema)
	return err
}

func (o *OutlookDB) Close() error {
	return o.db.Close()
}

// buildWhere translates a filter into a WHERE clause. Substring predicates use
// instr() because sqlite LIKE is case-insensitive for ASCII and the contract
// here is case-sensitive containment.
func buildWhere(f model.Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Year != nil {
		conds = append(conds, "year = ?")
		args = append(args, *f.Year)
	}
	if f.Institution != "" {
		conds = append(conds, "instr(institution, ?) > 0")
		args = append(args, f.Institution)
	}
	if f.Theme != "" {
		conds = append(conds, "instr(theme, ?) > 0")
		args = append(args, f.Theme)
	}
	if f.ThemeCategory != "" {
		conds = append(conds, "theme_category = ?")
		args = append(args, f.ThemeCategory)
	}
	if f.Conviction != "" {
		conds = append(conds, "conviction_tier = ?")
		args = append(args, f.Conviction)
	}
	if f.Search != "" {
		conds = append(conds, "(instr(call_text, ?) > 0 OR instr(theme, ?) > 0 OR instr(institution, ?) > 0)")
		args = append(args, f.Search, f.Search, f.Search)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

const callColumns = `id, year, institution, institution_canonical, theme, sub_theme,
	theme_category, section_description, call_text, rank, conviction_tier, word_count`

func scanCall(scanner interface{ Scan(...interface{}) error }) (model.OutlookCall, error) {
	var call model.OutlookCall
	var subTheme, sectionDescription sql.NullString
	var rank sql.NullInt64

	err := scanner.Scan(
		&call.ID,
		&call.Year,
		&call.Institution,
		&call.InstitutionCanonical,
		&call.Theme,
		&subTheme,
		&call.ThemeCategory,
		&sectionDescription,
		&call.CallText,
		&rank,
		&call.ConvictionTier,
		&call.WordCount,
	)
	if err != nil {
		return model.OutlookCall{}, err
	}

	if subTheme.Valid {
		call.SubTheme = &subTheme.String
	}
	if sectionDescription.Valid {
		call.SectionDescription = &sectionDescription.String
	}
	if rank.Valid {
		r := int(rank.Int64)
		call.Rank = &r
	}
	return call, nil
}

// FindMany returns one page of matching records in stable ascending-id order.
func (o *OutlookDB) FindMany(f model.Filter, limit, offset int) ([]model.OutlookCall, error) {
	where, args := buildWhere(f)
	query := "SELECT " + callColumns + " FROM outlook_calls" + where + " ORDER BY id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := o.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query outlook calls: %w", err)
	}
	defer rows.Close()

	calls := make([]model.OutlookCall, 0)
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outlook call: %w", err)
		}
		calls = append(calls, call)
	}
	return calls, rows.Err()
}

func (o *OutlookDB) Count(f model.Filter) (int, error) {
	where, args := buildWhere(f)
	var count int
	err := o.db.QueryRow("SELECT COUNT(*) FROM outlook_calls"+where, args...).Scan(&count)
	return count, err
}

// GetByID returns the record with the given id, or nil when absent.
func (o *OutlookDB) GetByID(id int64) (*model.OutlookCall, error) {
	row := o.db.QueryRow("SELECT "+callColumns+" FROM outlook_calls WHERE id = ?", id)
	call, err := scanCall(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get outlook call %d: %w", id, err)
	}
	return &call, nil
}

// GroupByYear returns per-year counts, newest year first.
func (o *OutlookDB) GroupByYear(f model.Filter) ([]model.YearCount, error) {
	where, args := buildWhere(f)
	rows, err := o.db.Query(
		"SELECT year, COUNT(*) FROM outlook_calls"+where+" GROUP BY year ORDER BY year DESC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to group by year: %w", err)
	}
	defer rows.Close()

	counts := make([]model.YearCount, 0)
	for rows.Next() {
		var yc model.YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, yc)
	}
	return counts, rows.Err()
}

// GroupByThemeCategory returns per-category counts, largest first. Ties break
// alphabetically so repeated calls are deterministic.
func (o *OutlookDB) GroupByThemeCategory(f model.Filter) ([]model.ThemeCount, error) {
	where, args := buildWhere(f)
	rows, err := o.db.Query(
		"SELECT theme_category, COUNT(*) FROM outlook_calls"+where+
			" GROUP BY theme_category ORDER BY COUNT(*) DESC, theme_category ASC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to group by theme category: %w", err)
	}
	defer rows.Close()

	counts := make([]model.ThemeCount, 0)
	for rows.Next() {
		var tc model.ThemeCount
		if err := rows.Scan(&tc.Theme, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// GroupByTheme returns per raw-theme counts, largest first.
func (o *OutlookDB) GroupByTheme(f model.Filter) ([]model.ThemeCount, error) {
	where, args := buildWhere(f)
	rows, err := o.db.Query(
		"SELECT theme, COUNT(*) FROM outlook_calls"+where+
			" GROUP BY theme ORDER BY COUNT(*) DESC, theme ASC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to group by theme: %w", err)
	}
	defer rows.Close()

	counts := make([]model.ThemeCount, 0)
	for rows.Next() {
		var tc model.ThemeCount
		if err := rows.Scan(&tc.Theme, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// GroupByInstitution returns per canonical-institution counts, largest first.
func (o *OutlookDB) GroupByInstitution(f model.Filter) ([]model.InstitutionCount, error) {
	where, args := buildWhere(f)
	rows, err := o.db.Query(
		"SELECT institution_canonical, COUNT(*) FROM outlook_calls"+where+
			" GROUP BY institution_canonical ORDER BY COUNT(*) DESC, institution_canonical ASC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to group by institution: %w", err)
	}
	defer rows.Close()

	counts := make([]model.InstitutionCount, 0)
	for rows.Next() {
		var ic model.InstitutionCount
		if err := rows.Scan(&ic.Institution, &ic.Count); err != nil {
			return nil, err
		}
		counts = append(counts, ic)
	}
	return counts, rows.Err()
}

// InstitutionThemePairs returns the distinct (institution, theme category)
// pairs covered in one year, in a stable order.
func (o *OutlookDB) InstitutionThemePairs(year int) ([]model.InstitutionTheme, error) {
	rows, err := o.db.Query(
		`SELECT DISTINCT institution_canonical, theme_category FROM outlook_calls
		 WHERE year = ? ORDER BY institution_canonical ASC, theme_category ASC`,
		year,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query institution theme pairs: %w", err)
	}
	defer rows.Close()

	pairs := make([]model.InstitutionTheme, 0)
	for rows.Next() {
		var p model.InstitutionTheme
		if err := rows.Scan(&p.Institution, &p.ThemeCategory); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// CallTexts returns every call text for the optional year filter. A nil year
// selects the whole corpus. Empty texts are included so document counts match
// record counts.
func (o *OutlookDB) CallTexts(year *int) ([]string, error) {
	query := "SELECT call_text FROM outlook_calls"
	var args []interface{}
	if year != nil {
		query += " WHERE year = ?"
		args = append(args, *year)
	}

	rows, err := o.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query call texts: %w", err)
	}
	defer rows.Close()

	texts := make([]string, 0)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

// YearCallTexts returns every call text tagged with its year.
func (o *OutlookDB) YearCallTexts() ([]model.YearText, error) {
	rows, err := o.db.Query("SELECT year, call_text FROM outlook_calls")
	if err != nil {
		return nil, fmt.Errorf("failed to query year call texts: %w", err)
	}
	defer rows.Close()

	texts := make([]model.YearText, 0)
	for rows.Next() {
		var yt model.YearText
		if err := rows.Scan(&yt.Year, &yt.Text); err != nil {
			return nil, err
		}
		texts = append(texts, yt)
	}
	return texts, rows.Err()
}

// Years returns the distinct years present in the corpus, newest first.
func (o *OutlookDB) Years() ([]int, error) {
	rows, err := o.db.Query("SELECT DISTINCT year FROM outlook_calls ORDER BY year DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer rows.Close()

	years := make([]int, 0)
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

// InsertCalls writes a batch of records in one transaction.
func (o *OutlookDB) InsertCalls(calls []model.OutlookCall) error {
	tx, err := o.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO outlook_calls
		(id, year, institution, institution_canonical, theme, sub_theme,
		 theme_category, section_description, call_text, rank, conviction_tier, word_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, call := range calls {
		var subTheme, sectionDescription interface{}
		if call.SubTheme != nil {
			subTheme = *call.SubTheme
		}
		if call.SectionDescription != nil {
			sectionDescription = *call.SectionDescription
		}
		var rank interface{}
		if call.Rank != nil {
			rank = *call.Rank
		}

		_, err := stmt.Exec(
			call.ID, call.Year, call.Institution, call.InstitutionCanonical,
			call.Theme, subTheme, call.ThemeCategory, sectionDescription,
			call.CallText, rank, call.ConvictionTier, call.WordCount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert outlook call %d: %w", call.ID, err)
		}
	}

	return tx.Commit()
}
