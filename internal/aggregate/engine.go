package aggregate

import (
	"fmt"

	"github.com/CandiaAntonio/secular-hub/internal/model"
	"github.com/CandiaAntonio/secular-hub/internal/storage"
)

const (
	DefaultLimit = 50
	DefaultPage  = 1
)

// Pagination describes one served page of records.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ListResult is one page of filtered records plus the total match count.
type ListResult struct {
	Data       []model.OutlookCall `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

type Engine struct {
	db *storage.OutlookDB
}

func NewEngine(db *storage.OutlookDB) *Engine {
	return &Engine{db: db}
}

// List returns the requested page of matching records in ascending-id order.
// Out-of-range limit/page values fall back to the defaults rather than
// failing; absence of a filter field means no constraint.
func (e *Engine) List(f model.Filter, limit, page int) (ListResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}
	offset := (page - 1) * limit

	data, err := e.db.FindMany(f, limit, offset)
	if err != nil {
		return ListResult{}, fmt.Errorf("list query failed: %w", err)
	}

	total, err := e.db.Count(f)
	if err != nil {
		return ListResult{}, fmt.Errorf("count query failed: %w", err)
	}

	return ListResult{
		Data: data,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
		},
	}, nil
}

// Get returns a single record by id, or nil when absent.
func (e *Engine) Get(id int64) (*model.OutlookCall, error) {
	return e.db.GetByID(id)
}

// Stats computes the corpus-wide rollup: total count plus grouped counts for
// every dimension, each as an explicitly typed bucket list.
func (e *Engine) Stats() (model.Stats, error) {
	total, err := e.db.Count(model.Filter{})
	if err != nil {
		return model.Stats{}, fmt.Errorf("total count failed: %w", err)
	}

	years, err := e.db.GroupByYear(model.Filter{})
	if err != nil {
		return model.Stats{}, fmt.Errorf("year rollup failed: %w", err)
	}

	themes, err := e.db.GroupByThemeCategory(model.Filter{})
	if err != nil {
		return model.Stats{}, fmt.Errorf("theme rollup failed: %w", err)
	}

	institutions, err := e.db.GroupByInstitution(model.Filter{})
	if err != nil {
		return model.Stats{}, fmt.Errorf("institution rollup failed: %w", err)
	}

	return model.Stats{
		TotalRecords: total,
		Years:        years,
		Themes:       themes,
		Institutions: institutions,
	}, nil
}

// ThemesForYear returns the per-category counts of one year.
func (e *Engine) ThemesForYear(year int) ([]model.ThemeCount, error) {
	return e.db.GroupByThemeCategory(model.Filter{Year: &year})
}

// InstitutionsForYear returns the per-institution counts of one year.
func (e *Engine) InstitutionsForYear(year int) ([]model.InstitutionCount, error) {
	return e.db.GroupByInstitution(model.Filter{Year: &year})
}
