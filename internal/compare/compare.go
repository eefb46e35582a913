package compare

import (
	"fmt"
	"sort"

	"github.com/CandiaAntonio/secular-hub/internal/model"
	"github.com/CandiaAntonio/secular-hub/internal/storage"
)

// maxInstitutionalChanges bounds the pivot list in a comparison payload.
// Truncation is stable: the first entries encountered win, no sampling.
const maxInstitutionalChanges = 50

type Comparator struct {
	db *storage.OutlookDB
}

func NewComparator(db *storage.OutlookDB) *Comparator {
	return &Comparator{db: db}
}

// Compare classifies every theme category seen in either year as emerged,
// extinct, grown or declined, and lists each institution's covered categories
// in both years. Comparing a year against itself is a valid no-op: every
// category counts out equal and all four theme lists come back empty.
func (c *Comparator) Compare(year1, year2 int) (model.ComparisonResult, error) {
	counts1, err := c.yearCategoryCounts(year1)
	if err != nil {
		return model.ComparisonResult{}, fmt.Errorf("counts for year %d failed: %w", year1, err)
	}
	counts2, err := c.yearCategoryCounts(year2)
	if err != nil {
		return model.ComparisonResult{}, fmt.Errorf("counts for year %d failed: %w", year2, err)
	}

	result := model.ComparisonResult{
		Year1:          year1,
		Year2:          year2,
		ThemesEmerged:  []string{},
		ThemesExtinct:  []string{},
		ThemesGrew:     []model.ThemeDelta{},
		ThemesDeclined: []model.ThemeDelta{},
	}

	for _, theme := range unionKeys(counts1, counts2) {
		c1 := counts1[theme]
		c2 := counts2[theme]
		delta := c2 - c1

		switch {
		case c1 == 0 && c2 > 0:
			result.ThemesEmerged = append(result.ThemesEmerged, theme)
		case c1 > 0 && c2 == 0:
			result.ThemesExtinct = append(result.ThemesExtinct, theme)
		case delta > 0:
			result.ThemesGrew = append(result.ThemesGrew, model.ThemeDelta{Theme: theme, Delta: delta})
		case delta < 0:
			result.ThemesDeclined = append(result.ThemesDeclined, model.ThemeDelta{Theme: theme, Delta: delta})
		}
		// c1 == c2 > 0: unchanged, omitted
	}

	sort.SliceStable(result.ThemesGrew, func(i, j int) bool {
		return result.ThemesGrew[i].Delta > result.ThemesGrew[j].Delta
	})
	sort.SliceStable(result.ThemesDeclined, func(i, j int) bool {
		return result.ThemesDeclined[i].Delta < result.ThemesDeclined[j].Delta
	})

	changes, err := c.institutionalChanges(year1, year2)
	if err != nil {
		return model.ComparisonResult{}, err
	}
	result.InstitutionalChanges = changes

	return result, nil
}

func (c *Comparator) yearCategoryCounts(year int) (map[string]int, error) {
	buckets, err := c.db.GroupByThemeCategory(model.Filter{Year: &year})
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(buckets))
	for _, b := range buckets {
		counts[b.Theme] = b.Count
	}
	return counts, nil
}

// institutionalChanges lists, for every institution present in either year,
// the distinct theme categories it covered in each. Duplicates are already
// collapsed by the distinct pair grouping.
func (c *Comparator) institutionalChanges(year1, year2 int) ([]model.InstitutionalChange, error) {
	pairs1, err := c.db.InstitutionThemePairs(year1)
	if err != nil {
		return nil, fmt.Errorf("pairs for year %d failed: %w", year1, err)
	}
	pairs2, err := c.db.InstitutionThemePairs(year2)
	if err != nil {
		return nil, fmt.Errorf("pairs for year %d failed: %w", year2, err)
	}

	themes1 := groupByInstitution(pairs1)
	themes2 := groupByInstitution(pairs2)

	// institutions in first-encountered order: year1 pairs, then the
	// institutions only year2 adds
	var order []string
	seen := make(map[string]bool)
	for _, p := range pairs1 {
		if !seen[p.Institution] {
			seen[p.Institution] = true
			order = append(order, p.Institution)
		}
	}
	for _, p := range pairs2 {
		if !seen[p.Institution] {
			seen[p.Institution] = true
			order = append(order, p.Institution)
		}
	}

	changes := make([]model.InstitutionalChange, 0, len(order))
	for _, inst := range order {
		changes = append(changes, model.InstitutionalChange{
			Institution: inst,
			Year1Themes: orEmpty(themes1[inst]),
			Year2Themes: orEmpty(themes2[inst]),
		})
		if len(changes) == maxInstitutionalChanges {
			break
		}
	}
	return changes, nil
}

func groupByInstitution(pairs []model.InstitutionTheme) map[string][]string {
	grouped := make(map[string][]string)
	for _, p := range pairs {
		grouped[p.Institution] = append(grouped[p.Institution], p.ThemeCategory)
	}
	return grouped
}

func orEmpty(themes []string) []string {
	if themes == nil {
		return []string{}
	}
	return themes
}

func unionKeys(a, b map[string]int) []string {
	keys := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for k := range a {
		seen[k] = true
		keys = append(keys, k)
	}
	for k := range b {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Rankings orders one year's raw themes by count. The base-case anchor theme
// holds rank 0; every other theme ranks 1..n in descending count order.
func (c *Comparator) Rankings(year int) ([]model.ThemeRanking, error) {
	buckets, err := c.db.GroupByTheme(model.Filter{Year: &year})
	if err != nil {
		return nil, fmt.Errorf("theme ranking for year %d failed: %w", year, err)
	}

	rankings := make([]model.ThemeRanking, 0, len(buckets))
	rank := 1
	for _, b := range buckets {
		r := model.ThemeRanking{
			Year:  year,
			Theme: b.Theme,
			Type:  model.RankingType(model.CategoryForTheme(b.Theme)),
			Count: b.Count,
		}
		if b.Theme == model.BaseCaseTheme {
			r.Rank = 0
		} else {
			r.Rank = rank
			rank++
		}
		rankings = append(rankings, r)
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Rank < rankings[j].Rank
	})
	return rankings, nil
}
