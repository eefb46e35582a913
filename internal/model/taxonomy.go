package model

import "strings"

// Conviction tiers derived from an institution's internal rank of a call
// within a year. Rank is editorial; tiers are cutoffs, not statistics.
const (
	ConvictionHigh   = "high"
	ConvictionMedium = "medium"
	ConvictionLow    = "low"
)

// BaseCaseTheme is the anchor/consensus scenario label. It holds rank 0 in a
// year's theme ranking.
const BaseCaseTheme = "BASE CASE"

// themeCategories maps every raw theme label in the corpus into the fixed
// category taxonomy. Labels not listed here fall back to "Thematic".
var themeCategories = map[string]string{
	// Macro Outlook
	"BASE CASE":    "Macro Outlook",
	"GROWTH":       "Macro Outlook",
	"RECESSION":    "Macro Outlook",
	"SLOWDOWN":     "Macro Outlook",
	"SOFT LANDING": "Macro Outlook",
	"STAGFLATION":  "Macro Outlook",
	"RISKS":        "Macro Outlook",
	"VOLATILITY":   "Macro Outlook",
	"UNEMPLOYMENT": "Macro Outlook",

	// Inflation & Prices
	"INFLATION":    "Inflation & Prices",
	"DISINFLATION": "Inflation & Prices",
	"WAGES":        "Inflation & Prices",

	// Monetary Policy
	"MONETARY POLICY":          "Monetary Policy",
	"PIVOT":                    "Monetary Policy",
	"RATE CUTS":                "Monetary Policy",
	"TIGHTENING":               "Monetary Policy",
	"QUANTITATIVE EASING":      "Monetary Policy",
	"QUANTITATIVE TIGHTENING":  "Monetary Policy",
	"HIGH RATES":               "Monetary Policy",
	"INTEREST RATES":           "Monetary Policy",
	"LIQUIDITY":                "Monetary Policy",
	"NEGATIVE RATES":           "Monetary Policy",

	// Fiscal Policy
	"FISCAL":   "Fiscal Policy",
	"STIMULUS": "Fiscal Policy",

	// Equities
	"STOCKS":        "Equities",
	"COMPANIES":     "Equities",
	"EARNINGS":      "Equities",
	"VALUATIONS":    "Equities",
	"CYCLICALS":     "Equities",
	"SECTORS":       "Equities",
	"QUALITY":       "Equities",
	"ROTATION":      "Equities",
	"STOCK PICKING": "Equities",
	"MAGNIFICENT 7": "Equities",
	"TECH":          "Equities",
	"RALLY":         "Equities",

	// Fixed Income
	"BONDS":       "Fixed Income",
	"CREDIT":      "Fixed Income",
	"YIELDS":      "Fixed Income",
	"SPREADS":     "Fixed Income",
	"DURATION":    "Fixed Income",
	"DEFAULTS":    "Fixed Income",
	"REFINANCING": "Fixed Income",
	"BOND SUPPLY": "Fixed Income",
	"INCOME":      "Fixed Income",
	"STEEPENING":  "Fixed Income",

	// Currencies
	"CURRENCIES": "Currencies",
	"DOLLAR":     "Currencies",

	// Commodities
	"COMMODITIES": "Commodities",
	"METALS":      "Commodities",
	"ENERGY":      "Commodities",

	// Alternatives
	"ALTERNATIVE ASSETS": "Alternatives",
	"REAL ESTATE":        "Alternatives",
	"PRIVATE MARKETS":    "Alternatives",
	"HEDGE FUNDS":        "Alternatives",

	// Multi-Asset
	"MULTI ASSET":     "Multi-Asset",
	"DIVERSIFICATION": "Multi-Asset",
	"HEDGING":         "Multi-Asset",
	"RETURNS":         "Multi-Asset",

	// Regions
	"US":     "Regions",
	"UK":     "Regions",
	"EUROPE": "Regions",
	"CHINA":  "Regions",
	"ASIA":   "Regions",
	"APAC":   "Regions",
	"GLOBAL": "Regions",
	"JAPAN":  "Regions",

	// Thematic
	"AI":           "Thematic",
	"ESG":          "Thematic",
	"WAR":          "Thematic",
	"GEOPOLITICS":  "Thematic",
	"POLITICS":     "Thematic",
	"ELECTIONS":    "Thematic",
	"REGULATION":   "Thematic",
	"RESHORING":    "Thematic",
	"SUPPLY CHAIN": "Thematic",
	"TARIFFS":      "Thematic",
	"TRADE":        "Thematic",
	"COVID":        "Thematic",
	"BREXIT":       "Thematic",
	"CONSUMERS":    "Thematic",
}

// macroCategories are the categories ranked as "Macro" in theme rankings;
// everything else ranks as "Thematic".
var macroCategories = map[string]bool{
	"Macro Outlook":      true,
	"Inflation & Prices": true,
	"Monetary Policy":    true,
	"Fiscal Policy":      true,
}

// institutionCanonical collapses publisher-arm and abbreviation variants of an
// institution name onto one canonical form.
var institutionCanonical = map[string]string{
	"JP Morgan":                        "J.P. Morgan",
	"JPMorgan":                         "J.P. Morgan",
	"J.P. Morgan Asset Management":     "J.P. Morgan",
	"JPMorgan Chase":                   "J.P. Morgan",
	"Goldman Sachs Asset Management":   "Goldman Sachs",
	"GSAM":                             "Goldman Sachs",
	"Morgan Stanley IM":                "Morgan Stanley",
	"Morgan Stanley Wealth Management": "Morgan Stanley",
	"BlackRock Investment Institute":   "BlackRock",
	"Amundi Asset Management":          "Amundi",
	"Amundi Institute":                 "Amundi",
	"UBS AM":                           "UBS",
	"UBS Global Wealth Management":     "UBS",
	"Wells Fargo Investment Institute": "Wells Fargo",
	"BofA":                             "Bank of America",
	"BofA Global Research":             "Bank of America",
	"Schroders plc":                    "Schroders",
	"PIMCO LLC":                        "PIMCO",
	"Invesco Ltd":                      "Invesco",
	"T. Rowe Price Group":              "T. Rowe Price",
}

// CategoryForTheme maps a raw theme label into the category taxonomy.
// Unknown labels map to "Thematic".
func CategoryForTheme(theme string) string {
	if cat, ok := themeCategories[strings.ToUpper(strings.TrimSpace(theme))]; ok {
		return cat
	}
	return "Thematic"
}

// RankingType classifies a theme category as "Macro" or "Thematic" for
// longitudinal rankings.
func RankingType(category string) string {
	if macroCategories[category] {
		return "Macro"
	}
	return "Thematic"
}

// CanonicalInstitution resolves an institution name to its canonical form,
// falling back to the trimmed raw name.
func CanonicalInstitution(raw string) string {
	name := strings.TrimSpace(raw)
	if canonical, ok := institutionCanonical[name]; ok {
		return canonical
	}
	return name
}

// ConvictionTierForRank derives the editorial conviction tier from a call's
// rank within its year. A missing rank is low conviction.
func ConvictionTierForRank(rank *int) string {
	if rank == nil {
		return ConvictionLow
	}
	switch {
	case *rank <= 10:
		return ConvictionHigh
	case *rank <= 30:
		return ConvictionMedium
	default:
		return ConvictionLow
	}
}

// CountWords counts whitespace-separated words in a call text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
