// Package metrics defines the canonical company-metrics record and the
// normalization rules shared by the public and private data sources.
// All monetary fields are expressed in billions of dollars and all rates
// in percent, regardless of which source produced the record.
package metrics

// CompanyMetrics is the normalized record consumed by the summary generator
// and the document exporter. It is built exactly once per user interaction,
// from exactly one source adapter, and never mutated afterwards.
type CompanyMetrics struct {
	Name          string  `json:"name"`
	Industry      string  `json:"industry"` // "N/A" when the provider has none
	Revenue       float64 `json:"revenue"`        // billions
	RevenueGrowth float64 `json:"revenue_growth"` // percent, may be negative
	NetIncome     float64 `json:"net_income"`     // billions
	ProfitMargin  float64 `json:"profit_margin"`  // percent

	// Public-market fields. Nil for private companies.
	MarketCap *float64 `json:"market_cap,omitempty"` // billions
	PERatio   *float64 `json:"pe_ratio,omitempty"`

	// EBITDAMargin is only collected for private companies (percent).
	EBITDAMargin *float64 `json:"ebitda_margin,omitempty"`

	Competitors []string `json:"competitors"` // insertion order preserved
	Description string   `json:"description,omitempty"`
	Source      string   `json:"source"` // "public" or "private"
}

// IsPublic reports whether the record came from the market-data provider.
func (m *CompanyMetrics) IsPublic() bool {
	return m.Source == SourcePublic
}

const (
	SourcePublic  = "public"
	SourcePrivate = "private"
)

// FloatPtr returns a pointer to f. Used when populating the optional
// public-market fields.
func FloatPtr(f float64) *float64 { return &f }
