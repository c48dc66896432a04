// Package private normalizes user-entered private-company figures. It is a
// pure transform: no network calls, fails only on missing or malformed input.
package private

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"valuation_builder/pkg/core/metrics"
)

// Input is the raw private-company form submission. Numeric fields arrive
// as strings, exactly as typed.
type Input struct {
	Name          string          `json:"name"`
	Industry      string          `json:"industry"`
	Revenue       string          `json:"revenue"`        // millions of dollars
	RevenueGrowth string          `json:"revenue_growth"` // percent
	ProfitMargin  string          `json:"profit_margin"`  // percent
	EBITDAMargin  string          `json:"ebitda_margin"`  // percent
	Competitors   CompetitorsList `json:"competitors"`    // "a, b, c" or ["a","b","c"]
	Description   string          `json:"description"`
}

// CompetitorsList accepts either a comma-separated string or a JSON array.
// A string is split and trimmed; an array passes through unchanged. Order
// is preserved either way.
type CompetitorsList []string

func (c *CompetitorsList) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*c = SplitCompetitors(asString)
		return nil
	}
	var asList []string
	if err := json.Unmarshal(data, &asList); err != nil {
		return fmt.Errorf("competitors must be a string or a list of strings")
	}
	*c = asList
	return nil
}

// SplitCompetitors turns "Acme, Globex,  Initech" into ["Acme","Globex","Initech"].
func SplitCompetitors(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Field ranges, matching the entry form's limits.
const (
	minGrowthPct = -100.0
	maxGrowthPct = 1000.0
	minMarginPct = -100.0
	maxMarginPct = 100.0
)

type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

// Process validates the form and produces the normalized record.
//
// Presence is checked explicitly per field: an entered zero (e.g. exactly
// 0% revenue growth) is a valid value, not a missing one. Missing or
// malformed fields surface as ErrInvalidInput naming the field.
func (a *Adapter) Process(input Input) (*metrics.CompanyMetrics, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", metrics.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Industry) == "" {
		return nil, fmt.Errorf("%w: industry is required", metrics.ErrInvalidInput)
	}
	if len(input.Competitors) == 0 {
		return nil, fmt.Errorf("%w: competitors are required", metrics.ErrInvalidInput)
	}

	revenueMillions, err := parseField("revenue", input.Revenue, 0, 0)
	if err != nil {
		return nil, err
	}
	if revenueMillions < 0 {
		return nil, fmt.Errorf("%w: revenue must not be negative", metrics.ErrInvalidInput)
	}
	growth, err := parseField("revenue_growth", input.RevenueGrowth, minGrowthPct, maxGrowthPct)
	if err != nil {
		return nil, err
	}
	profitMargin, err := parseField("profit_margin", input.ProfitMargin, minMarginPct, maxMarginPct)
	if err != nil {
		return nil, err
	}
	ebitdaMargin, err := parseField("ebitda_margin", input.EBITDAMargin, minMarginPct, maxMarginPct)
	if err != nil {
		return nil, err
	}

	revenueBillions := metrics.ToBillions(revenueMillions, metrics.UnitScaleMillions)

	return &metrics.CompanyMetrics{
		Name:          strings.TrimSpace(input.Name),
		Industry:      strings.TrimSpace(input.Industry),
		Revenue:       revenueBillions,
		RevenueGrowth: growth,
		NetIncome:     metrics.DeriveNetIncome(revenueBillions, profitMargin),
		ProfitMargin:  profitMargin,
		EBITDAMargin:  metrics.FloatPtr(ebitdaMargin),
		Competitors:   input.Competitors,
		Description:   strings.TrimSpace(input.Description),
		Source:        metrics.SourcePrivate,
		// MarketCap and PERatio stay nil: not meaningful for a private company.
	}, nil
}

// parseField parses one numeric form field. min==max disables the range check.
func parseField(name, raw string, min, max float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", metrics.ErrInvalidInput, name)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a number: %q", metrics.ErrInvalidInput, name, raw)
	}
	if min != max && (value < min || value > max) {
		return 0, fmt.Errorf("%w: %s must be between %g and %g", metrics.ErrInvalidInput, name, min, max)
	}
	return value, nil
}
