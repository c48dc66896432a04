package marketdata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"valuation_builder/pkg/core/metrics"
)

// Adapter is the public-company source: it fetches the provider snapshot
// for a ticker and normalizes it into a CompanyMetrics record.
type Adapter struct {
	client *Client
}

func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// Fetch retrieves and normalizes metrics for ticker.
//
// Provider and transport failures never escape as-is: they are wrapped as
// ErrDataUnavailable at this boundary. Derivation failures (zero revenue,
// zero prior period) surface as ErrInvalidMetric.
func (a *Adapter) Fetch(ctx context.Context, ticker string) (*metrics.CompanyMetrics, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", metrics.ErrInvalidInput)
	}

	snapshot, err := a.client.FetchQuoteSummary(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", metrics.ErrDataUnavailable, err)
	}

	return a.normalize(ctx, ticker, snapshot)
}

func (a *Adapter) normalize(ctx context.Context, ticker string, snapshot *QuoteSummaryResult) (*metrics.CompanyMetrics, error) {
	m := &metrics.CompanyMetrics{
		Name:     ticker,
		Industry: "N/A",
		Source:   metrics.SourcePublic,
	}

	// Company identity / profile.
	marketCap := 0.0
	if snapshot.Price != nil {
		if snapshot.Price.LongName != "" {
			m.Name = snapshot.Price.LongName
		} else if snapshot.Price.ShortName != "" {
			m.Name = snapshot.Price.ShortName
		}
		if snapshot.Price.MarketCap != nil {
			marketCap = metrics.ToBillions(snapshot.Price.MarketCap.Raw, metrics.UnitScaleDollars)
		}
	}
	m.MarketCap = metrics.FloatPtr(marketCap)

	if snapshot.SummaryProfile != nil {
		if snapshot.SummaryProfile.Industry != "" {
			m.Industry = snapshot.SummaryProfile.Industry
		}
		m.Description = snapshot.SummaryProfile.LongBusinessSummary
	}

	// Revenue and net income: most recent fiscal period, raw dollars.
	history := []IncomeStatement(nil)
	if snapshot.IncomeStatementHistory != nil {
		history = snapshot.IncomeStatementHistory.Statements
	}
	if len(history) == 0 || history[0].TotalRevenue == nil || history[0].NetIncome == nil {
		return nil, fmt.Errorf("%w: no income statement history for %s", metrics.ErrDataUnavailable, ticker)
	}
	m.Revenue = metrics.ToBillions(history[0].TotalRevenue.Raw, metrics.UnitScaleDollars)
	m.NetIncome = metrics.ToBillions(history[0].NetIncome.Raw, metrics.UnitScaleDollars)

	// Growth needs two periods; a single-period history is a hard failure,
	// never a silent default.
	if len(history) < 2 || history[1].TotalRevenue == nil {
		return nil, fmt.Errorf("%w: need two fiscal periods for revenue growth of %s, have %d",
			metrics.ErrDataUnavailable, ticker, len(history))
	}
	growth, err := metrics.DeriveGrowthPercent(history[0].TotalRevenue.Raw, history[1].TotalRevenue.Raw)
	if err != nil {
		return nil, err
	}
	m.RevenueGrowth = growth

	margin, err := metrics.DeriveProfitMargin(m.NetIncome, m.Revenue)
	if err != nil {
		return nil, err
	}
	m.ProfitMargin = margin

	// P/E: forward preferred, trailing as fallback, 0 as the documented
	// degraded value when neither is present.
	peRatio := 0.0
	if snapshot.SummaryDetail != nil {
		if snapshot.SummaryDetail.ForwardPE != nil {
			peRatio = snapshot.SummaryDetail.ForwardPE.Raw
		} else if snapshot.SummaryDetail.TrailingPE != nil {
			peRatio = snapshot.SummaryDetail.TrailingPE.Raw
		}
	}
	m.PERatio = metrics.FloatPtr(peRatio)

	m.Competitors = a.officerNames(ctx, ticker, snapshot)

	return m, nil
}

// officerNames takes the assetProfile officer list when present, otherwise
// falls back to scraping the profile page's executives table. The fallback
// is best effort; an empty list is acceptable.
func (a *Adapter) officerNames(ctx context.Context, ticker string, snapshot *QuoteSummaryResult) []string {
	if snapshot.AssetProfile != nil && len(snapshot.AssetProfile.CompanyOfficers) > 0 {
		names := make([]string, 0, len(snapshot.AssetProfile.CompanyOfficers))
		for _, officer := range snapshot.AssetProfile.CompanyOfficers {
			if officer.Name != "" {
				names = append(names, officer.Name)
			}
		}
		return names
	}

	html, err := a.client.FetchProfileHTML(ctx, ticker)
	if err != nil {
		fmt.Printf("[MARKET] profile page fallback failed for %s: %v\n", ticker, err)
		return nil
	}
	return ParseOfficerTable(html)
}

// IsUnavailable reports whether err is a data-availability failure, for
// callers that map failures onto transport status codes.
func IsUnavailable(err error) bool {
	return errors.Is(err, metrics.ErrDataUnavailable)
}
