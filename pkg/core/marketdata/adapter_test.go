package marketdata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"valuation_builder/pkg/core/metrics"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second}, nil)
	return NewAdapter(client)
}

func quoteSummaryJSON(body string) string {
	return fmt.Sprintf(`{"quoteSummary":{"result":[%s],"error":null}}`, body)
}

func TestFetch_TwoPeriodGrowth(t *testing.T) {
	payload := quoteSummaryJSON(`{
		"price": {"longName": "Example Corp", "marketCap": {"raw": 5.0e11}},
		"incomeStatementHistory": {"incomeStatementHistory": [
			{"totalRevenue": {"raw": 1.5e11}, "netIncome": {"raw": 3.0e10}},
			{"totalRevenue": {"raw": 1.0e11}, "netIncome": {"raw": 2.0e10}}
		]}
	}`)
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	})

	m, err := adapter.Fetch(context.Background(), "EXMP")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if math.Abs(m.RevenueGrowth-50.0) > 1e-9 {
		t.Errorf("RevenueGrowth = %v, want 50.0", m.RevenueGrowth)
	}
}

func TestFetch_SinglePeriodIsDataUnavailable(t *testing.T) {
	payload := quoteSummaryJSON(`{
		"price": {"longName": "Example Corp"},
		"incomeStatementHistory": {"incomeStatementHistory": [
			{"totalRevenue": {"raw": 1.5e11}, "netIncome": {"raw": 3.0e10}}
		]}
	}`)
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	})

	_, err := adapter.Fetch(context.Background(), "EXMP")
	if !errors.Is(err, metrics.ErrDataUnavailable) {
		t.Fatalf("want ErrDataUnavailable for single-period history, got %v", err)
	}
}

func TestFetch_EndToEndNormalization(t *testing.T) {
	// Market cap 2.5e12, revenue [120e9, 100e9], net income 30e9,
	// forward P/E absent, trailing 25.0.
	payload := quoteSummaryJSON(`{
		"price": {"longName": "Example Corp", "marketCap": {"raw": 2.5e12}},
		"summaryProfile": {"industry": "Consumer Electronics", "longBusinessSummary": "Designs things."},
		"summaryDetail": {"trailingPE": {"raw": 25.0}},
		"assetProfile": {"companyOfficers": [{"name": "Pat Lee", "title": "CEO"}, {"name": "Sam Roe", "title": "CFO"}]},
		"incomeStatementHistory": {"incomeStatementHistory": [
			{"totalRevenue": {"raw": 1.2e11}, "netIncome": {"raw": 3.0e10}},
			{"totalRevenue": {"raw": 1.0e11}, "netIncome": {"raw": 2.5e10}}
		]}
	}`)
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	})

	m, err := adapter.Fetch(context.Background(), "EXMP")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	approx := func(field string, got, want float64) {
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %v, want %v", field, got, want)
		}
	}
	if m.MarketCap == nil {
		t.Fatal("MarketCap missing for public company")
	}
	approx("MarketCap", *m.MarketCap, 2500.0)
	approx("Revenue", m.Revenue, 120.0)
	approx("NetIncome", m.NetIncome, 30.0)
	approx("RevenueGrowth", m.RevenueGrowth, 20.0)
	approx("ProfitMargin", m.ProfitMargin, 25.0)
	if m.PERatio == nil {
		t.Fatal("PERatio missing for public company")
	}
	approx("PERatio", *m.PERatio, 25.0)

	if m.Name != "Example Corp" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Industry != "Consumer Electronics" {
		t.Errorf("Industry = %q", m.Industry)
	}
	if len(m.Competitors) != 2 || m.Competitors[0] != "Pat Lee" || m.Competitors[1] != "Sam Roe" {
		t.Errorf("Competitors = %v, want officer names in order", m.Competitors)
	}
	if !m.IsPublic() {
		t.Error("Source should be public")
	}
}

func TestFetch_ZeroRevenueIsInvalidMetric(t *testing.T) {
	payload := quoteSummaryJSON(`{
		"price": {"longName": "Zero Co"},
		"incomeStatementHistory": {"incomeStatementHistory": [
			{"totalRevenue": {"raw": 0}, "netIncome": {"raw": 1.0e9}},
			{"totalRevenue": {"raw": 1.0e9}, "netIncome": {"raw": 1.0e9}}
		]}
	}`)
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	})

	_, err := adapter.Fetch(context.Background(), "ZERO")
	if !errors.Is(err, metrics.ErrInvalidMetric) {
		t.Fatalf("want ErrInvalidMetric for zero revenue, got %v", err)
	}
}

func TestFetch_ProviderErrorsWrappedAtBoundary(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http 500", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>not json</html>")
		}},
		{"in-band error", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"quoteSummary":{"result":[],"error":{"code":"Not Found","description":"no such ticker"}}}`)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adapter := newTestAdapter(t, tc.handler)
			_, err := adapter.Fetch(context.Background(), "NOPE")
			if !errors.Is(err, metrics.ErrDataUnavailable) {
				t.Fatalf("want ErrDataUnavailable, got %v", err)
			}
		})
	}
}

func TestFetch_EmptyTicker(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty ticker")
	})
	_, err := adapter.Fetch(context.Background(), "  ")
	if !errors.Is(err, metrics.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}
