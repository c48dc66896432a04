// Package marketdata fetches public-company fundamentals from a
// quoteSummary-style provider API and maps them into the normalized
// metrics record.
package marketdata

// RawValue is the provider's wrapped numeric field: {"raw": 2.5e12, "fmt": "2.5T"}.
type RawValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

// QuoteSummaryResponse is the provider envelope.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummaryResult `json:"result"`
		Error  *APIError            `json:"error"`
	} `json:"quoteSummary"`
}

// APIError is the provider's in-band error object.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// QuoteSummaryResult carries the requested modules. Any module may be absent.
type QuoteSummaryResult struct {
	Price                  *PriceModule            `json:"price"`
	SummaryProfile         *SummaryProfileModule   `json:"summaryProfile"`
	SummaryDetail          *SummaryDetailModule    `json:"summaryDetail"`
	AssetProfile           *AssetProfileModule     `json:"assetProfile"`
	IncomeStatementHistory *IncomeStatementHistory `json:"incomeStatementHistory"`
}

type PriceModule struct {
	LongName  string    `json:"longName"`
	ShortName string    `json:"shortName"`
	MarketCap *RawValue `json:"marketCap"`
}

type SummaryProfileModule struct {
	Industry            string `json:"industry"`
	Sector              string `json:"sector"`
	LongBusinessSummary string `json:"longBusinessSummary"`
}

type SummaryDetailModule struct {
	ForwardPE  *RawValue `json:"forwardPE"`
	TrailingPE *RawValue `json:"trailingPE"`
}

type AssetProfileModule struct {
	CompanyOfficers []Officer `json:"companyOfficers"`
}

type Officer struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// IncomeStatementHistory lists annual statements, most recent first.
type IncomeStatementHistory struct {
	Statements []IncomeStatement `json:"incomeStatementHistory"`
}

type IncomeStatement struct {
	EndDate      *RawValue `json:"endDate"`
	TotalRevenue *RawValue `json:"totalRevenue"`
	NetIncome    *RawValue `json:"netIncome"`
}
