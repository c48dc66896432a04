package prompt

// Known prompt identifiers.
const (
	ValuationSummary   = "valuation.summary"
	ValuationTakeaways = "valuation.takeaways"
)

// GetValuationPrompt returns a valuation prompt template by short name,
// e.g. "summary" -> "valuation.summary".
func GetValuationPrompt(name string) (*Template, error) {
	return Get().GetPrompt("valuation." + name)
}
