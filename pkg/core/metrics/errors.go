package metrics

import "errors"

// Failure taxonomy for the normalization pipeline. Callers match with
// errors.Is; the concrete cause is carried in the wrapping message.
var (
	// ErrDataUnavailable means the market-data fetch or parse failed,
	// including a statement history too short to compute growth.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrInvalidMetric means a derived ratio came out non-finite,
	// e.g. a profit margin over zero revenue.
	ErrInvalidMetric = errors.New("invalid derived metric")

	// ErrInvalidInput means a private-company field was missing or malformed.
	ErrInvalidInput = errors.New("invalid company input")

	// ErrExportFailure means document generation or the file write failed.
	ErrExportFailure = errors.New("document export failed")
)
