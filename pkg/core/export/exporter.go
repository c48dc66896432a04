// Package export writes the valuation summary to PDF, DOCX, or HTML files
// under the output directory.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"valuation_builder/pkg/core/metrics"
)

// Supported output formats.
const (
	FormatPDF  = "pdf"
	FormatDocx = "docx"
	FormatHTML = "html"
)

type Exporter struct {
	outputDir string
	now       func() time.Time
}

func NewExporter(outputDir string) *Exporter {
	if outputDir == "" {
		outputDir = "output"
	}
	return &Exporter{outputDir: outputDir, now: time.Now}
}

// document is the shared layout all three renderers consume.
type document struct {
	Title     string
	Metrics   []string
	Takeaways []string
	Summary   string
}

// Export renders the document and writes it atomically: the file appears
// under its final name only after the renderer finished, so a failed export
// leaves no partial file visible.
func (e *Exporter) Export(m *metrics.CompanyMetrics, summary string, takeaways []string, format string) (string, error) {
	doc := buildDocument(m, summary, takeaways)

	var render func(document) ([]byte, error)
	switch format {
	case FormatPDF:
		render = renderPDF
	case FormatDocx:
		render = renderDocx
	case FormatHTML:
		render = renderHTML
	default:
		return "", fmt.Errorf("%w: unsupported format %q", metrics.ErrExportFailure, format)
	}

	data, err := render(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", metrics.ErrExportFailure, err)
	}

	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("%w: create output dir: %v", metrics.ErrExportFailure, err)
	}

	filename := e.buildFilename(m.Name, format)
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", metrics.ErrExportFailure, filename, err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: finalize %s: %v", metrics.ErrExportFailure, filename, err)
	}

	fmt.Printf("[EXPORT] wrote %s\n", filename)
	return filename, nil
}

func buildDocument(m *metrics.CompanyMetrics, summary string, takeaways []string) document {
	lines := []string{
		fmt.Sprintf("Industry: %s", m.Industry),
		fmt.Sprintf("Revenue: $%.2fB", m.Revenue),
		fmt.Sprintf("Revenue Growth: %.1f%%", m.RevenueGrowth),
		fmt.Sprintf("Profit Margin: %.1f%%", m.ProfitMargin),
	}
	if m.MarketCap != nil {
		lines = append(lines, fmt.Sprintf("Market Cap: $%.2fB", *m.MarketCap))
	}
	if m.PERatio != nil {
		lines = append(lines, fmt.Sprintf("P/E Ratio: %.2f", *m.PERatio))
	}
	if m.EBITDAMargin != nil {
		lines = append(lines, fmt.Sprintf("EBITDA Margin: %.1f%%", *m.EBITDAMargin))
	}

	return document{
		Title:     fmt.Sprintf("Valuation Summary: %s", m.Name),
		Metrics:   lines,
		Takeaways: takeaways,
		Summary:   summary,
	}
}

// buildFilename produces
// output/valuation_summary_{sanitized_name}_{YYYYMMDD_HHMMSS}.{ext}.
// The timestamp keeps concurrent exports from colliding.
func (e *Exporter) buildFilename(name, format string) string {
	stamp := e.now().Format("20060102_150405")
	base := fmt.Sprintf("valuation_summary_%s_%s.%s", SanitizeName(name), stamp, format)
	return filepath.Join(e.outputDir, base)
}

// SanitizeName reduces a company name to a filesystem-safe string: letters,
// digits, spaces, hyphens, and underscores survive; everything else is
// dropped; surrounding whitespace is trimmed.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
