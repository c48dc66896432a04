package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

func renderPDF(doc document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.MultiCell(0, 12, doc.Title, "", "L", false)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, "Key Metrics:", "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range doc.Metrics {
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
	pdf.Ln(6)

	if len(doc.Takeaways) > 0 {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 8, "Key Takeaways:", "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 12)
		for _, item := range doc.Takeaways {
			pdf.MultiCell(0, 6, "- "+item, "", "L", false)
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, "Analysis:", "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, doc.Summary, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
