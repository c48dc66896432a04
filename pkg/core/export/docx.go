package export

import (
	"bytes"

	"github.com/fumiama/go-docx"
)

func renderDocx(doc document) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	w.AddParagraph().AddText(doc.Title).Size("36").Bold()
	w.AddParagraph()

	w.AddParagraph().AddText("Key Metrics").Size("28").Bold()
	for _, line := range doc.Metrics {
		w.AddParagraph().AddText(line)
	}
	w.AddParagraph()

	if len(doc.Takeaways) > 0 {
		w.AddParagraph().AddText("Key Takeaways").Size("28").Bold()
		for _, item := range doc.Takeaways {
			w.AddParagraph().AddText("- " + item)
		}
		w.AddParagraph()
	}

	w.AddParagraph().AddText("Analysis").Size("28").Bold()
	w.AddParagraph().AddText(doc.Summary)

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
