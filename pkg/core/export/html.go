package export

import (
	"bytes"
	"html"
	"html/template"

	"valuation_builder/pkg/core/utils"
)

var htmlTmpl = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
h1 { border-bottom: 1px solid #ccc; padding-bottom: .4rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<h2>Key Metrics</h2>
<ul>
{{range .Metrics}}<li>{{.}}</li>
{{end}}</ul>
{{if .Takeaways}}<h2>Key Takeaways</h2>
<ul>
{{range .Takeaways}}<li>{{.}}</li>
{{end}}</ul>
{{end}}<h2>Analysis</h2>
{{.SummaryHTML}}
</body>
</html>
`))

func renderHTML(doc document) ([]byte, error) {
	// The summary is markdown from the model; render it properly instead
	// of dumping it as text.
	rendered, err := utils.RenderHTML(doc.Summary)
	if err != nil {
		rendered = "<p>" + html.EscapeString(doc.Summary) + "</p>"
	}

	data := struct {
		Title       string
		Metrics     []string
		Takeaways   []string
		SummaryHTML template.HTML
	}{
		Title:       doc.Title,
		Metrics:     doc.Metrics,
		Takeaways:   doc.Takeaways,
		SummaryHTML: template.HTML(rendered),
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
