package marketdata

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseOfficerTable extracts officer names from a profile page's
// key-executives table. Row order is preserved; the name is expected in the
// first cell. Returns nil when no plausible table exists.
func ParseOfficerTable(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var names []string
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		if !isOfficerTable(table) {
			return true // keep scanning
		}
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() == 0 {
				return // header row
			}
			name := strings.TrimSpace(cells.First().Text())
			if name != "" {
				names = append(names, name)
			}
		})
		return false
	})

	return names
}

// isOfficerTable recognizes the executives table by its header cells.
func isOfficerTable(table *goquery.Selection) bool {
	header := strings.ToLower(table.Find("tr").First().Text())
	return strings.Contains(header, "name") &&
		(strings.Contains(header, "title") || strings.Contains(header, "position"))
}
