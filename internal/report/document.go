package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/anhofer/smartime/internal/store"
)

// The document builders emit the complete HTML handed to the export layer.
// Every text field passes through html.EscapeString, which covers exactly
// the five reserved markup characters.

const docStyle = `body { font-family: sans-serif; color: #0f1c2e; margin: 24px; }
h1 { font-size: 20px; }
h2 { font-size: 14px; color: #555; font-weight: normal; }
table { border-collapse: collapse; width: 100%; margin-top: 16px; }
th, td { border-bottom: 1px solid #ddd; padding: 6px 10px; text-align: left; }
th { background: #083c55; color: #fff; }
tr.total td { font-weight: bold; border-top: 2px solid #083c55; }`

// SummaryDocument renders the per-property totals for one period.
func SummaryDocument(label string, rows []SummaryRow) string {
	var b strings.Builder
	docHead(&b, "Zeiterfassung "+label)
	fmt.Fprintf(&b, "<h1>Zeiterfassung</h1>\n<h2>%s</h2>\n", html.EscapeString(label))

	b.WriteString("<table>\n<tr><th>Liegenschaft</th><th>Dauer</th></tr>\n")
	var total int64
	for _, r := range rows {
		total += r.TotalMinutes
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(r.Name), html.EscapeString(r.Formatted))
	}
	fmt.Fprintf(&b, "<tr class=\"total\"><td>Gesamt</td><td>%s</td></tr>\n", html.EscapeString(FmtMin(total)))
	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}

// PropertyDocument renders one property's entry detail plus its period total.
func PropertyDocument(p store.Property, label string, rows []DetailRow, totalMinutes int64) string {
	var b strings.Builder
	docHead(&b, "Zeiterfassung "+p.Name)
	fmt.Fprintf(&b, "<h1>%s</h1>\n<h2>%s &middot; %s</h2>\n",
		html.EscapeString(p.Name), html.EscapeString(p.Address()), html.EscapeString(label))

	b.WriteString("<table>\n<tr><th>Datum</th><th>Start</th><th>Ende</th><th>Minuten</th><th>Dauer</th></tr>\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(r.Date), html.EscapeString(r.Start), html.EscapeString(r.End),
			html.EscapeString(r.Minutes), html.EscapeString(r.Formatted))
	}
	fmt.Fprintf(&b, "<tr class=\"total\"><td colspan=\"4\">Gesamt</td><td>%s</td></tr>\n",
		html.EscapeString(FmtMin(totalMinutes)))
	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}

func docHead(b *strings.Builder, title string) {
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(b, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(b, "<style>%s</style>\n</head>\n<body>\n", docStyle)
}
