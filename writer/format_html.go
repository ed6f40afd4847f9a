package writer

import (
	"fmt"
	"html"
	"os"
	"strings"
)

func writeHTML(path string, columns []string, rows []map[string]any, _ map[string]string, _ map[string]any) error {
	var b strings.Builder
	b.WriteString("<table>\n  <thead>\n    <tr>")
	for _, c := range columns {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(c))
	}
	b.WriteString("</tr>\n  </thead>\n  <tbody>\n")
	for _, row := range rows {
		b.WriteString("    <tr>")
		for _, c := range columns {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cellString(row[c])))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("  </tbody>\n</table>\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("html: write %s: %w", path, err)
	}
	return nil
}
