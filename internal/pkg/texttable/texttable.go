// Package texttable renders rows as a psql-style ASCII table for the
// plain-text listing endpoints.
package texttable

import "strings"

// Render formats headers and rows as:
//
//	+----+------+
//	| id | name |
//	|----+------|
//	| 1  | Bob  |
//	+----+------+
//
// Cells shorter than the column width are right-padded.
func Render(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRule(&b, widths, '+')
	writeRow(&b, headers, widths)
	writeRule(&b, widths, '|')
	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	writeRule(&b, widths, '+')
	return b.String()
}

func writeRule(b *strings.Builder, widths []int, edge byte) {
	b.WriteByte(edge)
	for i, w := range widths {
		if i > 0 {
			b.WriteByte('+')
		}
		b.WriteString(strings.Repeat("-", w+2))
	}
	b.WriteByte(edge)
	b.WriteByte('\n')
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteByte('|')
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteByte(' ')
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", w-len(cell)))
		b.WriteString(" |")
	}
	b.WriteByte('\n')
}
