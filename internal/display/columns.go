package display

import (
	"strings"
	"unicode/utf8"
)

// columnGap is the minimum space between two columns.
const columnGap = 2

// FormatColumns lays items out row by row in equal-width columns that fit
// width. Spare width is spread evenly between columns. With singleColumn,
// or when the widest item does not fit, items are printed one per line.
func FormatColumns(items []string, singleColumn bool, width int) string {
	if singleColumn || len(items) == 0 {
		return strings.Join(items, "\n")
	}

	colWidth := 0
	for _, item := range items {
		colWidth = max(colWidth, utf8.RuneCountInString(item))
	}
	colWidth += columnGap
	if colWidth > width {
		return strings.Join(items, "\n")
	}

	cols := width / colWidth
	padded := colWidth + (width-cols*colWidth)/cols

	var rows []string
	for start := 0; start < len(items); start += cols {
		end := min(start+cols, len(items))
		var b strings.Builder
		for _, item := range items[start:end] {
			b.WriteString(item)
			b.WriteString(strings.Repeat(" ", padded-utf8.RuneCountInString(item)))
		}
		rows = append(rows, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(rows, "\n")
}

// RelPath strips a leading "./" so results of a search started in the
// current directory read like names typed by the user.
func RelPath(path string) string {
	if strings.HasPrefix(path, "./") && len(path) > 2 {
		return path[2:]
	}
	return path
}
