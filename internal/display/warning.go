package display

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/salvage/internal/logger"
	"github.com/harrison/salvage/internal/match"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when out is a terminal
func (w Warning) Display(out io.Writer) {
	fmt.Fprint(out, w.render(logger.IsTerminal(out)))
}

func (w Warning) render(colored bool) string {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if colored {
		return color.New(color.FgYellow).Sprint(b.String())
	}
	return b.String()
}

// IssuesWarning summarises recoverable traversal problems. It returns false
// when there is nothing to report.
func IssuesWarning(issues []match.Issue) (Warning, bool) {
	if len(issues) == 0 {
		return Warning{}, false
	}

	var (
		files               []string
		warnings, errs      int
		mountpoints, cycles bool
	)
	for _, issue := range issues {
		files = append(files, issue.String())
		switch issue.Severity {
		case match.SeverityWarning:
			warnings++
		default:
			errs++
		}
		mountpoints = mountpoints || errors.Is(issue.Err, match.ErrIsMountpoint)
		cycles = cycles || errors.Is(issue.Err, match.ErrSymlinkLoop)
	}

	w := Warning{
		Title:   "Some paths were not searched",
		Message: fmt.Sprintf("%d %s, %d %s", warnings, logger.Plural(warnings, "warning", "warnings"), errs, logger.Plural(errs, "error", "errors")),
		Files:   files,
	}
	switch {
	case mountpoints:
		w.Suggestion = "Use --follow-mountpoints to search other filesystems"
	case cycles:
		w.Suggestion = "Symbolic links leading back into the search were skipped"
	}
	return w, true
}
