// Package display formats salvage output for the terminal.
//
// Listings of matched paths go to stdout, either one per line or packed
// into columns:
//
//	fmt.Fprintln(os.Stdout, display.FormatColumns(paths, false, 80))
//
// Problems met during traversal are summarised once the listing is done:
//
//	if w, ok := display.IssuesWarning(diag.Issues()); ok {
//	    w.Display(os.Stderr)
//	}
//
// All functions accept io.Writer interfaces for testability.
package display
