// Package match resolves shell-style glob patterns against a real directory
// tree and expands matched directories into their subtrees, telling deleted
// entries apart from undeleted ones by name.
//
// # Entry point
//
// FindMatches is the only operation callers need:
//
//	m := match.New(fsys.NewOS(), match.WithReporter(diag))
//	paths, err := m.FindMatches("/home/u/*.txt", match.FindDeleted|match.FindUndeleted)
//
// It runs in two phases. The pattern matcher walks the tree one pattern
// component at a time, depth first, and yields top-level matches. When a
// recursion option is set, each match is then expanded by the subtree
// enumerator, whose output precedes the match itself in the result.
//
// # Deleted entries
//
// An entry is deleted when its name carries the codec marker (".#" by
// default). A pattern component matches a deleted entry either by its
// stored name or, when deleted entries are requested, by the name it would
// have once undeleted. Whether a leaf is returned depends on its own shape:
// deleted leaves need FindDeleted, undeleted leaves need FindUndeleted.
//
// # Errors
//
// Fatal errors (malformed pattern, unknown or empty option set, unreadable
// search start) are returned and no paths are produced. Everything else is
// recoverable: an unreadable directory or a failed metadata query is passed
// to the Reporter and traversal continues with the next sibling. A target
// that is simply not a directory is not reported at all. A nil error
// therefore does not mean every branch was explored; use Diagnostics to
// inspect what was skipped.
//
// Traversal is sequential and holds at most one open directory per level
// of the active path.
package match
