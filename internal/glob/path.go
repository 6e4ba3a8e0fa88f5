package glob

import "strings"

// Separator is the path separator used by patterns and result paths.
const Separator = "/"

// IsAbs reports whether the pattern starts at the hierarchy root.
func IsAbs(pattern string) bool {
	return strings.HasPrefix(pattern, Separator)
}

// SplitFirst returns the first component of pattern and the remainder.
// Leading and repeated separators are skipped, so "a//b" splits into "a"
// and "b". An exhausted pattern yields two empty strings.
func SplitFirst(pattern string) (first, rest string) {
	pattern = strings.TrimLeft(pattern, Separator)
	first, rest, _ = strings.Cut(pattern, Separator)
	return first, strings.TrimLeft(rest, Separator)
}

// Join appends name to prefix with exactly one separator between them.
// An empty prefix denotes the current directory and yields name unchanged.
func Join(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case strings.HasSuffix(prefix, Separator):
		return prefix + name
	default:
		return prefix + Separator + name
	}
}

// LastComponent returns the final component of path, ignoring trailing
// separators.
func LastComponent(path string) string {
	path = strings.TrimRight(path, Separator)
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[i+1:]
	}
	return path
}
