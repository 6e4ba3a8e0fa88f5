// Package deleted implements the naming convention that marks an entry as
// soft-deleted. A deleted entry keeps its original name behind a fixed
// marker prefix; stripping the marker yields the name it would have if it
// were undeleted.
package deleted

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMarker is the prefix the suite gives to deleted entries.
const DefaultMarker = ".#"

// ErrInvalidMarker is returned when a marker cannot produce valid entry names.
var ErrInvalidMarker = errors.New("invalid deleted-name marker")

// Codec classifies and translates entry names.
type Codec struct {
	marker string
}

// NewCodec returns a codec for the given marker. An empty marker selects
// DefaultMarker.
func NewCodec(marker string) (*Codec, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	if strings.ContainsRune(marker, '/') {
		return nil, fmt.Errorf("%w: %q contains a path separator", ErrInvalidMarker, marker)
	}
	return &Codec{marker: marker}, nil
}

// Default returns a codec using DefaultMarker.
func Default() *Codec {
	return &Codec{marker: DefaultMarker}
}

// Marker returns the prefix this codec recognises.
func (c *Codec) Marker() string {
	return c.marker
}

// IsDeleted reports whether the last component of name carries the marker.
// The marker alone is not a deleted name.
func (c *Codec) IsDeleted(name string) bool {
	base := lastComponent(name)
	return len(base) > len(c.marker) && strings.HasPrefix(base, c.marker)
}

// UndeletedForm strips the marker from the last component of name.
// Names that are not deleted are returned unchanged; earlier components
// keep their markers.
func (c *Codec) UndeletedForm(name string) string {
	if !c.IsDeleted(name) {
		return name
	}
	dir, base := splitLast(name)
	return dir + strings.TrimPrefix(base, c.marker)
}

// DeletedForm returns the stored name a deleted copy of name would have.
func (c *Codec) DeletedForm(name string) string {
	dir, base := splitLast(name)
	return dir + c.marker + base
}

// IsDotfile reports whether the last component of name is an undeleted
// dotfile.
func (c *Codec) IsDotfile(name string) bool {
	base := lastComponent(name)
	return strings.HasPrefix(base, ".") && !c.IsDeleted(base)
}

func lastComponent(name string) string {
	_, base := splitLast(name)
	return base
}

// splitLast splits name after its final separator; dir keeps the separator.
func splitLast(name string) (dir, base string) {
	trimmed := strings.TrimRight(name, "/")
	i := strings.LastIndexByte(trimmed, '/')
	return trimmed[:i+1], trimmed[i+1:]
}
