package car

import (
	"fmt"
	"slices"
	"strings"

	"github.com/starford/carscout/internal/apperr"
)

// Column names a field of the backing file.
type Column string

// Known columns.
const (
	ColMake         Column = "make"
	ColModel        Column = "model"
	ColYear         Column = "year"
	ColKilometers   Column = "km"
	ColTransmission Column = "transmission"
	ColPrice        Column = "price"
)

var knownColumns = []Column{ColMake, ColModel, ColYear, ColKilometers, ColTransmission, ColPrice}

var requiredColumns = []Column{ColMake, ColModel, ColYear, ColPrice}

// Layout is the column order of the backing file, as declared by its header.
type Layout []Column

// DefaultLayout is used for new files and for legacy headerless files.
func DefaultLayout() Layout {
	return Layout{ColMake, ColModel, ColYear, ColKilometers, ColTransmission, ColPrice}
}

// ParseLayout reads a header row. Names are matched case-insensitively and
// must be known, unique, and include every required column.
func ParseLayout(header []string) (Layout, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: empty header", apperr.ErrInvalidHeader)
	}
	out := make(Layout, 0, len(header))
	for _, h := range header {
		c, ok := lookupColumn(h)
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %q", apperr.ErrInvalidHeader, h)
		}
		if out.Has(c) {
			return nil, fmt.Errorf("%w: duplicate column %q", apperr.ErrInvalidHeader, h)
		}
		out = append(out, c)
	}
	for _, c := range requiredColumns {
		if !out.Has(c) {
			return nil, fmt.Errorf("%w: missing column %q", apperr.ErrInvalidHeader, c)
		}
	}
	return out, nil
}

// IsHeader reports whether every cell of row names a known column.
func IsHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, cell := range row {
		if _, ok := lookupColumn(cell); !ok {
			return false
		}
	}
	return true
}

// Has reports whether the layout contains c.
func (l Layout) Has(c Column) bool {
	return slices.Contains(l, c)
}

// Header returns the canonical header row.
func (l Layout) Header() []string {
	out := make([]string, len(l))
	for i, c := range l {
		out[i] = string(c)
	}
	return out
}

func lookupColumn(name string) (Column, bool) {
	c := Column(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(knownColumns, c) {
		return c, true
	}
	return "", false
}
