package blit

import "fmt"

// Kind tags the conversion routine stored in a table cell.
type Kind uint8

const (
	// KindNone marks a pair without a direct route.
	KindNone Kind = iota

	// KindPaletted expands palette indices through a pre-converted palette.
	KindPaletted

	// KindChunky converts between two single-plane packed formats.
	KindChunky

	// KindPlanar converts when either side has auxiliary planes.
	KindPlanar
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPaletted:
		return "paletted"
	case KindChunky:
		return "chunky"
	case KindPlanar:
		return "planar"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Cell is one entry of a Table. Exactly one routine matching Kind is set.
type Cell struct {
	kind     Kind
	chunky   chunkyCell
	paletted palettedCell
	planar   planarCell
}

// Kind returns the tag of the cell.
func (c Cell) Kind() Kind { return c.kind }

// Table is the source × destination matrix of direct conversion routines
// for one kernel tier. A Table is immutable after NewTable returns and is
// safe for concurrent use.
type Table struct {
	tier  Tier
	cells [FormatMaxStandard][FormatMaxStandard]Cell
}

// NewTable builds the table of a tier. Construction is pure: the same tier
// always yields the same routes.
func NewTable(t Tier) *Table {
	if t >= tierCount {
		t = TierReference
	}
	k := kernelsFor(t)
	tbl := &Table{tier: t}

	for src := FormatNull + 1; src < FormatMaxStandard; src++ {
		for dst := FormatNull + 1; dst < FormatMaxStandard; dst++ {
			if src == dst {
				continue
			}
			tbl.cells[src][dst] = makeCell(k, dst, src)
		}
	}
	return tbl
}

func makeCell(k kernels, dst, src Format) Cell {
	switch {
	case src.IsPaletted():
		if fn := k.paletted(dst, src); fn != nil {
			return Cell{kind: KindPaletted, paletted: fn}
		}
	case src.IsPlanar() || dst.IsPlanar():
		if fn := k.planar(dst, src); fn != nil {
			return Cell{kind: KindPlanar, planar: fn}
		}
	default:
		if fn := k.chunky(dst, src); fn != nil {
			return Cell{kind: KindChunky, chunky: fn}
		}
	}
	return Cell{}
}

// Tier returns the kernel tier the table was built from.
func (t *Table) Tier() Tier { return t.tier }

// Lookup returns the direct route from src to dst. Unregistered ids and
// identical formats yield a KindNone cell; same-format copies are handled
// by the blitter, not the table.
func (t *Table) Lookup(dst, src Format) Cell {
	if !dst.Valid() || !src.Valid() {
		return Cell{}
	}
	return t.cells[src][dst]
}

// Routes returns the number of direct routes in the table.
func (t *Table) Routes() int {
	n := 0
	for src := range t.cells {
		for dst := range t.cells[src] {
			if t.cells[src][dst].kind != KindNone {
				n++
			}
		}
	}
	return n
}
