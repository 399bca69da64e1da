// Package blast adapts the board engine to the terminal platform: it owns a
// cursor, drives the controller from the platform tick, animates the board
// and renders it onto a core.Screen.
package blast

// Variant is a named board shape. Zero fields keep the configured value.
type Variant struct {
	ID      string
	Title   string
	Summary string
	Rows    int
	Columns int
	Colors  int
}

// Variants lists every playable variant in menu order.
var Variants = []Variant{
	{
		ID:      "classic",
		Title:   "Blast",
		Summary: "The configured board, 8x8 with four colors by default",
	},
	{
		ID:      "small",
		Title:   "Blast Mini",
		Summary: "6x6 board with three colors",
		Rows:    6,
		Columns: 6,
		Colors:  3,
	},
	{
		ID:      "large",
		Title:   "Blast XL",
		Summary: "10x10 board with five colors",
		Rows:    10,
		Columns: 10,
		Colors:  5,
	},
	{
		ID:      "duo",
		Title:   "Blast Duo",
		Summary: "8x8 board with two colors and big chains",
		Rows:    8,
		Columns: 8,
		Colors:  2,
	},
}

// LookupVariant returns the variant with the given id.
func LookupVariant(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// overridesShape reports whether the variant replaces the configured board size.
func (v Variant) overridesShape() bool {
	return v.Rows != 0 || v.Columns != 0
}
