package entities

// Category is a named tag with a display color. BookCount is a derived
// cache recomputed from the catalog on demand; it is never authoritative
// between recomputations.
type Category struct {
	Name      string `json:"name"`
	Color     string `json:"color"` // hex string, "#RRGGBB"
	BookCount int    `json:"book_count"`
}
