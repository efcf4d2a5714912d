package model

// Line is one inventory line: a quantity of identical units in one lifecycle state.
type Line struct {
	ID       int64    `json:"id"`
	Category Category `json:"category"`
	Material string   `json:"material"`
	Color    string   `json:"color"`
	Brand    string   `json:"brand"`
	Status   Status   `json:"status"`
	Count    int      `json:"count"`
	Notes    string   `json:"notes"`
}

// Category is the top-level grouping of a line.
type Category string

// Categories.
const (
	CategoryFilament Category = "filament"
	CategoryResin    Category = "resin"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryFilament || c == CategoryResin
}

// Status is the lifecycle state of the units in a line.
type Status string

// Statuses.
const (
	StatusUnopened Status = "unopened"
	StatusOpened   Status = "opened"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusUnopened || s == StatusOpened
}

// ProductKey identifies a product regardless of lifecycle state. An unopened
// line and its opened counterpart share the same ProductKey.
type ProductKey struct {
	Category Category
	Material string
	Color    string
	Brand    string
}

// Key is the identity key of a line. At most one line per Key may exist.
type Key struct {
	ProductKey
	Status Status
}

// Product returns the status-less part of the line's identity.
func (l Line) Product() ProductKey {
	return ProductKey{
		Category: l.Category,
		Material: l.Material,
		Color:    l.Color,
		Brand:    l.Brand,
	}
}

// Key returns the line's identity key.
func (l Line) Key() Key {
	return Key{ProductKey: l.Product(), Status: l.Status}
}

// WithStatus returns the identity key of the same product in another state.
func (p ProductKey) WithStatus(s Status) Key {
	return Key{ProductKey: p, Status: s}
}
