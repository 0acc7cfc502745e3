// Package pagination holds the offset pagination rules shared by every listing.
package pagination

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Params is a normalised page request. Page is 1-based.
type Params struct {
	Page int
	Size int
}

// New clamps page to >= 1 and size to 1..MaxSize, substituting DefaultSize for non-positive sizes
func New(page, size int) Params {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	} else if size > MaxSize {
		size = MaxSize
	}
	return Params{Page: page, Size: size}
}

// Offset returns the number of rows to skip
func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// Page is a single page of results with an independently counted total
type Page[T any] struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Items []T   `json:"items"`
}

// NewPage builds a Page, never returning a nil item slice
func NewPage[T any](p Params, total int64, items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Total: total, Page: p.Page, Size: p.Size, Items: items}
}

// Empty returns a page without items
func Empty[T any](p Params) *Page[T] {
	return NewPage[T](p, 0, nil)
}
