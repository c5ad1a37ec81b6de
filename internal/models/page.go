package models

const (
	// DefaultPageSize размер страницы по умолчанию
	DefaultPageSize = 20
	// MaxPageSize максимальный размер страницы
	MaxPageSize = 100
)

// PageRequest is a 0-based page window. A nil *PageRequest means "everything".
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one window of an ordered result set plus the total count.
type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int64
}

// TotalPages returns the number of pages for the total count.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}
