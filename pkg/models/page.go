package models

// Page is one slice of a filtered, ordered result set.
// Number is 1-based; Total counts every match, not just Items.
type Page[T any] struct {
	Items  []T `json:"items"`
	Number int `json:"page"`
	Size   int `json:"page_size"`
	Total  int `json:"total"`
}

func (p *Page[T]) NumPages() int {
	if p.Size <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages()
}

// Offset is the index of the first record of the page within the full result.
func (p *Page[T]) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}
