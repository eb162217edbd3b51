// Package paging windows an in-memory item list into fixed-size pages and
// describes the page controls a UI should draw for it.
package paging

// DefaultPageSize matches the storefront grid: six cards per page.
const DefaultPageSize = 6

type Control struct {
	Number int  `json:"number"`
	Active bool `json:"active"`
}

// Controls is the render descriptor for a pager: numbered page buttons
// plus prev/next, with the boundary directions disabled.
type Controls struct {
	CurrentPage int       `json:"current_page"`
	TotalPages  int       `json:"total_pages"`
	PrevEnabled bool      `json:"prev_enabled"`
	NextEnabled bool      `json:"next_enabled"`
	Pages       []Control `json:"pages"`
}

// Pager holds the full item list and the current page. Replacing the list
// always snaps back to page 1; navigation outside [1, TotalPages] is a
// silent no-op.
type Pager[T any] struct {
	pageSize int
	current  int
	items    []T
}

func New[T any](pageSize int) *Pager[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Pager[T]{pageSize: pageSize, current: 1}
}

// SetItems replaces the backing list wholesale and resets to page 1.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.current = 1
}

// Items returns the full backing list, not just the current page.
func (p *Pager[T]) Items() []T {
	return p.items
}

func (p *Pager[T]) CurrentPage() int {
	return p.current
}

// TotalPages is ceil(len(items)/pageSize); zero for an empty list.
func (p *Pager[T]) TotalPages() int {
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

// Slice returns the items visible on the current page.
func (p *Pager[T]) Slice() []T {
	lo := (p.current - 1) * p.pageSize
	if lo >= len(p.items) {
		return nil
	}
	hi := lo + p.pageSize
	if hi > len(p.items) {
		hi = len(p.items)
	}
	return p.items[lo:hi]
}

// GoTo moves to page n if it exists, otherwise leaves the pager untouched.
func (p *Pager[T]) GoTo(n int) {
	if n < 1 || n > p.TotalPages() {
		return
	}
	p.current = n
}

func (p *Pager[T]) Next() { p.GoTo(p.current + 1) }
func (p *Pager[T]) Prev() { p.GoTo(p.current - 1) }

// Controls builds the page-control descriptor, one button per page.
// With zero or one page there is nothing to navigate and nil is returned,
// which the render layer takes as "draw no pagination at all".
func (p *Pager[T]) Controls() *Controls {
	total := p.TotalPages()
	if total <= 1 {
		return nil
	}

	pages := make([]Control, 0, total)
	for n := 1; n <= total; n++ {
		pages = append(pages, Control{Number: n, Active: n == p.current})
	}

	return &Controls{
		CurrentPage: p.current,
		TotalPages:  total,
		PrevEnabled: p.current > 1,
		NextEnabled: p.current < total,
		Pages:       pages,
	}
}
