package shared

// Page describes one page of a paginated listing.
//
// Number is 1-based. Size and Total come from the backend response; the math here
// only derives display state (total pages, next/prev availability, offsets).
type Page struct {
	Number int
	Size   int
	Total  int
}

// TotalPages returns ceil(Total/Size). A zero or negative size reports 0 pages.
func (p Page) TotalPages() int {
	if p.Size <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.Size - 1) / p.Size
}

// HasNext reports whether a page after this one exists. Next is disabled on the last page.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages()
}

// HasPrev reports whether a page before this one exists.
func (p Page) HasPrev() bool {
	return p.Number > 1 && p.TotalPages() > 0
}

// Offset returns the zero-based record offset of this page for offset/limit APIs.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Clamp returns a copy with Number forced into the valid [1, TotalPages] range.
// An empty listing clamps to page 1.
func (p Page) Clamp() Page {
	last := p.TotalPages()
	if last == 0 {
		p.Number = 1
		return p
	}
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Number > last {
		p.Number = last
	}
	return p
}
