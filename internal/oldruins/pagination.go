package oldruins

import (
	"math"
	"strconv"
	"strings"
)

// PageSize is the number of posts per list page.
const PageSize = 10

// Pagination is a page position that is always within [1, TotalPages].
type Pagination struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// ParsePage reads a requested page number. Anything that is not a finite
// number >= 1 yields 1; fractions are floored.
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}

	return int(math.Floor(f))
}

// TotalPages returns max(1, ceil(total/PageSize)).
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// NewPagination clamps page into [1, TotalPages(total)].
func NewPagination(page, total int) Pagination {
	if total < 0 {
		total = 0
	}

	p := Pagination{
		PageSize:   PageSize,
		Total:      total,
		TotalPages: TotalPages(total),
	}
	p.Page = p.Clamp(page)

	return p
}

// Clamp moves a navigation target into [1, TotalPages].
func (p Pagination) Clamp(page int) int {
	return max(1, min(page, p.TotalPages))
}

// Start is the inclusive offset of the page in the newest-first list.
func (p Pagination) Start() int {
	return (p.Page - 1) * p.PageSize
}

// End is the exclusive end offset of the page.
func (p Pagination) End() int {
	return p.Start() + p.PageSize
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// Prev returns the previous page, clamped.
func (p Pagination) Prev() int {
	return p.Clamp(p.Page - 1)
}

// Next returns the next page, clamped.
func (p Pagination) Next() int {
	return p.Clamp(p.Page + 1)
}
