package domain

import "math"

// MaxPageLinks is the widest page-number window shown by Pagination.Pages.
const MaxPageLinks = 5

// TotalPages is ceil(total/pageSize). It is 0 when there are no records.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// PageOffset is the number of records before page. It saturates at
// math.MaxInt64, so a page far past the end reads as past the end.
func PageOffset(page, pageSize int) int64 {
	if page <= 1 || pageSize <= 0 {
		return 0
	}
	n := int64(page - 1)
	if n > math.MaxInt64/int64(pageSize) {
		return math.MaxInt64
	}
	return n * int64(pageSize)
}

// Pagination describes the position of one result page for presentation.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: TotalPages(total, pageSize),
	}
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }

func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// FirstItem is the 1-based position of the first record on the page, or 0
// when the page is empty.
func (p Pagination) FirstItem() int64 {
	offset := PageOffset(p.Page, p.PageSize)
	if p.TotalCount == 0 || offset >= p.TotalCount {
		return 0
	}
	return offset + 1
}

func (p Pagination) LastItem() int64 {
	if p.FirstItem() == 0 {
		return 0
	}
	return min(PageOffset(p.Page, p.PageSize)+int64(p.PageSize), p.TotalCount)
}

// Pages returns the page numbers to link to. The first and last pages are
// always present; 0 marks a gap rendered as an ellipsis.
func (p Pagination) Pages() []int {
	if p.TotalPages <= 1 {
		return nil
	}
	if p.TotalPages <= MaxPageLinks {
		out := make([]int, p.TotalPages)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}

	start := max(2, p.Page-1)
	end := min(p.TotalPages-1, p.Page+1)
	switch {
	case p.Page <= 3:
		start, end = 2, MaxPageLinks-1
	case p.Page >= p.TotalPages-2:
		start, end = p.TotalPages-MaxPageLinks+2, p.TotalPages-1
	}

	out := []int{1}
	if start > 2 {
		out = append(out, 0)
	}
	for n := start; n <= end; n++ {
		out = append(out, n)
	}
	if end < p.TotalPages-1 {
		out = append(out, 0)
	}
	return append(out, p.TotalPages)
}
