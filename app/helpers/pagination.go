package helpers

import (
	"net/http"
	"strconv"
)

// Pagination carries the page math for list templates. TotalPages is
// ceil(total/size); a page beyond the last simply yields an empty result.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
}

func NewPagination(page, perPage int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
func (p Pagination) PrevPage() int { return p.Page - 1 }
func (p Pagination) NextPage() int { return p.Page + 1 }

// PageFromRequest reads the ?page= query parameter, defaulting to 1.
func PageFromRequest(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
