package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationCeiling(t *testing.T) {
	cases := []struct {
		name       string
		total      int64
		perPage    int
		totalPages int
	}{
		{"exact multiple", 24, 12, 2},
		{"partial last page", 25, 12, 3},
		{"single item", 1, 12, 1},
		{"empty", 0, 12, 0},
		{"one full page", 12, 12, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(1, tc.perPage, tc.total)
			assert.Equal(t, tc.totalPages, p.TotalPages)
		})
	}
}

func TestPaginationOffsetAndNavigation(t *testing.T) {
	p := NewPagination(3, 12, 100)

	assert.Equal(t, 24, p.Offset())
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 2, p.PrevPage())
	assert.Equal(t, 4, p.NextPage())

	first := NewPagination(1, 12, 100)
	assert.False(t, first.HasPrev())

	last := NewPagination(9, 12, 100)
	assert.False(t, last.HasNext())
}

func TestNewPaginationClampsInvalidInput(t *testing.T) {
	p := NewPagination(0, 0, 10)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.PerPage)
}

func TestPageFromRequest(t *testing.T) {
	assert.Equal(t, 5, PageFromRequest(httptest.NewRequest("GET", "/products?page=5", nil)))
	assert.Equal(t, 1, PageFromRequest(httptest.NewRequest("GET", "/products", nil)))
	assert.Equal(t, 1, PageFromRequest(httptest.NewRequest("GET", "/products?page=abc", nil)))
	assert.Equal(t, 1, PageFromRequest(httptest.NewRequest("GET", "/products?page=-2", nil)))
}
