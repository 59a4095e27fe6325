package httputil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paginationFor(t *testing.T, query string) Pagination {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ParsePagination(c)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, DefaultPerPage},
		{"explicit", "page=3&per_page=50", 3, 50},
		{"capped", "per_page=500", 1, MaxPerPage},
		{"zero page", "page=0", 1, DefaultPerPage},
		{"negative per_page", "per_page=-5", 1, DefaultPerPage},
		{"garbage", "page=abc&per_page=xyz", 1, DefaultPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginationFor(t, tt.query)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("got page=%d per_page=%d, want page=%d per_page=%d",
					p.Page, p.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Pagination{Page: 3, PerPage: 20}
	if p.Offset() != 40 {
		t.Errorf("offset = %d, want 40", p.Offset())
	}
}

func TestPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 100, 1},
	}
	for _, tt := range tests {
		if got := Pages(tt.total, tt.perPage); got != tt.want {
			t.Errorf("Pages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}
