package listutil

import (
	"net/url"
	"slices"
	"testing"
)

// TestParsePageParams verifies defaults and clamping of query values.
func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		q           url.Values
		wantPage    int
		wantPerPage int
	}{
		{"defaults", url.Values{}, 1, DefaultPerPage},
		{"valid", url.Values{"page": {"3"}, "per_page": {"50"}}, 3, 50},
		{"per_page not offered", url.Values{"per_page": {"25"}}, 1, DefaultPerPage},
		{"negative page", url.Values{"page": {"-1"}}, 1, DefaultPerPage},
		{"garbage", url.Values{"page": {"dois"}, "per_page": {"x"}}, 1, DefaultPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePageParams(tt.q)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("ParsePageParams() = %+v, want page %d per_page %d", p, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

// TestNewPageInfo verifies page clamping and total page calculation.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		page, perPage, total int
		wantPage, wantPages  int
	}{
		{1, 10, 0, 1, 1},
		{1, 10, 10, 1, 1},
		{2, 10, 11, 2, 2},
		{9, 10, 25, 3, 3},
		{0, 10, 25, 1, 3},
		{1, 0, 45, 1, 3},
	}

	for _, tt := range tests {
		info := NewPageInfo(tt.page, tt.perPage, tt.total)
		if info.Page != tt.wantPage || info.TotalPages != tt.wantPages {
			t.Errorf("NewPageInfo(%d, %d, %d) = %+v, want page %d of %d",
				tt.page, tt.perPage, tt.total, info, tt.wantPage, tt.wantPages)
		}
	}
}

// TestPaginate verifies slicing of in-memory lists.
func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	page, info := Paginate(items, PageParams{Page: 2, PerPage: 10})
	if !slices.Equal(page, []int{11, 12}) {
		t.Errorf("page 2 = %v", page)
	}
	if info.StartRow() != 11 || info.EndRow() != 12 {
		t.Errorf("rows = %d-%d, want 11-12", info.StartRow(), info.EndRow())
	}
	if !info.HasPrev() || info.HasNext() {
		t.Errorf("HasPrev/HasNext = %v/%v", info.HasPrev(), info.HasNext())
	}

	page, info = Paginate(items, PageParams{Page: 99, PerPage: 10})
	if info.Page != 2 || len(page) != 2 {
		t.Errorf("out-of-range page clamped to %d with %d items", info.Page, len(page))
	}

	empty, info := Paginate([]int{}, PageParams{Page: 1, PerPage: 10})
	if len(empty) != 0 || info.StartRow() != 0 || info.ShowPagination() {
		t.Errorf("empty list: %v %+v", empty, info)
	}
}

// TestPageNumbers verifies the sliding window of page buttons.
func TestPageNumbers(t *testing.T) {
	tests := []struct {
		page, totalPages int
		want             []int
	}{
		{1, 1, []int{1}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{2, 3, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		info := PageInfo{Page: tt.page, PerPage: 10, Total: tt.totalPages * 10, TotalPages: tt.totalPages}
		if got := info.PageNumbers(); !slices.Equal(got, tt.want) {
			t.Errorf("PageNumbers() page %d of %d = %v, want %v", tt.page, tt.totalPages, got, tt.want)
		}
	}
}

// TestShowPagination verifies pagination visibility.
func TestShowPagination(t *testing.T) {
	if (PageInfo{PerPage: 20, Total: 20}).ShowPagination() {
		t.Error("ShowPagination() = true for a single full page")
	}
	if !(PageInfo{PerPage: 20, Total: 21}).ShowPagination() {
		t.Error("ShowPagination() = false for two pages")
	}
}
