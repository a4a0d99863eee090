package queryparams

import "testing"

func TestValidateClamps(t *testing.T) {
	cases := []struct {
		label string
		in    ListParams
		want  ListParams
	}{
		{
			"zero value gets defaults",
			ListParams{},
			ListParams{Page: DefaultPage, PerPage: DefaultPerPage, SortBy: DefaultSortBy, OrderBy: DefaultOrderBy},
		},
		{
			"negative page and limit",
			ListParams{Page: -3, PerPage: -1},
			ListParams{Page: DefaultPage, PerPage: DefaultPerPage, SortBy: DefaultSortBy, OrderBy: DefaultOrderBy},
		},
		{
			"limit capped",
			ListParams{Page: 2, PerPage: 5000, SortBy: "name", OrderBy: "asc"},
			ListParams{Page: 2, PerPage: MaxPerPage, SortBy: "name", OrderBy: "asc"},
		},
		{
			"bad order falls back",
			ListParams{Page: 1, PerPage: 10, SortBy: "name", OrderBy: "sideways"},
			ListParams{Page: 1, PerPage: 10, SortBy: "name", OrderBy: DefaultOrderBy},
		},
	}
	for _, tc := range cases {
		got := tc.in
		got.Validate()
		if got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.label, got, tc.want)
		}
	}
}

func TestCalculateOffset(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 25}
	if off := p.CalculateOffset(); off != 50 {
		t.Errorf("offset = %d, want 50", off)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 0, 0},
	}
	for _, tc := range cases {
		if got := CalculateTotalPages(tc.total, tc.perPage); got != tc.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tc.total, tc.perPage, got, tc.want)
		}
	}
}
