package repositories

import (
	"testing"

	"attendee.link/pkg/queryparams"
)

func TestSortClause(t *testing.T) {
	cases := []struct {
		label  string
		params queryparams.ListParams
		want   string
	}{
		{"whitelisted column ascending", queryparams.ListParams{SortBy: "name", OrderBy: "asc"}, "name ASC"},
		{"whitelisted column descending", queryparams.ListParams{SortBy: "start_date", OrderBy: "desc"}, "start_date DESC"},
		{"unknown column falls back", queryparams.ListParams{SortBy: "password", OrderBy: "asc"}, "created_at ASC"},
		{"injection attempt falls back", queryparams.ListParams{SortBy: "name; DROP TABLE users", OrderBy: "desc"}, "created_at DESC"},
	}
	for _, tc := range cases {
		if got := sortClause(tc.params); got != tc.want {
			t.Errorf("%s: sortClause = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestFieldUpdateColumnsExcludeBookkeeping(t *testing.T) {
	for _, column := range fieldUpdateColumns {
		switch column {
		case "id", "form_id", "created_at", "updated_at", "deleted_at":
			t.Errorf("field updates must not touch %q", column)
		}
	}
}
