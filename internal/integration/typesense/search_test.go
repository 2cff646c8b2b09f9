package typesense

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchParams(t *testing.T) {
	tests := []struct {
		name       string
		q          string
		queryBy    string
		additional map[string]any
		want       map[string]string
	}{
		{
			name:    "required only",
			q:       "*",
			queryBy: "title",
			want:    map[string]string{"q": "*", "query_by": "title"},
		},
		{
			name:    "mapped fields",
			q:       "stark",
			queryBy: "company_name,country",
			additional: map[string]any{
				"filterBy":       "num_employees:>100",
				"sortBy":         "num_employees:desc",
				"perPage":        25.0,
				"page":           2.0,
				"facetBy":        "country",
				"maxFacetValues": 5.0,
			},
			want: map[string]string{
				"q":                "stark",
				"query_by":         "company_name,country",
				"filter_by":        "num_employees:>100",
				"sort_by":          "num_employees:desc",
				"per_page":         "25",
				"page":             "2",
				"facet_by":         "country",
				"max_facet_values": "5",
			},
		},
		{
			name:    "falsy values are dropped",
			q:       "a",
			queryBy: "b",
			additional: map[string]any{
				"filterBy": "",
				"numTypos": 0.0,
				"groupBy":  nil,
			},
			want: map[string]string{"q": "a", "query_by": "b"},
		},
		{
			name:    "prefix is sent when false",
			q:       "a",
			queryBy: "b",
			additional: map[string]any{
				"prefix":        false,
				"groupBy":       "country",
				"groupLimit":    3.0,
				"includeFields": []any{"id", "title"},
				"pinnedHits":    "1:1,2:2",
			},
			want: map[string]string{
				"q":              "a",
				"query_by":       "b",
				"prefix":         "false",
				"group_by":       "country",
				"group_limit":    "3",
				"include_fields": "id,title",
				"pinned_hits":    "1:1,2:2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSearchParams(tt.q, tt.queryBy, tt.additional))
		})
	}
}
