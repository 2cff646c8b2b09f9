package typesense

import (
	"fmt"
	"strconv"
	"strings"
)

// searchParamNames maps additionalFields keys to Typesense query parameters.
var searchParamNames = []struct {
	field string
	param string
}{
	{"filterBy", "filter_by"},
	{"sortBy", "sort_by"},
	{"perPage", "per_page"},
	{"page", "page"},
	{"facetBy", "facet_by"},
	{"maxFacetValues", "max_facet_values"},
	{"groupBy", "group_by"},
	{"groupLimit", "group_limit"},
	{"includeFields", "include_fields"},
	{"excludeFields", "exclude_fields"},
	{"highlightFullFields", "highlight_full_fields"},
	{"numTypos", "num_typos"},
	{"dropTokensThreshold", "drop_tokens_threshold"},
	{"typoTokensThreshold", "typo_tokens_threshold"},
	{"pinnedHits", "pinned_hits"},
	{"hiddenHits", "hidden_hits"},
}

// BuildSearchParams returns the query string of a search request. q and
// query_by are always sent; additional fields only when truthy, except
// prefix which is sent whenever it is set.
func BuildSearchParams(query, queryBy string, additional map[string]any) map[string]string {
	params := map[string]string{
		"q":        query,
		"query_by": queryBy,
	}

	for _, p := range searchParamNames {
		if v, ok := additional[p.field]; ok && truthy(v) {
			params[p.param] = queryValue(v)
		}
	}

	if v, ok := additional["prefix"]; ok && v != nil {
		params["prefix"] = queryValue(v)
	}

	return params
}

func queryValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = queryValue(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}
