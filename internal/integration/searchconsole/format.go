package searchconsole

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FormatSiteURL normalizes a Search Console property URL: one trailing slash
// is removed and https:// is added when no scheme is present.
//
//	FormatSiteURL("example.com/")         // "https://example.com"
//	FormatSiteURL("http://example.com")   // "http://example.com"
//	FormatSiteURL("https://example.com/") // "https://example.com"
func FormatSiteURL(site string) string {
	site = strings.TrimSuffix(site, "/")
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		site = "https://" + site
	}
	return site
}

// ValidateDateFormat reports whether date is a real calendar date written as
// YYYY-MM-DD.
func ValidateDateFormat(date string) bool {
	if !datePattern.MatchString(date) {
		return false
	}
	_, err := time.Parse(time.DateOnly, date)
	return err == nil
}

// datePart drops the time of day from a dateTime parameter.
func datePart(value string) string {
	date, _, _ := strings.Cut(value, "T")
	return date
}

// escapeComponent percent-encodes a path segment the way JavaScript's
// encodeURIComponent does, so "/" and ":" inside site URLs are escaped.
func escapeComponent(s string) string {
	escaped := url.QueryEscape(s)
	return componentReplacer.Replace(escaped)
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// searchAnalyticsFields are copied into the query body when truthy.
var searchAnalyticsFields = []string{"searchType", "aggregationType", "rowLimit", "startRow"}

// BuildSearchAnalyticsQuery assembles the searchAnalytics/query body. Only
// fields holding a truthy value are copied. dimensionFilterGroups is accepted
// either in the API's list form or in the nested form shape
// {filterGroup: [{groupType, filters: {filter: [...]}}]}.
func BuildSearchAnalyticsQuery(params map[string]any) map[string]any {
	body := make(map[string]any)

	for _, key := range []string{"startDate", "endDate"} {
		if truthy(params[key]) {
			body[key] = params[key]
		}
	}

	switch dims := params["dimensions"].(type) {
	case []any:
		body["dimensions"] = dims
	case []string:
		body["dimensions"] = dims
	}

	for _, key := range searchAnalyticsFields {
		if truthy(params[key]) {
			body[key] = params[key]
		}
	}

	if groups := filterGroups(params["dimensionFilterGroups"]); len(groups) > 0 {
		body["dimensionFilterGroups"] = groups
	}

	return body
}

func filterGroups(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		groups, _ := v["filterGroup"].([]any)
		out := make([]any, 0, len(groups))
		for _, g := range groups {
			group, ok := g.(map[string]any)
			if !ok {
				continue
			}
			converted := map[string]any{}
			if gt, ok := group["groupType"]; ok {
				converted["groupType"] = gt
			}
			switch filters := group["filters"].(type) {
			case map[string]any:
				if list, ok := filters["filter"].([]any); ok {
					converted["filters"] = list
				}
			case []any:
				converted["filters"] = filters
			}
			out = append(out, converted)
		}
		return out
	default:
		return nil
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
