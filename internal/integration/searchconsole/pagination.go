package searchconsole

import (
	"context"
	"log/slog"
	"maps"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/AvivoB/N8N-nodes/internal/operation"
)

// fetchAll follows pagination and concatenates the propertyName list of every
// page. After each page:
//   - a nextPageToken is sent back as pageToken
//   - otherwise a numeric startIndex is advanced by itemsPerPage while it
//     stays below totalResults
//   - otherwise fetching stops
//
// A page without propertyName contributes nothing. Fetching is unbounded
// unless MaxPages is set; cancelling ctx stops it.
func (n *Node) fetchAll(ctx context.Context, call *operation.Call, propertyName string, req apiRequest) ([]any, error) {
	query := make(map[string]string, len(req.Query)+2)
	maps.Copy(query, req.Query)
	query["startIndex"] = "0"
	query["startRow"] = "0"

	out := []any{}
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageReq := req
		pageReq.Query = maps.Clone(query)
		resp, err := n.send(ctx, call, pageReq)
		if err != nil {
			return nil, err
		}

		if list := gjson.GetBytes(resp.Body, propertyName); list.IsArray() {
			for _, item := range list.Array() {
				out = append(out, item.Value())
			}
		}

		if !advance(resp.Body, query) {
			break
		}

		if n.maxPages > 0 && page >= n.maxPages {
			if call != nil && call.Logger != nil {
				call.Logger.Warn("pagination stopped at page limit",
					slog.String("property", propertyName),
					slog.Int("max_pages", n.maxPages),
				)
			}
			break
		}
	}
	return out, nil
}

// advance updates the query for the next page and reports whether there is one.
func advance(body []byte, query map[string]string) bool {
	if token := gjson.GetBytes(body, "nextPageToken"); token.Exists() && token.String() != "" {
		query["pageToken"] = token.String()
		return true
	}

	start := gjson.GetBytes(body, "startIndex")
	if start.Type != gjson.Number {
		return false
	}
	perPage := gjson.GetBytes(body, "itemsPerPage")
	if perPage.Type != gjson.Number {
		return false
	}

	next := start.Int() + perPage.Int()
	query["startIndex"] = strconv.FormatInt(next, 10)

	total := gjson.GetBytes(body, "totalResults")
	return total.Type == gjson.Number && next < total.Int()
}
