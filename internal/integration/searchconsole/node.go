package searchconsole

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/AvivoB/N8N-nodes/internal/operation"
	"github.com/AvivoB/N8N-nodes/internal/operation/api"
	"github.com/AvivoB/N8N-nodes/internal/operation/transport"
	"github.com/AvivoB/N8N-nodes/pkg/errors"
)

// Config configures a Search Console node.
type Config struct {
	// Transport sends the requests. Required.
	Transport transport.Transport

	// BaseURL overrides DefaultBaseURL
	BaseURL string

	// InspectionURL overrides DefaultInspectionURL
	InspectionURL string

	// MaxPages bounds getAll pagination; 0 means unbounded
	MaxPages int
}

// Node is the Google Search Console node.
type Node struct {
	transport     transport.Transport
	baseURL       string
	inspectionURL string
	maxPages      int
}

// NewNode creates a Search Console node.
func NewNode(cfg *Config) (*Node, error) {
	if cfg == nil || cfg.Transport == nil {
		return nil, fmt.Errorf("searchconsole: transport is required")
	}

	n := &Node{
		transport:     cfg.Transport,
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		inspectionURL: cfg.InspectionURL,
		maxPages:      cfg.MaxPages,
	}
	if n.baseURL == "" {
		n.baseURL = DefaultBaseURL
	}
	if n.inspectionURL == "" {
		n.inspectionURL = DefaultInspectionURL
	}
	return n, nil
}

// New is the registry factory.
func New(opts *operation.Options) (operation.Node, error) {
	return NewNode(&Config{
		Transport: opts.NewTransport(),
		MaxPages:  opts.MaxPages,
	})
}

// Description returns the node declaration.
func (n *Node) Description() *api.NodeDescription {
	return description
}

// Execute performs one operation for one item.
func (n *Node) Execute(ctx context.Context, call *operation.Call) (any, error) {
	switch call.Resource {
	case ResourceSite:
		return n.executeSite(ctx, call)
	case ResourceSearchAnalytics:
		return n.executeSearchAnalytics(ctx, call)
	case ResourceSitemap:
		return n.executeSitemap(ctx, call)
	case ResourceURLInspection:
		return n.executeURLInspection(ctx, call)
	default:
		return nil, unsupported(call)
	}
}

func (n *Node) executeSite(ctx context.Context, call *operation.Call) (any, error) {
	if call.Operation == OpGetAll {
		return n.fetchAll(ctx, call, "siteEntry", apiRequest{Method: http.MethodGet, Endpoint: "/sites"})
	}

	site, err := n.siteURL(ctx, call)
	if err != nil {
		return nil, err
	}
	endpoint := "/sites/" + escapeComponent(site)

	switch call.Operation {
	case OpGet:
		return n.request(ctx, call, apiRequest{Method: http.MethodGet, Endpoint: endpoint})
	case OpAdd:
		return n.request(ctx, call, apiRequest{Method: http.MethodPut, Endpoint: endpoint})
	case OpDelete:
		return n.request(ctx, call, apiRequest{Method: http.MethodDelete, Endpoint: endpoint})
	default:
		return nil, unsupported(call)
	}
}

func (n *Node) executeSearchAnalytics(ctx context.Context, call *operation.Call) (any, error) {
	if call.Operation != OpQuery {
		return nil, unsupported(call)
	}

	site, err := n.siteURL(ctx, call)
	if err != nil {
		return nil, err
	}

	startDate, err := call.Params.String(ctx, "startDate")
	if err != nil {
		return nil, err
	}
	endDate, err := call.Params.String(ctx, "endDate")
	if err != nil {
		return nil, err
	}
	startDate, endDate = datePart(startDate), datePart(endDate)

	if !ValidateDateFormat(startDate) {
		return nil, &errors.ValidationError{Field: "startDate", Message: "Invalid start date format. Use YYYY-MM-DD."}
	}
	if !ValidateDateFormat(endDate) {
		return nil, &errors.ValidationError{Field: "endDate", Message: "Invalid end date format. Use YYYY-MM-DD."}
	}

	dimensions, err := call.Params.StringSlice(ctx, "dimensions")
	if err != nil {
		return nil, err
	}
	additional, err := call.Params.Collection(ctx, "additionalFields")
	if err != nil {
		return nil, err
	}

	params := make(map[string]any, len(additional)+3)
	params["startDate"] = startDate
	params["endDate"] = endDate
	if dimensions != nil {
		params["dimensions"] = dimensions
	}
	for k, v := range additional {
		params[k] = v
	}

	return n.request(ctx, call, apiRequest{
		Method:   http.MethodPost,
		Endpoint: "/sites/" + escapeComponent(site) + "/searchAnalytics/query",
		Body:     BuildSearchAnalyticsQuery(params),
	})
}

func (n *Node) executeSitemap(ctx context.Context, call *operation.Call) (any, error) {
	site, err := n.siteURL(ctx, call)
	if err != nil {
		return nil, err
	}
	endpoint := "/sites/" + escapeComponent(site) + "/sitemaps"

	if call.Operation == OpGetAll {
		return n.fetchAll(ctx, call, "sitemap", apiRequest{Method: http.MethodGet, Endpoint: endpoint})
	}

	sitemap, err := call.Params.RequiredString(ctx, "sitemapUrl")
	if err != nil {
		return nil, err
	}
	endpoint += "/" + escapeComponent(sitemap)

	switch call.Operation {
	case OpGet:
		return n.request(ctx, call, apiRequest{Method: http.MethodGet, Endpoint: endpoint})
	case OpSubmit:
		return n.request(ctx, call, apiRequest{Method: http.MethodPut, Endpoint: endpoint})
	case OpDelete:
		return n.request(ctx, call, apiRequest{Method: http.MethodDelete, Endpoint: endpoint})
	default:
		return nil, unsupported(call)
	}
}

func (n *Node) executeURLInspection(ctx context.Context, call *operation.Call) (any, error) {
	if call.Operation != OpInspect {
		return nil, unsupported(call)
	}

	site, err := n.siteURL(ctx, call)
	if err != nil {
		return nil, err
	}
	inspectionURL, err := call.Params.RequiredString(ctx, "inspectionUrl")
	if err != nil {
		return nil, err
	}
	languageCode, err := call.Params.String(ctx, "languageCode")
	if err != nil {
		return nil, err
	}

	return n.request(ctx, call, apiRequest{
		Method: http.MethodPost,
		URI:    n.inspectionURL,
		Body: map[string]any{
			"inspectionUrl": inspectionURL,
			"siteUrl":       site,
			"languageCode":  languageCode,
		},
	})
}

func (n *Node) siteURL(ctx context.Context, call *operation.Call) (string, error) {
	site, err := call.Params.RequiredString(ctx, "siteUrl")
	if err != nil {
		return "", err
	}
	return FormatSiteURL(site), nil
}

func unsupported(call *operation.Call) error {
	return &errors.ValidationError{
		Field:   operation.ParamOperation,
		Message: fmt.Sprintf("The operation %q is not supported for resource %q", call.Operation, call.Resource),
	}
}
