package searchconsole

import (
	"net/http"

	"github.com/AvivoB/N8N-nodes/internal/operation/api"
)

const (
	// NodeName is the registry name of the node.
	NodeName = "searchconsole"

	// CredentialName is the credential type the node authenticates with.
	CredentialName = "googleSearchConsoleOAuth2Api"

	// DefaultBaseURL is the Webmasters v3 API root.
	DefaultBaseURL = "https://www.googleapis.com/webmasters/v3"

	// DefaultInspectionURL is the URL Inspection endpoint, which lives on a
	// different host than the rest of the API.
	DefaultInspectionURL = "https://searchconsole.googleapis.com/v1/urlInspection/index:inspect"

	// Scopes requested by the credential.
	Scopes = "https://www.googleapis.com/auth/webmasters.readonly https://www.googleapis.com/auth/webmasters"
)

// Resources.
const (
	ResourceSite            = "site"
	ResourceSearchAnalytics = "searchAnalytics"
	ResourceSitemap         = "sitemap"
	ResourceURLInspection   = "urlInspection"
)

// Operations.
const (
	OpGet     = "get"
	OpGetAll  = "getAll"
	OpAdd     = "add"
	OpDelete  = "delete"
	OpQuery   = "query"
	OpSubmit  = "submit"
	OpInspect = "inspect"
)

// Credential declares googleSearchConsoleOAuth2Api. Client id, secret and
// tokens come from the base googleOAuth2Api credential.
var Credential = api.CredentialDescriptor{
	Name:             CredentialName,
	DisplayName:      "Google Search Console OAuth2 API",
	DocumentationURL: "https://developers.google.com/webmaster-tools/v1/how-tos/authorizing",
	Extends:          []string{"googleOAuth2Api"},
	Properties: []api.CredentialProperty{
		{
			Name:        "scope",
			DisplayName: "Scope",
			Type:        "hidden",
			Default:     Scopes,
			Hidden:      true,
		},
	},
}

var siteScoped = &api.DisplayOptions{
	Resource:  []string{ResourceSearchAnalytics, ResourceSitemap, ResourceURLInspection, ResourceSite},
	Operation: []string{OpGet, OpAdd, OpDelete, OpQuery, OpGetAll, OpSubmit, OpInspect},
}

var description = &api.NodeDescription{
	Name:        NodeName,
	DisplayName: "Google Search Console",
	Description: "Consume the Google Search Console API",
	Version:     1,
	Credentials: []api.CredentialDescriptor{Credential},
	Resources: []api.ResourceInfo{
		{
			Name:             ResourceSite,
			DisplayName:      "Site",
			DefaultOperation: OpGetAll,
			Operations: []api.OperationInfo{
				{Name: OpGet, Description: "Get a site", Method: http.MethodGet},
				{Name: OpGetAll, Description: "Get all sites", Method: http.MethodGet, Tags: []string{"paginated"}},
				{Name: OpAdd, Description: "Add a site", Method: http.MethodPut, Tags: []string{"write"}},
				{Name: OpDelete, Description: "Delete a site", Method: http.MethodDelete, Tags: []string{"write", "destructive"}},
			},
		},
		{
			Name:             ResourceSearchAnalytics,
			DisplayName:      "Search Analytics",
			DefaultOperation: OpQuery,
			Operations: []api.OperationInfo{
				{Name: OpQuery, Description: "Query search analytics data", Method: http.MethodPost},
			},
		},
		{
			Name:             ResourceSitemap,
			DisplayName:      "Sitemap",
			DefaultOperation: OpGetAll,
			Operations: []api.OperationInfo{
				{Name: OpGet, Description: "Get a sitemap", Method: http.MethodGet},
				{Name: OpGetAll, Description: "Get all sitemaps", Method: http.MethodGet, Tags: []string{"paginated"}},
				{Name: OpSubmit, Description: "Submit a sitemap", Method: http.MethodPut, Tags: []string{"write"}},
				{Name: OpDelete, Description: "Delete a sitemap", Method: http.MethodDelete, Tags: []string{"write", "destructive"}},
			},
		},
		{
			Name:             ResourceURLInspection,
			DisplayName:      "URL Inspection",
			DefaultOperation: OpInspect,
			Operations: []api.OperationInfo{
				{Name: OpInspect, Description: "Inspect a URL", Method: http.MethodPost},
			},
		},
	},
	Parameters: []api.ParameterInfo{
		{
			Name:        "resource",
			DisplayName: "Resource",
			Type:        "options",
			Options:     []string{ResourceSite, ResourceSearchAnalytics, ResourceSitemap, ResourceURLInspection},
			Default:     ResourceSite,
		},
		{
			Name:        "operation",
			DisplayName: "Operation",
			Type:        "options",
			Options:     []string{OpGet, OpGetAll, OpAdd, OpDelete},
			Default:     OpGetAll,
			Show:        &api.DisplayOptions{Resource: []string{ResourceSite}},
		},
		{
			Name:        "operation",
			DisplayName: "Operation",
			Type:        "options",
			Options:     []string{OpQuery},
			Default:     OpQuery,
			Show:        &api.DisplayOptions{Resource: []string{ResourceSearchAnalytics}},
		},
		{
			Name:        "operation",
			DisplayName: "Operation",
			Type:        "options",
			Options:     []string{OpGet, OpGetAll, OpSubmit, OpDelete},
			Default:     OpGetAll,
			Show:        &api.DisplayOptions{Resource: []string{ResourceSitemap}},
		},
		{
			Name:        "operation",
			DisplayName: "Operation",
			Type:        "options",
			Options:     []string{OpInspect},
			Default:     OpInspect,
			Show:        &api.DisplayOptions{Resource: []string{ResourceURLInspection}},
		},
		{
			Name:        "siteUrl",
			DisplayName: "Site URL",
			Type:        "string",
			Description: "The URL of the site in Search Console",
			Required:    true,
			Show:        siteScoped,
		},
		{
			Name:        "startDate",
			DisplayName: "Start Date",
			Type:        "dateTime",
			Description: "Start date of the requested range, in YYYY-MM-DD",
			Required:    true,
			Show:        &api.DisplayOptions{Resource: []string{ResourceSearchAnalytics}, Operation: []string{OpQuery}},
		},
		{
			Name:        "endDate",
			DisplayName: "End Date",
			Type:        "dateTime",
			Description: "End date of the requested range, in YYYY-MM-DD",
			Required:    true,
			Show:        &api.DisplayOptions{Resource: []string{ResourceSearchAnalytics}, Operation: []string{OpQuery}},
		},
		{
			Name:        "dimensions",
			DisplayName: "Dimensions",
			Type:        "multiOptions",
			Description: "Dimensions to group results by",
			Options:     []string{"country", "device", "page", "query", "searchAppearance", "date"},
			Default:     []any{"query"},
			Show:        &api.DisplayOptions{Resource: []string{ResourceSearchAnalytics}, Operation: []string{OpQuery}},
		},
		{
			Name:        "additionalFields",
			DisplayName: "Additional Fields",
			Type:        "collection",
			Description: "searchType, rowLimit, startRow, aggregationType and dimensionFilterGroups",
			Default:     map[string]any{},
			Show:        &api.DisplayOptions{Resource: []string{ResourceSearchAnalytics}, Operation: []string{OpQuery}},
		},
		{
			Name:        "sitemapUrl",
			DisplayName: "Sitemap URL",
			Type:        "string",
			Description: "The URL of the sitemap",
			Required:    true,
			Show:        &api.DisplayOptions{Resource: []string{ResourceSitemap}, Operation: []string{OpGet, OpSubmit, OpDelete}},
		},
		{
			Name:        "inspectionUrl",
			DisplayName: "Inspection URL",
			Type:        "string",
			Description: "The URL to inspect",
			Required:    true,
			Show:        &api.DisplayOptions{Resource: []string{ResourceURLInspection}, Operation: []string{OpInspect}},
		},
		{
			Name:        "languageCode",
			DisplayName: "Language Code",
			Type:        "string",
			Description: "Language for translated issue messages",
			Default:     "en-US",
			Show:        &api.DisplayOptions{Resource: []string{ResourceURLInspection}, Operation: []string{OpInspect}},
		},
	},
}
