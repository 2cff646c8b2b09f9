package typesense

import (
	"net/http"

	"github.com/AvivoB/N8N-nodes/internal/operation/api"
)

const (
	// NodeName is the registry name of the node.
	NodeName = "typesense"

	// CredentialName is the credential type the node authenticates with.
	CredentialName = "typesenseApi"

	// APIKeyHeader carries the API key on every request.
	APIKeyHeader = "X-TYPESENSE-API-KEY"
)

// Resources.
const (
	ResourceCollection = "collection"
	ResourceDocument   = "document"
	ResourceSearch     = "search"
)

// Operations.
const (
	OpCreate      = "create"
	OpGet         = "get"
	OpGetAll      = "getAll"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpUpsert      = "upsert"
	OpSearch      = "search"
	OpMultiSearch = "multiSearch"
)

// Credential declares typesenseApi.
var Credential = api.CredentialDescriptor{
	Name:             CredentialName,
	DisplayName:      "Typesense API",
	DocumentationURL: "https://typesense.org/docs/",
	Properties: []api.CredentialProperty{
		{Name: "host", DisplayName: "Host", Type: "string", Default: "localhost"},
		{Name: "port", DisplayName: "Port", Type: "number", Default: 8108},
		{Name: "protocol", DisplayName: "Protocol", Type: "options", Options: []string{"http", "https"}, Default: "http"},
		{Name: "apiKey", DisplayName: "API Key", Type: "string", Password: true, Required: true},
	},
}

const (
	defaultCollectionSchema = `{
  "name": "companies",
  "fields": [
    {"name": "company_name", "type": "string"},
    {"name": "num_employees", "type": "int32"},
    {"name": "country", "type": "string", "facet": true}
  ],
  "default_sorting_field": "num_employees"
}`

	defaultDocument = `{
  "id": "1",
  "company_name": "Stark Industries",
  "num_employees": 5215,
  "country": "USA"
}`

	defaultSearchQueries = `{
  "searches": [
    {
      "collection": "companies",
      "q": "*",
      "query_by": "company_name"
    }
  ]
}`

	defaultUpdateSchema = `{
  "fields": [
    {"name": "new_field", "type": "string", "drop": false}
  ]
}`
)

var description = &api.NodeDescription{
	Name:        NodeName,
	DisplayName: "Typesense",
	Description: "Consume the Typesense search API",
	Version:     1,
	Credentials: []api.CredentialDescriptor{Credential},
	Resources: []api.ResourceInfo{
		{
			Name:             ResourceCollection,
			DisplayName:      "Collection",
			DefaultOperation: OpCreate,
			Operations: []api.OperationInfo{
				{Name: OpCreate, Description: "Create a collection", Method: http.MethodPost, Tags: []string{"write"}},
				{Name: OpDelete, Description: "Delete a collection", Method: http.MethodDelete, Tags: []string{"write", "destructive"}},
				{Name: OpGet, Description: "Get a collection", Method: http.MethodGet},
				{Name: OpGetAll, Description: "Get all collections", Method: http.MethodGet},
				{Name: OpUpdate, Description: "Update a collection schema", Method: http.MethodPatch, Tags: []string{"write"}},
			},
		},
		{
			Name:             ResourceDocument,
			DisplayName:      "Document",
			DefaultOperation: OpCreate,
			Operations: []api.OperationInfo{
				{Name: OpCreate, Description: "Create a document", Method: http.MethodPost, Tags: []string{"write"}},
				{Name: OpDelete, Description: "Delete a document", Method: http.MethodDelete, Tags: []string{"write", "destructive"}},
				{Name: OpGet, Description: "Get a document", Method: http.MethodGet},
				{Name: OpUpdate, Description: "Update a document", Method: http.MethodPatch, Tags: []string{"write"}},
				{Name: OpUpsert, Description: "Create or replace a document", Method: http.MethodPost, Tags: []string{"write"}},
			},
		},
		{
			Name:             ResourceSearch,
			DisplayName:      "Search",
			DefaultOperation: OpSearch,
			Operations: []api.OperationInfo{
				{Name: OpSearch, Description: "Search documents in a collection", Method: http.MethodGet},
				{Name: OpMultiSearch, Description: "Run several searches in one request", Method: http.MethodPost},
			},
		},
	},
	Parameters: []api.ParameterInfo{
		{
			Name:        "resource",
			DisplayName: "Resource",
			Type:        "options",
			Options:     []string{ResourceCollection, ResourceDocument, ResourceSearch},
			Default:     ResourceCollection,
		},
		{
			Name:        "operation",
			DisplayName: "Operation",
			Type:        "options",
			Options:     []string{OpCreate, OpDelete, OpGet, OpGetAll, OpUpdate},
			Default:     OpCreate,
			Show:        &api.DisplayOptions{Resource: []string{ResourceCollection}},
		},
		{
			Name:        "operation",
			DisplayName: "Operation",
			Type:        "options",
			Options:     []string{OpCreate, OpDelete, OpGet, OpUpdate, OpUpsert},
			Default:     OpCreate,
			Show:        &api.DisplayOptions{Resource: []string{ResourceDocument}},
		},
		{
			Name:        "operation",
			DisplayName: "Operation",
			Type:        "options",
			Options:     []string{OpSearch, OpMultiSearch},
			Default:     OpSearch,
			Show:        &api.DisplayOptions{Resource: []string{ResourceSearch}},
		},
		{
			Name:        "collectionName",
			DisplayName: "Collection Name",
			Type:        "string",
			Description: "Name of the collection, used verbatim in the request path",
			Required:    true,
			Show: &api.DisplayOptions{
				Resource:  []string{ResourceCollection, ResourceDocument, ResourceSearch},
				Operation: []string{OpGet, OpDelete, OpUpdate, OpCreate, OpSearch, OpUpsert},
			},
		},
		{
			Name:        "collectionSchema",
			DisplayName: "Collection Schema",
			Type:        "json",
			Description: "Schema of the collection to create",
			Required:    true,
			Default:     defaultCollectionSchema,
			Show:        &api.DisplayOptions{Resource: []string{ResourceCollection}, Operation: []string{OpCreate}},
		},
		{
			Name:        "updateSchema",
			DisplayName: "Update Schema",
			Type:        "json",
			Description: "Fields to add or drop",
			Required:    true,
			Default:     defaultUpdateSchema,
			Show:        &api.DisplayOptions{Resource: []string{ResourceCollection}, Operation: []string{OpUpdate}},
		},
		{
			Name:        "documentId",
			DisplayName: "Document ID",
			Type:        "string",
			Description: "ID of the document, used verbatim in the request path",
			Required:    true,
			Show:        &api.DisplayOptions{Resource: []string{ResourceDocument}, Operation: []string{OpGet, OpDelete, OpUpdate}},
		},
		{
			Name:        "documentData",
			DisplayName: "Document Data",
			Type:        "json",
			Description: "The document to write",
			Required:    true,
			Default:     defaultDocument,
			Show:        &api.DisplayOptions{Resource: []string{ResourceDocument}, Operation: []string{OpCreate, OpUpdate, OpUpsert}},
		},
		{
			Name:        "searchQuery",
			DisplayName: "Search Query",
			Type:        "string",
			Description: "Text to search for; * matches everything",
			Required:    true,
			Default:     "*",
			Show:        &api.DisplayOptions{Resource: []string{ResourceSearch}, Operation: []string{OpSearch}},
		},
		{
			Name:        "queryBy",
			DisplayName: "Query By",
			Type:        "string",
			Description: "Comma separated fields to search in",
			Required:    true,
			Show:        &api.DisplayOptions{Resource: []string{ResourceSearch}, Operation: []string{OpSearch}},
		},
		{
			Name:        "additionalFields",
			DisplayName: "Additional Fields",
			Type:        "collection",
			Description: "filterBy, sortBy, perPage, page, facetBy, maxFacetValues and the other search parameters",
			Default:     map[string]any{},
			Show:        &api.DisplayOptions{Resource: []string{ResourceSearch}, Operation: []string{OpSearch}},
		},
		{
			Name:        "searchQueries",
			DisplayName: "Search Queries",
			Type:        "json",
			Description: "Body of the multi_search request",
			Required:    true,
			Default:     defaultSearchQueries,
			Show:        &api.DisplayOptions{Resource: []string{ResourceSearch}, Operation: []string{OpMultiSearch}},
		},
	},
}
