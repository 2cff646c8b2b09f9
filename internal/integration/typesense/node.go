package typesense

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AvivoB/N8N-nodes/internal/operation"
	"github.com/AvivoB/N8N-nodes/internal/operation/api"
	"github.com/AvivoB/N8N-nodes/internal/operation/transport"
	"github.com/AvivoB/N8N-nodes/pkg/errors"
)

// Config configures a Typesense node.
type Config struct {
	// Transport sends the requests. Required.
	Transport transport.Transport
}

// Node is the Typesense node. Collection names and document ids are placed
// in request paths exactly as given.
type Node struct {
	transport transport.Transport
}

// NewNode creates a Typesense node.
func NewNode(cfg *Config) (*Node, error) {
	if cfg == nil || cfg.Transport == nil {
		return nil, fmt.Errorf("typesense: transport is required")
	}
	return &Node{transport: cfg.Transport}, nil
}

// New is the registry factory.
func New(opts *operation.Options) (operation.Node, error) {
	return NewNode(&Config{Transport: opts.NewTransport()})
}

// Description returns the node declaration.
func (n *Node) Description() *api.NodeDescription {
	return description
}

// Execute performs one operation for one item.
func (n *Node) Execute(ctx context.Context, call *operation.Call) (any, error) {
	switch call.Resource {
	case ResourceCollection:
		return n.executeCollection(ctx, call)
	case ResourceDocument:
		return n.executeDocument(ctx, call)
	case ResourceSearch:
		return n.executeSearch(ctx, call)
	default:
		return nil, unsupported(call)
	}
}

func (n *Node) executeCollection(ctx context.Context, call *operation.Call) (any, error) {
	switch call.Operation {
	case OpCreate:
		schema, err := call.Params.JSON(ctx, "collectionSchema")
		if err != nil {
			return nil, err
		}
		if err := ValidateCollectionSchema(schema); err != nil {
			return nil, err
		}
		return n.request(ctx, call, http.MethodPost, "/collections", schema, nil)

	case OpGetAll:
		return n.request(ctx, call, http.MethodGet, "/collections", nil, nil)
	}

	name, err := call.Params.RequiredString(ctx, "collectionName")
	if err != nil {
		return nil, err
	}
	endpoint := "/collections/" + name

	switch call.Operation {
	case OpGet:
		return n.request(ctx, call, http.MethodGet, endpoint, nil, nil)
	case OpDelete:
		return n.request(ctx, call, http.MethodDelete, endpoint, nil, nil)
	case OpUpdate:
		schema, err := call.Params.JSON(ctx, "updateSchema")
		if err != nil {
			return nil, err
		}
		return n.request(ctx, call, http.MethodPatch, endpoint, schema, nil)
	default:
		return nil, unsupported(call)
	}
}

func (n *Node) executeDocument(ctx context.Context, call *operation.Call) (any, error) {
	name, err := call.Params.RequiredString(ctx, "collectionName")
	if err != nil {
		return nil, err
	}
	endpoint := "/collections/" + name + "/documents"

	switch call.Operation {
	case OpCreate, OpUpsert:
		document, err := call.Params.JSON(ctx, "documentData")
		if err != nil {
			return nil, err
		}
		var query map[string]string
		if call.Operation == OpUpsert {
			query = map[string]string{"action": "upsert"}
		}
		return n.request(ctx, call, http.MethodPost, endpoint, document, query)
	}

	id, err := call.Params.RequiredString(ctx, "documentId")
	if err != nil {
		return nil, err
	}
	endpoint += "/" + id

	switch call.Operation {
	case OpGet:
		return n.request(ctx, call, http.MethodGet, endpoint, nil, nil)
	case OpDelete:
		return n.request(ctx, call, http.MethodDelete, endpoint, nil, nil)
	case OpUpdate:
		document, err := call.Params.JSON(ctx, "documentData")
		if err != nil {
			return nil, err
		}
		return n.request(ctx, call, http.MethodPatch, endpoint, document, nil)
	default:
		return nil, unsupported(call)
	}
}

func (n *Node) executeSearch(ctx context.Context, call *operation.Call) (any, error) {
	switch call.Operation {
	case OpSearch:
		name, err := call.Params.RequiredString(ctx, "collectionName")
		if err != nil {
			return nil, err
		}
		q, err := call.Params.String(ctx, "searchQuery")
		if err != nil {
			return nil, err
		}
		queryBy, err := call.Params.String(ctx, "queryBy")
		if err != nil {
			return nil, err
		}
		additional, err := call.Params.Collection(ctx, "additionalFields")
		if err != nil {
			return nil, err
		}
		return n.request(ctx, call, http.MethodGet, "/collections/"+name+"/documents/search", nil, BuildSearchParams(q, queryBy, additional))

	case OpMultiSearch:
		queries, err := call.Params.JSON(ctx, "searchQueries")
		if err != nil {
			return nil, err
		}
		return n.request(ctx, call, http.MethodPost, "/multi_search", queries, nil)

	default:
		return nil, unsupported(call)
	}
}

func unsupported(call *operation.Call) error {
	return &errors.ValidationError{
		Field:   operation.ParamOperation,
		Message: fmt.Sprintf("The operation %q is not supported for resource %q", call.Operation, call.Resource),
	}
}
