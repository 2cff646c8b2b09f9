package operation

import (
	"context"
	"log/slog"

	"github.com/AvivoB/N8N-nodes/internal/host"
	"github.com/AvivoB/N8N-nodes/internal/operation/api"
)

// Node is a workflow node: a static description plus one call per item.
type Node interface {
	// Description returns the node declaration.
	Description() *api.NodeDescription

	// Execute performs the selected operation for one item and returns the
	// decoded response, which Run flattens into output records.
	Execute(ctx context.Context, call *Call) (any, error)
}

// Call is the per-item context handed to Node.Execute.
type Call struct {
	// Resource and Operation are fixed for the whole run
	Resource  string
	Operation string

	// Index is the zero-based input item index
	Index int

	// Item is the input record
	Item host.InputItem

	// Params resolves this item's parameters
	Params *Params

	// Execution is the run the item belongs to
	Execution *host.Execution

	// Logger is scoped to the run and item
	Logger *slog.Logger
}

// Credentials resolves a credential set, or returns nil when the host has none.
func (c *Call) Credentials(ctx context.Context, name string) (host.Credentials, error) {
	if c.Execution == nil || c.Execution.Credentials == nil {
		return nil, nil
	}
	return c.Execution.Credentials.ResolveCredentials(ctx, name)
}
