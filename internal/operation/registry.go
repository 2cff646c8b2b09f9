package operation

import (
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/AvivoB/N8N-nodes/internal/operation/transport"
	"github.com/AvivoB/N8N-nodes/pkg/errors"
)

// Options are the runtime dependencies handed to a node factory.
type Options struct {
	// HTTPClient is the shared client; nil uses http.DefaultClient
	HTTPClient *http.Client

	// RateLimiter throttles the node's requests; nil disables limiting
	RateLimiter transport.RateLimiter

	// MaxPages bounds paginated fetches; 0 means unbounded
	MaxPages int
}

// Factory builds a node.
type Factory func(opts *Options) (Node, error)

// Registry maps node names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a node factory, replacing any previous one of that name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// New builds the named node.
func (r *Registry) New(name string, opts *Options) (Node, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, &errors.ValidationError{
			Field:       "node",
			Message:     fmt.Sprintf("node %q not found", name),
			SuggestText: "Run 'noderun nodes list' to see the available nodes",
		}
	}

	if opts == nil {
		opts = &Options{}
	}
	node, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create node %q: %w", name, err)
	}
	return node, nil
}

// List returns the registered node names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewTransport builds the plain HTTP transport a node sends through, with
// the configured rate limiter attached.
func (o *Options) NewTransport() transport.Transport {
	client := o.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	t := transport.NewHTTPTransport(client)
	t.SetRateLimiter(o.RateLimiter)
	return t
}
