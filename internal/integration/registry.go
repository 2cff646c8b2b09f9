// Package integration registers the builtin nodes.
package integration

import (
	"github.com/AvivoB/N8N-nodes/internal/integration/searchconsole"
	"github.com/AvivoB/N8N-nodes/internal/integration/typesense"
	"github.com/AvivoB/N8N-nodes/internal/operation"
)

// BuiltinRegistry holds the factories of all builtin nodes.
var BuiltinRegistry = map[string]operation.Factory{
	searchconsole.NodeName: searchconsole.New,
	typesense.NodeName:     typesense.New,
}

// NewRegistry returns a registry with every builtin node registered.
func NewRegistry() *operation.Registry {
	r := operation.NewRegistry()
	for name, factory := range BuiltinRegistry {
		r.Register(name, factory)
	}
	return r
}
