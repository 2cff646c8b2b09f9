// Package api declares nodes as plain data: credentials they need, the
// resources and operations they expose, and the parameters each operation reads.
package api

import "slices"

// NodeDescription is the static declaration of a node.
type NodeDescription struct {
	// Name is the node type identifier (e.g., "typesense")
	Name string `json:"name" yaml:"name"`

	// DisplayName is the human-readable name
	DisplayName string `json:"displayName" yaml:"displayName"`

	// Description is a one-line summary
	Description string `json:"description" yaml:"description"`

	// Version is the node definition version
	Version int `json:"version" yaml:"version"`

	// Credentials lists the credential types the node requires
	Credentials []CredentialDescriptor `json:"credentials" yaml:"credentials"`

	// Resources lists the resources and their operations
	Resources []ResourceInfo `json:"resources" yaml:"resources"`

	// Parameters lists every parameter across all operations.
	// Show conditions scope a parameter to specific resources and operations.
	Parameters []ParameterInfo `json:"parameters" yaml:"parameters"`
}

// ResourceInfo groups the operations available on one resource.
type ResourceInfo struct {
	// Name is the resource identifier (e.g., "document")
	Name string `json:"name" yaml:"name"`

	// DisplayName is the human-readable name
	DisplayName string `json:"displayName" yaml:"displayName"`

	// Operations available on the resource
	Operations []OperationInfo `json:"operations" yaml:"operations"`

	// DefaultOperation is selected when none is given
	DefaultOperation string `json:"defaultOperation" yaml:"defaultOperation"`
}

// OperationInfo provides metadata about a node operation.
type OperationInfo struct {
	// Name is the operation identifier (e.g., "getAll")
	Name string `json:"name" yaml:"name"`

	// Description is a human-readable description
	Description string `json:"description" yaml:"description"`

	// Method is the HTTP method the operation issues
	Method string `json:"method" yaml:"method"`

	// Tags classify operations (e.g., "write", "paginated", "destructive")
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ParameterInfo describes a node parameter.
type ParameterInfo struct {
	// Name is the parameter identifier
	Name string `json:"name" yaml:"name"`

	// DisplayName is the human-readable label
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`

	// Type is the parameter type (string, number, boolean, options,
	// multiOptions, collection, json, dateTime)
	Type string `json:"type" yaml:"type"`

	// Description is a human-readable description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Required indicates if the parameter is required
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Default is the default value (nil if no default)
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Options enumerates allowed values for options types
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// Show restricts where the parameter applies. Nil means everywhere.
	Show *DisplayOptions `json:"show,omitempty" yaml:"show,omitempty"`
}

// DisplayOptions scopes a parameter. An empty list matches any value.
type DisplayOptions struct {
	Resource  []string `json:"resource,omitempty" yaml:"resource,omitempty"`
	Operation []string `json:"operation,omitempty" yaml:"operation,omitempty"`
}

// Matches reports whether the options admit the given resource and operation.
func (d *DisplayOptions) Matches(resource, operation string) bool {
	if d == nil {
		return true
	}
	if len(d.Resource) > 0 && !slices.Contains(d.Resource, resource) {
		return false
	}
	if len(d.Operation) > 0 && !slices.Contains(d.Operation, operation) {
		return false
	}
	return true
}

// CredentialDescriptor declares the fields a credential type carries.
type CredentialDescriptor struct {
	// Name is the credential type identifier (e.g., "typesenseApi")
	Name string `json:"name" yaml:"name"`

	// DisplayName is the human-readable name
	DisplayName string `json:"displayName" yaml:"displayName"`

	// DocumentationURL points at setup instructions
	DocumentationURL string `json:"documentationUrl,omitempty" yaml:"documentationUrl,omitempty"`

	// Extends names a base credential type whose fields are inherited
	Extends []string `json:"extends,omitempty" yaml:"extends,omitempty"`

	// Properties are the credential fields
	Properties []CredentialProperty `json:"properties" yaml:"properties"`
}

// CredentialProperty is one credential field.
type CredentialProperty struct {
	Name        string   `json:"name" yaml:"name"`
	DisplayName string   `json:"displayName" yaml:"displayName"`
	Type        string   `json:"type" yaml:"type"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
	Password    bool     `json:"password,omitempty" yaml:"password,omitempty"`
	Hidden      bool     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
}

// WithDefaults returns a copy of values with unset or empty fields filled
// from the declared property defaults.
func (c *CredentialDescriptor) WithDefaults(values map[string]any) map[string]any {
	out := make(map[string]any, len(values)+len(c.Properties))
	for k, v := range values {
		out[k] = v
	}
	for _, p := range c.Properties {
		if p.Default == nil {
			continue
		}
		if v, ok := out[p.Name]; !ok || v == nil || v == "" {
			out[p.Name] = p.Default
		}
	}
	return out
}

// Resource returns the named resource, or nil.
func (n *NodeDescription) Resource(name string) *ResourceInfo {
	for i := range n.Resources {
		if n.Resources[i].Name == name {
			return &n.Resources[i]
		}
	}
	return nil
}

// Operation returns the named operation of a resource, or nil.
func (n *NodeDescription) Operation(resource, operation string) *OperationInfo {
	r := n.Resource(resource)
	if r == nil {
		return nil
	}
	for i := range r.Operations {
		if r.Operations[i].Name == operation {
			return &r.Operations[i]
		}
	}
	return nil
}

// Parameter returns the declaration of name that applies to the given
// resource and operation, or nil.
func (n *NodeDescription) Parameter(name, resource, operation string) *ParameterInfo {
	for i := range n.Parameters {
		p := &n.Parameters[i]
		if p.Name == name && p.Show.Matches(resource, operation) {
			return p
		}
	}
	return nil
}

// ParametersFor lists the parameters that apply to an operation, in declaration order.
func (n *NodeDescription) ParametersFor(resource, operation string) []ParameterInfo {
	var out []ParameterInfo
	for _, p := range n.Parameters {
		if p.Show != nil && p.Show.Matches(resource, operation) {
			out = append(out, p)
		}
	}
	return out
}

// Credential returns the named credential descriptor, or nil.
func (n *NodeDescription) Credential(name string) *CredentialDescriptor {
	for i := range n.Credentials {
		if n.Credentials[i].Name == name {
			return &n.Credentials[i]
		}
	}
	return nil
}

// DefaultResource is the first declared resource.
func (n *NodeDescription) DefaultResource() string {
	if len(n.Resources) == 0 {
		return ""
	}
	return n.Resources[0].Name
}
