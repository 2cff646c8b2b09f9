package operation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/AvivoB/N8N-nodes/internal/host"
	"github.com/AvivoB/N8N-nodes/internal/operation/api"
	"github.com/AvivoB/N8N-nodes/pkg/errors"
)

// Params resolves parameters for one item. Values the host does not supply
// fall back to the default declared for the current resource and operation.
type Params struct {
	resolver    host.ParameterResolver
	description *api.NodeDescription
	resource    string
	operation   string
	index       int
}

// NewParams creates a parameter accessor for the item at index.
func NewParams(resolver host.ParameterResolver, description *api.NodeDescription, resource, operation string, index int) *Params {
	return &Params{
		resolver:    resolver,
		description: description,
		resource:    resource,
		operation:   operation,
		index:       index,
	}
}

// Value returns the raw parameter value and whether one was found, either
// from the host or as a declared default.
func (p *Params) Value(ctx context.Context, name string) (any, bool, error) {
	if p.resolver != nil {
		v, ok, err := p.resolver.ResolveParameter(ctx, name, p.index)
		if err != nil {
			return nil, false, &errors.ValidationError{
				Field:   name,
				Message: err.Error(),
			}
		}
		if ok {
			return v, true, nil
		}
	}

	if p.description != nil {
		if decl := p.description.Parameter(name, p.resource, p.operation); decl != nil && decl.Default != nil {
			return decl.Default, true, nil
		}
	}
	return nil, false, nil
}

// String returns a string parameter. Missing parameters yield "".
func (p *Params) String(ctx context.Context, name string) (string, error) {
	v, ok, err := p.Value(ctx, name)
	if err != nil || !ok || v == nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", &errors.ValidationError{
			Field:   name,
			Message: fmt.Sprintf("expected a string, got %T", v),
		}
	}
}

// RequiredString returns a string parameter that must be non-empty.
func (p *Params) RequiredString(ctx context.Context, name string) (string, error) {
	s, err := p.String(ctx, name)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &errors.ValidationError{
			Field:       name,
			Message:     fmt.Sprintf("parameter %q is required", name),
			SuggestText: fmt.Sprintf("Pass -p %s=<value>", name),
		}
	}
	return s, nil
}

// Int returns an integer parameter. Missing parameters yield 0.
func (p *Params) Int(ctx context.Context, name string) (int, error) {
	v, ok, err := p.Value(ctx, name)
	if err != nil || !ok || v == nil {
		return 0, err
	}
	n, convErr := toInt(v)
	if convErr != nil {
		return 0, &errors.ValidationError{Field: name, Message: convErr.Error()}
	}
	return n, nil
}

// Collection returns an object parameter, such as additionalFields. Missing
// parameters yield an empty map. JSON strings are decoded.
func (p *Params) Collection(ctx context.Context, name string) (map[string]any, error) {
	v, ok, err := p.Value(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok || v == nil {
		return map[string]any{}, nil
	}
	if s, isString := v.(string); isString {
		if strings.TrimSpace(s) == "" {
			return map[string]any{}, nil
		}
		decoded, decodeErr := decodeJSON(name, s)
		if decodeErr != nil {
			return nil, decodeErr
		}
		v = decoded
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		return nil, &errors.ValidationError{Field: name, Message: fmt.Sprintf("expected an object, got %T", v)}
	}
	return m, nil
}

// StringSlice returns a list parameter. A single string becomes a one-element
// list; comma separated strings are split.
func (p *Params) StringSlice(ctx context.Context, name string) ([]string, error) {
	v, ok, err := p.Value(ctx, name)
	if err != nil || !ok || v == nil {
		return nil, err
	}
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, isString := e.(string)
			if !isString {
				return nil, &errors.ValidationError{Field: name, Message: fmt.Sprintf("expected a list of strings, found %T", e)}
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		if t == "" {
			return nil, nil
		}
		parts := strings.Split(t, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	default:
		return nil, &errors.ValidationError{Field: name, Message: fmt.Sprintf("expected a list, got %T", v)}
	}
}

// JSON returns a JSON parameter. Strings are parsed eagerly; anything else is
// returned as given. Missing parameters yield nil.
func (p *Params) JSON(ctx context.Context, name string) (any, error) {
	v, ok, err := p.Value(ctx, name)
	if err != nil || !ok || v == nil {
		return nil, err
	}
	if s, isString := v.(string); isString {
		return decodeJSON(name, s)
	}
	return v, nil
}

func decodeJSON(name, s string) (any, error) {
	if !gjson.Valid(s) {
		return nil, &errors.ValidationError{
			Field:       name,
			Message:     fmt.Sprintf("parameter %q is not valid JSON", name),
			SuggestText: "Check quoting and trailing commas",
		}
	}
	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, &errors.ValidationError{Field: name, Message: err.Error()}
	}
	return out, nil
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("expected an integer, got %v", t)
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("expected an integer, got %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
