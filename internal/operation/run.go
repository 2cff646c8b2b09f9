package operation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AvivoB/N8N-nodes/internal/host"
	"github.com/AvivoB/N8N-nodes/internal/log"
	"github.com/AvivoB/N8N-nodes/pkg/errors"
)

// Parameter names every node reads to select its call.
const (
	ParamResource  = "resource"
	ParamOperation = "operation"
)

// Run executes node once per input item, in order.
//
// Resource and operation are resolved from the first item only and reused
// for every item. With ContinueOnFail a failing item becomes an error record
// paired with its index; otherwise Run stops and returns the records produced
// so far together with the error.
func Run(ctx context.Context, exec *host.Execution, node Node) ([]host.OutputItem, error) {
	desc := node.Description()

	items := exec.Items
	if len(items) == 0 {
		items = []host.InputItem{{JSON: map[string]any{}}}
	}

	first := NewParams(exec.Parameters, desc, "", "", 0)
	resource, err := first.String(ctx, ParamResource)
	if err != nil {
		return nil, err
	}
	if resource == "" {
		resource = desc.DefaultResource()
	}
	first = NewParams(exec.Parameters, desc, resource, "", 0)
	operation, err := first.String(ctx, ParamOperation)
	if err != nil {
		return nil, err
	}
	if operation == "" {
		if r := desc.Resource(resource); r != nil {
			operation = r.DefaultOperation
		}
	}

	logger := log.WithRunContext(exec.Log(), exec.RunID, desc.Name, resource, operation)
	logger.Debug("node run started", slog.Int("items", len(items)))

	ctx, span := startRunSpan(ctx, exec.RunID, desc.Name, resource, operation, len(items))
	out, err := runItems(ctx, exec, node, resource, operation, items, logger)
	endSpan(span, err)
	if err != nil {
		return out, err
	}

	logger.Debug("node run completed", slog.Int("records", len(out)))
	return out, nil
}

func runItems(ctx context.Context, exec *host.Execution, node Node, resource, operation string, items []host.InputItem, logger *slog.Logger) ([]host.OutputItem, error) {
	desc := node.Description()

	var out []host.OutputItem
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		itemLogger := log.WithItem(logger, i)
		call := &Call{
			Resource:  resource,
			Operation: operation,
			Index:     i,
			Item:      item,
			Params:    NewParams(exec.Parameters, desc, resource, operation, i),
			Execution: exec,
			Logger:    itemLogger,
		}

		itemCtx, span := startItemSpan(ctx, exec.RunID, desc.Name, resource, operation, i)
		result, err := executeItem(itemCtx, node, call)
		endSpan(span, err)

		if err != nil {
			recordItem(desc.Name, itemResultError)
			if exec.ContinueOnFail {
				itemLogger.Warn("item failed, continuing", log.Error(err))
				index := i
				out = append(out, host.OutputItem{
					JSON:       map[string]any{"error": errors.MessageOf(err)},
					PairedItem: &index,
				})
				continue
			}
			itemLogger.Error("item failed", log.Error(err))
			return out, fmt.Errorf("item %d: %w", i, err)
		}

		recordItem(desc.Name, itemResultSuccess)
		out = append(out, Normalize(result)...)
	}
	return out, nil
}

func executeItem(ctx context.Context, node Node, call *Call) (any, error) {
	if node.Description().Operation(call.Resource, call.Operation) == nil {
		return nil, &errors.ValidationError{
			Field:       ParamOperation,
			Message:     fmt.Sprintf("The operation %q is not supported for resource %q", call.Operation, call.Resource),
			SuggestText: "Run 'noderun nodes describe' to list the available operations",
		}
	}
	return node.Execute(ctx, call)
}

// Normalize flattens one response into output records. A list yields one
// record per element. Empty payloads (nil, false, zero, "") yield a single
// empty record and anything else a single record.
func Normalize(result any) []host.OutputItem {
	if isEmptyPayload(result) {
		return []host.OutputItem{{JSON: map[string]any{}}}
	}
	switch v := result.(type) {
	case []any:
		out := make([]host.OutputItem, 0, len(v))
		for _, e := range v {
			out = append(out, host.OutputItem{JSON: e})
		}
		return out
	case []map[string]any:
		out := make([]host.OutputItem, 0, len(v))
		for _, e := range v {
			out = append(out, host.OutputItem{JSON: e})
		}
		return out
	default:
		return []host.OutputItem{{JSON: v}}
	}
}

func isEmptyPayload(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0
	case int:
		return t == 0
	default:
		return false
	}
}
