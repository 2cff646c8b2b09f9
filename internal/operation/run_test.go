package operation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AvivoB/N8N-nodes/internal/host"
	pkgerrors "github.com/AvivoB/N8N-nodes/pkg/errors"
)

func TestRun_Defaults(t *testing.T) {
	node := &echoNode{}
	exec := &host.Execution{
		Items:      items(map[string]any{"id": "a"}, map[string]any{"id": "b"}),
		Parameters: &mapParams{},
	}

	out, err := Run(context.Background(), exec, node)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, map[string]any{"id": "a"}, out[0].JSON)
	assert.Equal(t, map[string]any{"id": "b"}, out[1].JSON)
	assert.Nil(t, out[0].PairedItem)

	require.Len(t, node.calls, 2)
	assert.Equal(t, "record", node.calls[0].Resource)
	assert.Equal(t, "get", node.calls[0].Operation)
	assert.Equal(t, 1, node.calls[1].Index)
}

func TestRun_FlattensLists(t *testing.T) {
	exec := &host.Execution{
		Items:      items(map[string]any{}, map[string]any{}),
		Parameters: &mapParams{values: map[string]any{"operation": "list"}},
	}

	out, err := Run(context.Background(), exec, &echoNode{})
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, map[string]any{"n": 1}, out[0].JSON)
	assert.Equal(t, map[string]any{"n": 2}, out[3].JSON)
}

func TestRun_EmptyResponseYieldsEmptyRecord(t *testing.T) {
	exec := &host.Execution{
		Items:      items(map[string]any{}),
		Parameters: &mapParams{},
	}

	out, err := Run(context.Background(), exec, &echoNode{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, map[string]any{}, out[0].JSON)
}

func TestRun_OperationFromFirstItemOnly(t *testing.T) {
	node := &echoNode{}
	exec := &host.Execution{
		Items: items(map[string]any{"id": "a"}, map[string]any{"id": "b"}),
		Parameters: &mapParams{
			perItem: map[int]map[string]any{
				0: {"operation": "get"},
				1: {"operation": "list"},
			},
		},
	}

	out, err := Run(context.Background(), exec, node)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, c := range node.calls {
		assert.Equal(t, "get", c.Operation)
	}
}

func TestRun_ContinueOnFail(t *testing.T) {
	exec := &host.Execution{
		Items:          items(map[string]any{"id": "a"}, map[string]any{"fail": true}, map[string]any{"id": "c"}),
		Parameters:     &mapParams{},
		ContinueOnFail: true,
	}

	out, err := Run(context.Background(), exec, &echoNode{})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, map[string]any{"error": "Not Found - echo"}, out[1].JSON)
	require.NotNil(t, out[1].PairedItem)
	assert.Equal(t, 1, *out[1].PairedItem)
	assert.Equal(t, map[string]any{"id": "c"}, out[2].JSON)
}

func TestRun_AbortOnFail(t *testing.T) {
	node := &echoNode{}
	exec := &host.Execution{
		Items:      items(map[string]any{"id": "a"}, map[string]any{"fail": true}, map[string]any{"id": "c"}),
		Parameters: &mapParams{},
	}

	out, err := Run(context.Background(), exec, node)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	require.Len(t, out, 1)
	assert.Len(t, node.calls, 2, "no item after the failure should run")
}

func TestRun_UnknownOperation(t *testing.T) {
	exec := &host.Execution{
		Items:          items(map[string]any{}),
		Parameters:     &mapParams{values: map[string]any{"operation": "explode"}},
		ContinueOnFail: true,
	}

	out, err := Run(context.Background(), exec, &echoNode{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	msg := out[0].JSON.(map[string]any)["error"]
	assert.Contains(t, msg, `"explode" is not supported`)
}

func TestRun_UnknownOperationAborts(t *testing.T) {
	exec := &host.Execution{
		Items:      items(map[string]any{}),
		Parameters: &mapParams{values: map[string]any{"operation": "explode"}},
	}

	_, err := Run(context.Background(), exec, &echoNode{})
	var vErr *pkgerrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "operation", vErr.Field)
}

func TestRun_NoItems(t *testing.T) {
	node := &echoNode{}
	exec := &host.Execution{Parameters: &mapParams{}}

	out, err := Run(context.Background(), exec, node)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Len(t, node.calls, 1)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &host.Execution{
		Items:      items(map[string]any{"id": "a"}),
		Parameters: &mapParams{},
	}

	out, err := Run(ctx, exec, &echoNode{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out)
}

func TestRun_Idempotent(t *testing.T) {
	exec := &host.Execution{
		Items:      items(map[string]any{"id": "a"}),
		Parameters: &mapParams{},
	}

	first, err := Run(context.Background(), exec, &echoNode{})
	require.NoError(t, err)
	second, err := Run(context.Background(), exec, &echoNode{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []host.OutputItem
	}{
		{"nil", nil, []host.OutputItem{{JSON: map[string]any{}}}},
		{"object", map[string]any{"a": 1.0}, []host.OutputItem{{JSON: map[string]any{"a": 1.0}}}},
		{"list", []any{1.0, "x"}, []host.OutputItem{{JSON: 1.0}, {JSON: "x"}}},
		{"empty list", []any{}, []host.OutputItem{}},
		{"scalar", "ok", []host.OutputItem{{JSON: "ok"}}},
		{"true", true, []host.OutputItem{{JSON: true}}},
		{"false", false, []host.OutputItem{{JSON: map[string]any{}}}},
		{"zero", 0.0, []host.OutputItem{{JSON: map[string]any{}}}},
		{"empty string", "", []host.OutputItem{{JSON: map[string]any{}}}},
		{"list keeps falsy elements", []any{false, 0.0}, []host.OutputItem{{JSON: false}, {JSON: 0.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}
