// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func restoreGlobal(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestSetup_RecordsSpans(t *testing.T) {
	restoreGlobal(t)
	exporter := tracetest.NewInMemoryExporter()

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.ServiceVersion = "1.2.3"

	provider, err := Setup(context.Background(), cfg, nil, sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	_, span := otel.Tracer("test").Start(context.Background(), "node.item: document.get")
	span.End()

	require.NoError(t, provider.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "node.item: document.get", spans[0].Name)

	attrs := map[string]string{}
	for _, kv := range spans[0].Resource.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "noderun", attrs["service.name"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
}

func TestSetup_ConsoleExporter(t *testing.T) {
	restoreGlobal(t)

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.BatchTimeout = 10 * time.Millisecond
	cfg.Exporters = []ExporterConfig{{Type: ExporterConsole}}

	var buf bytes.Buffer
	provider, err := Setup(context.Background(), cfg, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "GET typesense")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "GET typesense")
}

func TestSetup_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"sample rate above one", Config{SampleRate: 1.5}},
		{"unknown exporter", Config{SampleRate: 1, Exporters: []ExporterConfig{{Type: "zipkin"}}}},
		{"otlp without endpoint", Config{SampleRate: 1, Exporters: []ExporterConfig{{Type: ExporterOTLPHTTP}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Setup(context.Background(), tt.cfg, nil)
			assert.Error(t, err)
		})
	}
}

func TestCreateExporter(t *testing.T) {
	ctx := context.Background()

	exporter, err := CreateExporter(ctx, ExporterConfig{Type: ExporterNone}, nil)
	require.NoError(t, err)
	assert.Nil(t, exporter)

	exporter, err = CreateExporter(ctx, ExporterConfig{Type: ExporterOTLPHTTP, Endpoint: "localhost:4318", Insecure: true}, nil)
	require.NoError(t, err)
	require.NotNil(t, exporter)
	assert.NoError(t, exporter.Shutdown(ctx))

	_, err = CreateExporter(ctx, ExporterConfig{Type: "jaeger"}, nil)
	assert.Error(t, err)
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		desc := NewSampler(tt.rate).Description()
		assert.Contains(t, desc, "ParentBased")
		assert.Contains(t, desc, tt.want)
	}
}
