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

package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/AvivoB/N8N-nodes/internal/commands/shared"
	"github.com/AvivoB/N8N-nodes/internal/config"
	"github.com/AvivoB/N8N-nodes/internal/host"
	"github.com/AvivoB/N8N-nodes/internal/integration"
	"github.com/AvivoB/N8N-nodes/internal/jq"
	"github.com/AvivoB/N8N-nodes/internal/log"
	"github.com/AvivoB/N8N-nodes/internal/operation"
	"github.com/AvivoB/N8N-nodes/internal/operation/transport"
	"github.com/AvivoB/N8N-nodes/internal/permissions"
	"github.com/AvivoB/N8N-nodes/internal/secrets"
	"github.com/AvivoB/N8N-nodes/internal/tracing"
	"github.com/AvivoB/N8N-nodes/pkg/httpclient"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newResolver is replaced in tests.
var newResolver = secrets.NewDefaultResolver

const shutdownTimeout = 5 * time.Second

func runNode(cmd *cobra.Command, nodeName string, opts *options) error {
	cfg, err := config.Load(shared.GetConfigPath())
	if err != nil {
		return shared.NewConfigError("failed to load configuration", err)
	}

	logger := newLogger(cfg, cmd)

	shutdown, err := setupTracing(cmd, cfg, logger)
	if err != nil {
		return shared.NewConfigError("failed to set up tracing", err)
	}
	defer shutdown()

	params, err := buildParams(opts)
	if err != nil {
		return shared.NewInvalidInputError("invalid parameters", err)
	}

	items, err := host.LoadItems(opts.itemsFile)
	if err != nil {
		return shared.NewInvalidInputError("failed to load items", err)
	}

	filter := jq.NewExecutor(0, 0)
	if err := filter.Validate(opts.jqFilter); err != nil {
		return shared.NewInvalidInputError("invalid --jq filter", err)
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:     cfg.HTTP.Timeout,
		UserAgent:   cfg.HTTP.UserAgent,
		TLSInsecure: cfg.HTTP.TLSInsecure,
		CheckHost:   permissions.HostPolicy(cfg.Permissions.Network),
		Logger:      logger,
	})
	if err != nil {
		return shared.NewConfigError("invalid http configuration", err)
	}

	limit := cfg.RateLimits[nodeName]
	node, err := integration.NewRegistry().New(nodeName, &operation.Options{
		HTTPClient:  client,
		RateLimiter: transport.NewRateLimiter(limit.RequestsPerSecond, limit.Burst),
		MaxPages:    cfg.Pagination.MaxPages,
	})
	if err != nil {
		return shared.NewInvalidInputError("cannot run node", err)
	}

	static := host.NewStatic(cfg, newResolver(), client, params, items)
	exec := &host.Execution{
		RunID:          uuid.NewString(),
		Items:          items,
		Credentials:    static,
		Tokens:         static,
		Parameters:     static,
		ContinueOnFail: opts.continueOnFail,
		Logger:         logger,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out, runErr := operation.Run(ctx, exec, node)

	if opts.metricsOut != "" {
		if err := operation.WriteMetrics(opts.metricsOut); err != nil {
			logger.Warn("failed to write metrics", slog.String("path", opts.metricsOut), log.Error(err))
		}
	}

	if runErr != nil {
		if shared.GetJSON() {
			_ = shared.EmitJSONError(cmd.OutOrStdout(), "run", runErr)
		}
		return shared.NewExecutionError(fmt.Sprintf("%s run %s failed", nodeName, exec.RunID), runErr)
	}

	return printOutput(ctx, cmd, filter, opts.jqFilter, out)
}

func printOutput(ctx context.Context, cmd *cobra.Command, filter *jq.Executor, expression string, out []host.OutputItem) error {
	var result any = out
	if expression != "" {
		filtered, err := filter.Execute(ctx, expression, out)
		if err != nil {
			return shared.NewInvalidInputError("--jq filter failed", err)
		}
		result = filtered
	}
	return shared.EmitJSON(cmd.OutOrStdout(), result)
}

// setupTracing installs the configured tracer provider. The returned func
// flushes it.
func setupTracing(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (func(), error) {
	if !cfg.Tracing.Enabled {
		return func() {}, nil
	}

	tracingCfg := cfg.Tracing
	if tracingCfg.ServiceVersion == "" {
		tracingCfg.ServiceVersion, _, _ = shared.GetVersion()
	}

	provider, err := tracing.Setup(cmd.Context(), tracingCfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("failed to flush traces", log.Error(err))
		}
	}, nil
}

// newLogger builds the run logger from config, letting the global flags override.
func newLogger(cfg *config.Config, cmd *cobra.Command) *slog.Logger {
	logCfg := &log.Config{
		Level:     cfg.Log.Level,
		Format:    log.Format(cfg.Log.Format),
		Output:    cmd.ErrOrStderr(),
		AddSource: cfg.Log.AddSource,
	}
	if level := shared.GetLogLevel(); level != "" {
		logCfg.Level = level
	}
	if format := shared.GetLogFormat(); format != "" {
		logCfg.Format = log.Format(format)
	}
	return log.New(logCfg)
}

// buildParams merges the --params file with -p overrides. The resource and
// operation flags win over both.
func buildParams(opts *options) (map[string]any, error) {
	params, err := host.LoadParams(opts.paramsFile)
	if err != nil {
		return nil, err
	}

	for _, arg := range opts.params {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected name=value)", arg)
		}
		params[name] = value
	}

	if opts.resource != "" {
		params[operation.ParamResource] = opts.resource
	}
	if opts.operation != "" {
		params[operation.ParamOperation] = opts.operation
	}
	return params, nil
}
