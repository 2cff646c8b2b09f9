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

// Package run implements 'noderun run'.
package run

import (
	"github.com/spf13/cobra"
)

// options holds the flags of one invocation.
type options struct {
	resource       string
	operation      string
	params         []string
	paramsFile     string
	itemsFile      string
	continueOnFail bool
	jqFilter       string
	metricsOut     string
}

// NewCommand creates the run command
func NewCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "run <node>",
		Short: "Run one node operation over a set of input items",
		Long: `Run executes a single resource/operation of a node once per input item and
prints the output records as a JSON array.

The resource and operation are read once and apply to every item. Parameters
come from --params (JSON or YAML) and are overridden by -p name=value. A value
starting with "=" is a jq expression evaluated against the current item:

  -p documentId='=.json.id'

Items are read from --items (a JSON or YAML list). Without it the node runs
once with an empty item.

Failure Handling:
  (default)           The first failing item aborts the run, nothing is printed
  --continue-on-fail  Each failing item yields {"json":{"error":"..."},"pairedItem":N}

Exit Codes:
  0  success
  1  execution failed
  2  invalid node, parameter or input
  3  configuration or credential problem
  4  the remote API rejected a request`,
		Example: `  noderun run typesense -r document -o get -p collectionName=products -p documentId=42
  noderun run typesense -r search -o search --items queries.json -p collectionName=products \
      -p searchQuery='=.json.q' -p queryBy=name
  noderun run searchconsole -r searchAnalytics -o query -p siteUrl=example.com \
      -p startDate=2024-01-01 -p endDate=2024-01-31 --jq '[.[].json.clicks] | add'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNode(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resource, "resource", "r", "", "Resource to operate on (default: the node's default resource)")
	cmd.Flags().StringVarP(&opts.operation, "operation", "o", "", "Operation to run (default: the resource's default operation)")
	cmd.Flags().StringArrayVarP(&opts.params, "param", "p", nil, "Parameter in name=value format (repeatable)")
	cmd.Flags().StringVar(&opts.paramsFile, "params", "", "JSON or YAML file with parameters")
	cmd.Flags().StringVar(&opts.itemsFile, "items", "", "JSON or YAML file with the input items")
	cmd.Flags().BoolVar(&opts.continueOnFail, "continue-on-fail", false, "Emit an error record for failing items instead of aborting")
	cmd.Flags().StringVar(&opts.jqFilter, "jq", "", "jq filter applied to the output records before printing")
	cmd.Flags().StringVar(&opts.metricsOut, "metrics-out", "", "Write Prometheus metrics in text format to this file")

	return cmd
}
