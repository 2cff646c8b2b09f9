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

// Package nodes implements the 'noderun nodes' commands.
package nodes

import (
	"fmt"
	"io"
	"strings"

	"github.com/AvivoB/N8N-nodes/internal/commands/shared"
	"github.com/AvivoB/N8N-nodes/internal/integration"
	"github.com/AvivoB/N8N-nodes/internal/operation"
	"github.com/AvivoB/N8N-nodes/internal/operation/api"
	"github.com/spf13/cobra"
)

// NewCommand creates the nodes command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List and describe builtin nodes",
	}

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newDescribeCommand())

	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List builtin nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			descs, err := describeAll(integration.NewRegistry())
			if err != nil {
				return err
			}
			return writeList(cmd.OutOrStdout(), descs, shared.GetJSON())
		},
	}
}

func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <node>",
		Short: "Show the credentials, resources, operations and parameters of a node",
		Example: `  noderun nodes describe typesense
  noderun nodes describe searchconsole --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := integration.NewRegistry().New(args[0], nil)
			if err != nil {
				return shared.NewInvalidInputError("unknown node", err)
			}
			return writeDescription(cmd.OutOrStdout(), node.Description(), shared.GetJSON())
		},
	}
}

func describeAll(registry *operation.Registry) ([]*api.NodeDescription, error) {
	names := registry.List()
	descs := make([]*api.NodeDescription, 0, len(names))
	for _, name := range names {
		node, err := registry.New(name, nil)
		if err != nil {
			return nil, err
		}
		descs = append(descs, node.Description())
	}
	return descs, nil
}

func writeList(w io.Writer, descs []*api.NodeDescription, asJSON bool) error {
	if asJSON {
		type nodeSummary struct {
			Name        string   `json:"name"`
			DisplayName string   `json:"displayName"`
			Description string   `json:"description"`
			Resources   []string `json:"resources"`
		}
		resp := struct {
			shared.JSONResponse
			Nodes []nodeSummary `json:"nodes"`
		}{JSONResponse: shared.NewJSONResponse("nodes list")}

		for _, d := range descs {
			resp.Nodes = append(resp.Nodes, nodeSummary{
				Name:        d.Name,
				DisplayName: d.DisplayName,
				Description: d.Description,
				Resources:   resourceNames(d),
			})
		}
		return shared.EmitJSON(w, resp)
	}

	for _, d := range descs {
		fmt.Fprintf(w, "%s  %s\n", shared.Header.Render(d.Name), d.Description)
		fmt.Fprintf(w, "  %s %s\n", shared.RenderLabel("resources:"), strings.Join(resourceNames(d), ", "))
	}
	return nil
}

func writeDescription(w io.Writer, d *api.NodeDescription, asJSON bool) error {
	if asJSON {
		return shared.EmitJSON(w, struct {
			shared.JSONResponse
			Node *api.NodeDescription `json:"node"`
		}{shared.NewJSONResponse("nodes describe"), d})
	}

	fmt.Fprintf(w, "%s (%s) v%d\n%s\n\n", d.DisplayName, d.Name, d.Version, d.Description)

	for _, c := range d.Credentials {
		var lines []string
		if len(c.Extends) > 0 {
			lines = append(lines, shared.RenderLabel("extends: ")+strings.Join(c.Extends, ", "))
		}
		for _, p := range c.Properties {
			if p.Hidden {
				continue
			}
			lines = append(lines, propertyLine(p))
		}
		fmt.Fprintln(w, shared.RenderSection("credential "+c.Name, lines))
	}

	for _, r := range d.Resources {
		var lines []string
		for _, op := range r.Operations {
			line := fmt.Sprintf("%-10s %-7s %s", op.Name, op.Method, op.Description)
			if op.Name == r.DefaultOperation {
				line += " " + shared.RenderLabel("(default)")
			}
			lines = append(lines, line)
			for _, p := range d.ParametersFor(r.Name, op.Name) {
				lines = append(lines, "  "+parameterLine(p))
			}
		}
		fmt.Fprintln(w, shared.RenderSection("resource "+r.Name, lines))
	}
	return nil
}

func propertyLine(p api.CredentialProperty) string {
	line := fmt.Sprintf("%s (%s)", p.Name, p.Type)
	if p.Required {
		line += " required"
	}
	if p.Default != nil && !p.Password {
		line += " " + shared.RenderLabel(fmt.Sprintf("default=%v", p.Default))
	}
	return line
}

func parameterLine(p api.ParameterInfo) string {
	line := "-p " + p.Name + " (" + p.Type + ")"
	if p.Required {
		line += " required"
	}
	if len(p.Options) > 0 {
		line += " " + shared.RenderLabel("["+strings.Join(p.Options, "|")+"]")
	}
	return line
}

func resourceNames(d *api.NodeDescription) []string {
	names := make([]string, 0, len(d.Resources))
	for _, r := range d.Resources {
		names = append(names, r.Name)
	}
	return names
}
