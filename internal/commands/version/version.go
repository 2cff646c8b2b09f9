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

package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/AvivoB/N8N-nodes/internal/commands/shared"
	"github.com/AvivoB/N8N-nodes/internal/integration"
	"github.com/spf13/cobra"
)

// VersionInfo is the build metadata plus the node types compiled in.
type VersionInfo struct {
	shared.JSONResponse
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	BuildDate string   `json:"build_date"`
	GoVersion string   `json:"go_version"`
	Nodes     []string `json:"nodes"`
}

// NewCommand creates the version command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the noderun version, commit, build date and the node types it can run.`,
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	v, c, b := shared.GetVersion()

	info := VersionInfo{
		JSONResponse: shared.NewJSONResponse("version"),
		Version:      v,
		Commit:       c,
		BuildDate:    b,
		GoVersion:    runtime.Version(),
		Nodes:        integration.NewRegistry().List(),
	}

	out := cmd.OutOrStdout()
	if shared.GetJSON() {
		if err := shared.EmitJSON(out, info); err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		return nil
	}

	fmt.Fprintf(out, "noderun version %s\n", info.Version)
	for _, row := range shared.RenderKeyValues(
		[]string{"commit", "build date", "go", "nodes"},
		map[string]string{
			"commit":     info.Commit,
			"build date": info.BuildDate,
			"go":         info.GoVersion,
			"nodes":      strings.Join(info.Nodes, ", "),
		},
	) {
		fmt.Fprintf(out, "  %s\n", row)
	}
	return nil
}
