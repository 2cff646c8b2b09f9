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

package cli

import (
	"github.com/AvivoB/N8N-nodes/internal/commands/shared"
	"github.com/spf13/cobra"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// NewRootCommand creates the root Cobra command for noderun
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "noderun",
		Short: "noderun - run workflow nodes from the command line",
		Long: `noderun executes a single workflow node operation (Google Search Console,
Typesense) against a list of input items and prints the output records as JSON.

Credentials are read from the config file. Values may reference the OS
keychain ("secret:<key>") or environment variables ("${VAR}").

Run 'noderun nodes list' to see the available nodes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := shared.RegisterFlagPointers()

	cmd.PersistentFlags().BoolVarP(flags.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(flags.Quiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().BoolVar(flags.JSON, "json", false, "Output in JSON format")
	cmd.PersistentFlags().StringVar(flags.Config, "config", "", "Path to config file (default: ~/.config/noderun/config.yaml)")
	cmd.PersistentFlags().StringVar(flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(flags.LogFormat, "log-format", "", "Log format (json, text)")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// HandleExitError prints err and exits with the matching exit code
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
