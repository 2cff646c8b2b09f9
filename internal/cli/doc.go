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

/*
Package cli provides the root command for noderun.

The root command owns version information, persistent flags and exit code
handling. Subcommands live in the internal/commands packages.

# Command Tree

	noderun
	├── run       Run one node operation over a set of input items
	├── nodes     List and describe builtin nodes
	├── secrets   Store credential secrets in the OS keychain
	└── version   Show version

# Global Flags

	--config       Path to config file (default: ~/.config/noderun/config.yaml)
	--log-level    Override log.level (trace, debug, info, warn, error)
	--log-format   Override log.format (json, text)
	--json         Machine-readable output
	-v, --verbose  Debug logging
	-q, --quiet    Only log errors
*/
package cli
