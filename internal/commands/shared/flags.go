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

package shared

// Global flag values, bound by the root command
var (
	verboseFlag   bool
	quietFlag     bool
	jsonFlag      bool
	configFlag    string
	logLevelFlag  string
	logFormatFlag string

	// Build-time version information
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// GlobalFlags holds pointers the root command binds persistent flags to.
type GlobalFlags struct {
	Verbose   *bool
	Quiet     *bool
	JSON      *bool
	Config    *string
	LogLevel  *string
	LogFormat *string
}

// RegisterFlagPointers returns pointers to flag variables for binding.
func RegisterFlagPointers() GlobalFlags {
	return GlobalFlags{
		Verbose:   &verboseFlag,
		Quiet:     &quietFlag,
		JSON:      &jsonFlag,
		Config:    &configFlag,
		LogLevel:  &logLevelFlag,
		LogFormat: &logFormatFlag,
	}
}

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	version = v
	commit = c
	buildDate = b
}

// GetJSON returns the JSON output flag value
func GetJSON() bool {
	return jsonFlag
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return configFlag
}

// GetLogLevel returns the --log-level override. --verbose implies debug
// and --quiet implies error when no explicit level is given.
func GetLogLevel() string {
	switch {
	case logLevelFlag != "":
		return logLevelFlag
	case verboseFlag:
		return "debug"
	case quietFlag:
		return "error"
	}
	return ""
}

// GetLogFormat returns the --log-format override
func GetLogFormat() string {
	return logFormatFlag
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return version, commit, buildDate
}

// ResetFlagsForTest restores every global flag to its zero value.
func ResetFlagsForTest() {
	verboseFlag = false
	quietFlag = false
	jsonFlag = false
	configFlag = ""
	logLevelFlag = ""
	logFormatFlag = ""
}

// SetConfigPathForTest sets the config path for testing purposes
func SetConfigPathForTest(path string) {
	configFlag = path
}
