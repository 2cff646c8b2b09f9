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

import (
	"errors"
	"fmt"
	"io"
	"os"

	pkgerrors "github.com/AvivoB/N8N-nodes/pkg/errors"
)

// Exit codes for noderun commands
const (
	ExitSuccess         = 0
	ExitExecutionFailed = 1
	ExitInvalidInput    = 2
	ExitConfigError     = 3
	ExitRemoteError     = 4
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewExecutionError creates an error for a node run that did not complete.
// The exit code is derived from the cause.
func NewExecutionError(msg string, cause error) *ExitError {
	code := ExitCodeFor(cause)
	if code == ExitSuccess {
		code = ExitExecutionFailed
	}
	return &ExitError{
		Code:    code,
		Message: msg,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an error for bad flags, parameters or input files
func NewInvalidInputError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitInvalidInput,
		Message: msg,
		Cause:   cause,
	}
}

// NewConfigError creates an error for an unreadable or invalid config file
func NewConfigError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitConfigError,
		Message: msg,
		Cause:   cause,
	}
}

// ExitCodeFor classifies an error chain into an exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}

	var validationErr *pkgerrors.ValidationError
	if errors.As(err, &validationErr) {
		return ExitInvalidInput
	}

	var configErr *pkgerrors.ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	var classified pkgerrors.ErrorClassifier
	if errors.As(err, &classified) {
		return ExitRemoteError
	}

	return ExitExecutionFailed
}

// HandleExitError prints err and exits with the code it maps to
func HandleExitError(err error) {
	if err == nil {
		return
	}
	os.Exit(reportError(os.Stderr, err))
}

// reportError writes the error and any suggestion to w and returns the exit code.
func reportError(w io.Writer, err error) int {
	fmt.Fprintln(w, RenderError("Error: "+err.Error()))
	printUserVisibleSuggestion(w, err)
	return ExitCodeFor(err)
}

// printUserVisibleSuggestion prints the suggestion of the first user visible
// error in the chain, if it has one.
func printUserVisibleSuggestion(w io.Writer, err error) {
	if uv := userVisible(err); uv != nil {
		if suggestion := uv.Suggestion(); suggestion != "" {
			fmt.Fprintf(w, "\n%s %s\n", RenderLabel("Suggestion:"), suggestion)
		}
	}
}

// userVisible walks the chain to the first UserVisibleError. It returns nil
// when that error is not marked visible.
func userVisible(err error) pkgerrors.UserVisibleError {
	for err != nil {
		if userErr, ok := err.(pkgerrors.UserVisibleError); ok {
			if userErr.IsUserVisible() {
				return userErr
			}
			return nil
		}
		err = errors.Unwrap(err)
	}
	return nil
}
