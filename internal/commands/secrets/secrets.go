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

// Package secrets implements the 'noderun secrets' commands.
package secrets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AvivoB/N8N-nodes/internal/commands/shared"
	"github.com/AvivoB/N8N-nodes/internal/secrets"
	"github.com/spf13/cobra"
)

// newResolver is replaced in tests.
var newResolver = secrets.NewDefaultResolver

// NewCommand creates the secrets command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Manage credential secrets",
		Long: `Store and remove secrets referenced from the config file.

A credential field set to "secret:<key>" is read from the first backend
holding <key>:
  1. Environment variables (NODERUN_SECRET_<KEY>, read-only)
  2. System keychain (macOS Keychain, Linux Secret Service, Windows Credential Manager)

Examples:
  noderun secrets set typesense/api_key
  echo "$KEY" | noderun secrets set typesense/api_key
  noderun secrets delete typesense/api_key --force`,
	}

	cmd.AddCommand(newSetCommand())
	cmd.AddCommand(newDeleteCommand())

	return cmd
}

func newSetCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Store a secret",
		Long: `Store a secret in the keychain.

The value is read from standard input when it is not a terminal, otherwise
it is prompted for without echo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := secrets.ValidateKey(key); err != nil {
				return shared.NewInvalidInputError("invalid secret key", err)
			}

			value, err := readSecretValue(cmd)
			if err != nil {
				return fmt.Errorf("failed to read secret value: %w", err)
			}
			if value == "" {
				return shared.NewInvalidInputError("secret value cannot be empty", nil)
			}

			resolver := newResolver()
			if err := resolver.Set(cmd.Context(), key, value, backend); err != nil {
				if errors.Is(err, secrets.ErrBackendUnavailable) {
					return fmt.Errorf("%w\n\nSet it in the environment instead: export %s=<value>", err, secrets.EnvVarName(key))
				}
				return fmt.Errorf("failed to set secret: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), shared.RenderOK(fmt.Sprintf("Secret %q stored; reference it as %q", key, secrets.SecretPrefix+key)))
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "Target backend (keychain)")

	return cmd
}

func newDeleteCommand() *cobra.Command {
	var (
		backend string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a secret",
		Long:  `Remove a secret. Asks for confirmation unless --force is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if !force {
				if shared.IsNonInteractive() {
					return shared.NewInvalidInputError("refusing to delete without confirmation", errors.New("pass --force in non-interactive mode"))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Delete secret %q? [y/N]: ", key)
				if !confirmed(cmd.InOrStdin()) {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion canceled")
					return nil
				}
			}

			resolver := newResolver()
			if err := resolver.Delete(cmd.Context(), key, backend); err != nil {
				switch {
				case errors.Is(err, secrets.ErrSecretNotFound):
					return fmt.Errorf("secret not found: %q", key)
				case errors.Is(err, secrets.ErrReadOnlyBackend):
					return errors.New("cannot delete from read-only backend (environment variables)")
				}
				return fmt.Errorf("failed to delete secret: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), shared.RenderOK(fmt.Sprintf("Secret %q deleted", key)))
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "Target backend (keychain)")
	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func readSecretValue(cmd *cobra.Command) (string, error) {
	if shared.IsNonInteractive() {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Enter secret value (hidden): ")
	value, err := shared.ReadHidden()
	fmt.Fprintln(cmd.OutOrStdout())
	return value, err
}

func confirmed(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
