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
Package secrets stores and resolves the sensitive values behind node credentials.

Two backends are provided and queried in priority order:

	env      - Environment variables (NODERUN_SECRET_<KEY>), read-only, priority 100
	keychain - OS keychain (macOS Keychain, Linux Secret Service), priority 50

# References

Credential values in the config file may point at a secret instead of
holding it:

	credentials:
	  typesenseApi:
	    apiKey: secret:typesense/api_key
	    host: ${TYPESENSE_HOST}

A "secret:" value is looked up through the Resolver. A value of the exact
form ${NAME} is read from the environment. Anything else is used verbatim.
*/
package secrets
