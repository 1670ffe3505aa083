/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package nzcp verifies NZ Covid Passes (https://nzcp.covid19.health.nz).
//
// # Packages for end developer usage
//
// pkg/verifier: Verifies a pass token and returns the pass details.
// Reference: https://pkg.go.dev/github.com/nzcp/nzcp-go/pkg/verifier
//
// pkg/controller: Exposes verification as controller commands and REST handlers.
// Reference: https://pkg.go.dev/github.com/nzcp/nzcp-go/pkg/controller
//
// cmd/nzcp-rest: Serves the REST API, or verifies a single pass from the command line.
//
// # Basic workflow
//
//  1. Create a verifier with verifier.New, sharing a cache between calls if needed.
//  2. Call Verify with the scanned NZCP:/1/... token.
//  3. Inspect the returned error's nzcp.Kind to tell a bad pass from a network failure.
package nzcp
