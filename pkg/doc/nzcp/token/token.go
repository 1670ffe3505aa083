/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package token parses the NZCP:/<version>/<base32> pass URI.
package token

import (
	"encoding/base32"
	"regexp"
	"strings"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

const base32BlockSize = 8

// tokenPattern captures scheme, version and base32 payload.
var tokenPattern = regexp.MustCompile(`\A([^:]+):/([^/]+)/([A-Z2-7]+)\z`) //nolint:gochecknoglobals

// Components are the parts of a pass URI.
type Components struct {
	Scheme  string
	Version string
	Data    string
}

// Parse matches the pass URI grammar and checks scheme and version.
func Parse(code string) (*Components, error) {
	m := tokenPattern.FindStringSubmatch(code)
	if m == nil {
		return nil, nzcp.NewParseError("invalid URL format", nil)
	}

	c := &Components{Scheme: m[1], Version: m[2], Data: m[3]}

	if c.Scheme != nzcp.Scheme {
		return nil, nzcp.NewParseError("scheme must be "+nzcp.Scheme, nil)
	}

	if c.Version != nzcp.VersionIdentifier {
		return nil, nzcp.NewParseError("version must be "+nzcp.VersionIdentifier, nil)
	}

	return c, nil
}

// Decode base32-decodes the payload. Missing padding is restored before decoding.
func (c *Components) Decode() ([]byte, error) {
	data := c.Data
	if rem := len(data) % base32BlockSize; rem != 0 {
		data += strings.Repeat("=", base32BlockSize-rem)
	}

	raw, err := base32.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, nzcp.NewParseError("invalid base32 payload", err)
	}

	return raw, nil
}

// Decode parses code and returns the decoded signed-structure bytes.
func Decode(code string) ([]byte, error) {
	c, err := Parse(code)
	if err != nil {
		return nil, err
	}

	return c.Decode()
}
