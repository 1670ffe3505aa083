/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

func TestHostFromIssuer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		for issuer, host := range map[string]string{
			"did:web:nzcp.identity.health.nz": "nzcp.identity.health.nz",
			"did:web:nzcp.covid19.health.nz":  "nzcp.covid19.health.nz",
			"did:web:localhost%3A8443":        "localhost:8443",
			"did:web:example.com:user:alice":  "alice",
		} {
			got, err := hostFromIssuer(issuer)
			require.NoError(t, err, issuer)
			require.Equal(t, host, got)
		}
	})

	t.Run("failure", func(t *testing.T) {
		for _, issuer := range []string{
			"did:key:z6Mk",
			"nzcp.identity.health.nz",
			"did:web:",
			"did:web:bad%zzhost",
		} {
			_, err := hostFromIssuer(issuer)
			require.Error(t, err, issuer)

			kind, ok := nzcp.KindOf(err)
			require.True(t, ok)
			require.Equal(t, nzcp.ParseErrorKind, kind)
		}
	})
}

func TestDocumentURL(t *testing.T) {
	require.Equal(t, "https://nzcp.identity.health.nz/.well-known/did.json", documentURL("nzcp.identity.health.nz"))
	require.Equal(t, "https://localhost:8443/.well-known/did.json", documentURL("localhost:8443"))
}

func TestKeyReference(t *testing.T) {
	require.Equal(t, "did:web:nzcp.identity.health.nz#z12Kf7UQ",
		keyReference("did:web:nzcp.identity.health.nz", "z12Kf7UQ"))
}
