/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package nzcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"parse", NewParseError("invalid issuer", nil), ParseErrorKind},
		{"network", NewNetworkError(404, "https request returned response code 404", nil), NetworkErrorKind},
		{"not yet valid", NewNotYetValidError("not yet valid"), NotYetValidErrorKind},
		{"expired", NewExpiredError("expired"), ExpiredErrorKind},
		{"signature", NewSignatureError("invalid signature", nil), SignatureErrorKind},
		{"wrapped", fmt.Errorf("verify pass: %w", NewExpiredError("expired")), ExpiredErrorKind},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := KindOf(tc.err)
			require.True(t, ok)
			require.Equal(t, tc.kind, kind)
		})
	}

	_, ok := KindOf(errors.New("plain"))
	require.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("unexpected EOF")

	err := NewParseError("invalid signed structure", cause)
	require.EqualError(t, err, "invalid signed structure: unexpected EOF")
	require.ErrorIs(t, err, cause)

	netErr := NewNetworkError(500, "https request returned response code 500", nil)
	require.EqualError(t, netErr, "https request returned response code 500")
	require.Equal(t, 500, netErr.StatusCode)

	var target *NetworkError
	require.True(t, errors.As(fmt.Errorf("wrap: %w", netErr), &target))
	require.Equal(t, 500, target.StatusCode)

	require.Equal(t, "SignatureError", SignatureErrorKind.String())
	require.Equal(t, "Kind(99)", Kind(99).String())
}

func TestPassJSON(t *testing.T) {
	family := "Sparrow"
	dob, err := time.Parse(DateLayout, "1960-04-16")
	require.NoError(t, err)

	pass := &Pass{
		GivenName:  "Jack",
		FamilyName: &family,
		DOB:        dob,
		Expiry:     time.Unix(1951416330, 0).UTC(),
		NotBefore:  time.Unix(1635883530, 0).UTC(),
		JTI:        "urn:uuid:60a4f54d-4e30-4332-be33-ad78b1eafa4b",
		Version:    "1.0.0",
		Issuer:     "did:web:nzcp.covid19.health.nz",
		KeyID:      "key-1",
	}

	raw, err := json.Marshal(pass)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"dob":"1960-04-16"`)
	require.Contains(t, string(raw), `"expiry":"2031-11-02T20:05:30Z"`)

	decoded := &Pass{}
	require.NoError(t, json.Unmarshal(raw, decoded))
	require.Equal(t, pass, decoded)
	require.Equal(t, "1960-04-16", decoded.DOBString())
}
