/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package nzcptest builds signed passes and DID documents for tests.
package nzcptest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base32"
	"encoding/json"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/require"
	"github.com/veraison/go-cose"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

const (
	// KeyID is the key id used by generated passes.
	KeyID = "key-1"

	// TestIssuer is the trusted test issuer.
	TestIssuer = "did:web:nzcp.covid19.health.nz"

	// JTI is the jti of the cti set by Claims.
	JTI = "urn:uuid:60a4f54d-4e30-4332-be33-ad78b1eafa4b"

	sign1Tag = 18
)

// CTI returns the 16 byte cti matching JTI.
func CTI() []byte {
	return []byte{
		0x60, 0xa4, 0xf5, 0x4d, 0x4e, 0x30, 0x43, 0x32,
		0xbe, 0x33, 0xad, 0x78, 0xb1, 0xea, 0xfa, 0x4b,
	}
}

// NewKey generates a P-256 key.
func NewKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return priv
}

// VC returns a valid credential claim for Jack Sparrow.
func VC() map[string]interface{} {
	return map[string]interface{}{
		"@context": []interface{}{nzcp.CredentialsContextV1, "https://nzcp.covid19.health.nz/contexts/v1"},
		"version":  "1.0.0",
		"type":     []interface{}{nzcp.TypeVerifiableCredential, nzcp.TypePublicCovidPass},
		"credentialSubject": map[string]interface{}{
			"givenName":  "Jack",
			"familyName": "Sparrow",
			"dob":        "1960-04-16",
		},
	}
}

// Claims returns a valid claims map issued by TestIssuer, valid from now-1h to now+1y.
func Claims(now time.Time) map[interface{}]interface{} {
	return map[interface{}]interface{}{
		1:    TestIssuer,
		4:    now.AddDate(1, 0, 0).Unix(),
		5:    now.Add(-time.Hour).Unix(),
		7:    CTI(),
		"vc": VC(),
	}
}

// Subject returns the credentialSubject map of claims for in-place edits.
func Subject(claims map[interface{}]interface{}) map[string]interface{} {
	vc, ok := claims["vc"].(map[string]interface{})
	if !ok {
		return nil
	}

	subject, ok := vc["credentialSubject"].(map[string]interface{})
	if !ok {
		return nil
	}

	return subject
}

// Payload encodes claims as CBOR.
func Payload(t *testing.T, claims map[interface{}]interface{}) []byte {
	t.Helper()

	b, err := cbor.Marshal(claims)
	require.NoError(t, err)

	return b
}

// Sign produces a tagged ES256 COSE_Sign1. An empty kid omits the key id header.
func Sign(t *testing.T, priv *ecdsa.PrivateKey, kid string, payload []byte) []byte {
	t.Helper()

	signer, err := cose.NewSigner(cose.AlgorithmES256, priv)
	require.NoError(t, err)

	msg := cose.NewSign1Message()
	msg.Headers.Protected.SetAlgorithm(cose.AlgorithmES256)

	if kid != "" {
		msg.Headers.Protected[cose.HeaderLabelKeyID] = []byte(kid)
	}

	msg.Payload = payload

	require.NoError(t, msg.Sign(rand.Reader, nil, signer))

	raw, err := msg.MarshalCBOR()
	require.NoError(t, err)

	return raw
}

// Envelope builds a tagged COSE_Sign1 with arbitrary protected headers and a zero signature.
func Envelope(t *testing.T, protected map[int64]interface{}, payload []byte) []byte {
	t.Helper()

	protectedBytes, err := cbor.Marshal(protected)
	require.NoError(t, err)

	raw, err := cbor.Marshal(cbor.Tag{
		Number:  sign1Tag,
		Content: []interface{}{protectedBytes, map[interface{}]interface{}{}, payload, make([]byte, 64)},
	})
	require.NoError(t, err)

	return raw
}

// Encode wraps COSE bytes in an NZCP:/1/ URI with unpadded base32.
func Encode(raw []byte) string {
	return nzcp.Scheme + ":/" + nzcp.VersionIdentifier + "/" + base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw)
}

// Token signs claims with priv under kid and returns the pass URI.
func Token(t *testing.T, priv *ecdsa.PrivateKey, kid string, claims map[interface{}]interface{}) string {
	t.Helper()

	return Encode(Sign(t, priv, kid, Payload(t, claims)))
}

// JWK returns pub as a JSON object.
func JWK(t *testing.T, pub *ecdsa.PublicKey) map[string]interface{} {
	t.Helper()

	b, err := jose.JSONWebKey{Key: pub}.MarshalJSON()
	require.NoError(t, err)

	jwk := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(b, &jwk))

	return jwk
}

// DIDDocument returns a DID document for issuer publishing pub under issuer#keyID.
func DIDDocument(t *testing.T, issuer, keyID string, pub *ecdsa.PublicKey) map[string]interface{} {
	t.Helper()

	ref := issuer + "#" + keyID

	return map[string]interface{}{
		"@context": []interface{}{"https://w3.org/ns/did/v1", "https://w3id.org/security/suites/jws-2020/v1"},
		"id":       issuer,
		"verificationMethod": []interface{}{
			map[string]interface{}{
				"id":           ref,
				"controller":   issuer,
				"type":         "JsonWebKey2020",
				"publicKeyJwk": JWK(t, pub),
			},
		},
		"assertionMethod": []interface{}{ref},
	}
}

// DIDDocumentJSON is DIDDocument serialized as JSON.
func DIDDocumentJSON(t *testing.T, issuer, keyID string, pub *ecdsa.PublicKey) []byte {
	t.Helper()

	b, err := json.Marshal(DIDDocument(t, issuer, keyID, pub))
	require.NoError(t, err)

	return b
}
