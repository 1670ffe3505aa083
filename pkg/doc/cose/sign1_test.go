/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cose

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
	"github.com/veraison/go-cose"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

const testKeyID = "key-1"

func signES256(t *testing.T, priv *ecdsa.PrivateKey, kid string, payload []byte) []byte {
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

// rawSign1 builds a tagged COSE_Sign1 with arbitrary protected headers and a dummy signature.
func rawSign1(t *testing.T, protected map[int64]interface{}, payload []byte) []byte {
	t.Helper()

	protectedBytes, err := cbor.Marshal(protected)
	require.NoError(t, err)

	raw, err := cbor.Marshal(cbor.Tag{
		Number:  18,
		Content: []interface{}{protectedBytes, map[interface{}]interface{}{}, payload, make([]byte, 64)},
	})
	require.NoError(t, err)

	return raw
}

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return priv
}

func TestDeserialize(t *testing.T) {
	t.Run("tagged message", func(t *testing.T) {
		priv := newKey(t)

		s, err := Deserialize(signES256(t, priv, testKeyID, []byte("claims")))
		require.NoError(t, err)

		alg, err := s.Algorithm()
		require.NoError(t, err)
		require.Equal(t, nzcp.AlgorithmES256, alg)

		kid, err := s.KeyID()
		require.NoError(t, err)
		require.Equal(t, testKeyID, kid)

		require.Equal(t, []byte("claims"), s.Payload())
	})

	t.Run("untagged message", func(t *testing.T) {
		priv := newKey(t)
		tagged := signES256(t, priv, testKeyID, []byte("claims"))

		// 0xd2 is the single byte encoding of tag 18.
		require.Equal(t, byte(0xd2), tagged[0])

		s, err := Deserialize(tagged[1:])
		require.NoError(t, err)
		require.Equal(t, []byte("claims"), s.Payload())
		require.NoError(t, s.Verify(&priv.PublicKey))
	})

	t.Run("garbage", func(t *testing.T) {
		s, err := Deserialize([]byte("not cbor at all"))
		require.Nil(t, s)
		require.Error(t, err)

		kind, ok := nzcp.KindOf(err)
		require.True(t, ok)
		require.Equal(t, nzcp.ParseErrorKind, kind)
	})

	t.Run("wrong cbor shape", func(t *testing.T) {
		raw, err := cbor.Marshal(map[string]string{"a": "b"})
		require.NoError(t, err)

		_, err = Deserialize(raw)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid COSE_Sign1 structure")
	})
}

func TestHeaders(t *testing.T) {
	t.Run("missing kid", func(t *testing.T) {
		s, err := Deserialize(signES256(t, newKey(t), "", []byte("claims")))
		require.NoError(t, err)

		_, err = s.KeyID()
		require.EqualError(t, err, "protected header kid (4) missing")
	})

	t.Run("missing alg", func(t *testing.T) {
		s, err := Deserialize(rawSign1(t, map[int64]interface{}{4: []byte(testKeyID)}, []byte("claims")))
		require.NoError(t, err)

		_, err = s.Algorithm()
		require.EqualError(t, err, "protected header alg (1) missing")

		kid, err := s.KeyID()
		require.NoError(t, err)
		require.Equal(t, testKeyID, kid)
	})

	t.Run("other algorithm is reported as advertised", func(t *testing.T) {
		s, err := Deserialize(rawSign1(t, map[int64]interface{}{1: -8, 4: []byte(testKeyID)}, []byte("claims")))
		require.NoError(t, err)

		alg, err := s.Algorithm()
		require.NoError(t, err)
		require.Equal(t, int64(-8), alg)
	})

	require.Equal(t, "alg", HeaderAlgorithm.String())
	require.Equal(t, "kid", HeaderKeyID.String())
	require.Equal(t, "label(33)", HeaderLabel(33).String())
}

func TestVerify(t *testing.T) {
	priv := newKey(t)

	s, err := Deserialize(signES256(t, priv, testKeyID, []byte("claims")))
	require.NoError(t, err)

	t.Run("matching key", func(t *testing.T) {
		require.NoError(t, s.Verify(&priv.PublicKey))
	})

	t.Run("other key", func(t *testing.T) {
		err := s.Verify(&newKey(t).PublicKey)
		require.Error(t, err)

		kind, ok := nzcp.KindOf(err)
		require.True(t, ok)
		require.Equal(t, nzcp.SignatureErrorKind, kind)
	})

	t.Run("nil key", func(t *testing.T) {
		err := s.Verify(nil)
		require.EqualError(t, err, "no verification key")
	})

	t.Run("tampered payload", func(t *testing.T) {
		tampered, err := Deserialize(signES256(t, priv, testKeyID, []byte("claims")))
		require.NoError(t, err)

		tampered.msg.Payload = []byte("forged")

		err = tampered.Verify(&priv.PublicKey)
		require.EqualError(t, err, "signature verification failed")
	})

	t.Run("advertised algorithm other than ES256 is never verified", func(t *testing.T) {
		other, err := Deserialize(rawSign1(t, map[int64]interface{}{1: -35, 4: []byte(testKeyID)}, []byte("claims")))
		require.NoError(t, err)

		err = other.Verify(&priv.PublicKey)
		require.Error(t, err)

		kind, _ := nzcp.KindOf(err)
		require.Equal(t, nzcp.SignatureErrorKind, kind)
	})
}
