/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cose adapts a COSE_Sign1 envelope to the pass verification pipeline.
package cose

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/veraison/go-cose"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

// HeaderLabel is a protected header parameter read by the verifier.
type HeaderLabel int64

const (
	// HeaderAlgorithm is the signature algorithm label.
	HeaderAlgorithm HeaderLabel = HeaderLabel(cose.HeaderLabelAlgorithm)
	// HeaderKeyID is the key identifier label.
	HeaderKeyID HeaderLabel = HeaderLabel(cose.HeaderLabelKeyID)
)

// String returns the registered name of the label.
func (l HeaderLabel) String() string {
	switch l {
	case HeaderAlgorithm:
		return "alg"
	case HeaderKeyID:
		return "kid"
	default:
		return fmt.Sprintf("label(%d)", int64(l))
	}
}

// Sign1 is a decoded single-signer envelope.
type Sign1 struct {
	msg *cose.Sign1Message
}

// Deserialize decodes a tagged or untagged COSE_Sign1 structure.
func Deserialize(data []byte) (*Sign1, error) {
	msg := &cose.Sign1Message{}

	err := msg.UnmarshalCBOR(data)
	if err != nil {
		var untagged cose.UntaggedSign1Message

		if untaggedErr := untagged.UnmarshalCBOR(data); untaggedErr != nil {
			return nil, nzcp.NewParseError("invalid COSE_Sign1 structure", err)
		}

		tagged := cose.Sign1Message(untagged)
		msg = &tagged
	}

	return &Sign1{msg: msg}, nil
}

// Header returns the raw value of a protected header parameter.
func (s *Sign1) Header(label HeaderLabel) (interface{}, error) {
	for k, v := range s.msg.Headers.Protected {
		if n, ok := toInt64(k); ok && n == int64(label) {
			return v, nil
		}
	}

	return nil, nzcp.NewParseError(fmt.Sprintf("protected header %s (%d) missing", label, int64(label)), nil)
}

// Algorithm returns the advertised algorithm identifier. The value is untrusted.
func (s *Sign1) Algorithm() (int64, error) {
	v, err := s.Header(HeaderAlgorithm)
	if err != nil {
		return 0, err
	}

	alg, ok := toInt64(v)
	if !ok {
		return 0, nzcp.NewParseError(fmt.Sprintf("protected header alg has unexpected type %T", v), nil)
	}

	return alg, nil
}

// KeyID returns the key identifier as an opaque string.
func (s *Sign1) KeyID() (string, error) {
	v, err := s.Header(HeaderKeyID)
	if err != nil {
		return "", err
	}

	switch kid := v.(type) {
	case []byte:
		return string(kid), nil
	case string:
		return kid, nil
	default:
		return "", nzcp.NewParseError(fmt.Sprintf("protected header kid has unexpected type %T", v), nil)
	}
}

// Payload returns the signed payload bytes.
func (s *Sign1) Payload() []byte {
	return s.msg.Payload
}

// Verify checks the signature with ES256. The routine is fixed and never chosen from the header.
func (s *Sign1) Verify(key *ecdsa.PublicKey) error {
	if key == nil {
		return nzcp.NewSignatureError("no verification key", nil)
	}

	verifier, err := cose.NewVerifier(cose.AlgorithmES256, key)
	if err != nil {
		return nzcp.NewSignatureError("unusable verification key", err)
	}

	err = s.msg.Verify(nil, verifier)
	if err != nil {
		if errors.Is(err, cose.ErrVerification) {
			return nzcp.NewSignatureError("signature verification failed", nil)
		}

		return nzcp.NewSignatureError("signature verification failed", err)
	}

	return nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint64:
		if n > 1<<63-1 {
			return 0, false
		}

		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case cose.Algorithm:
		return int64(n), true
	default:
		return 0, false
	}
}
