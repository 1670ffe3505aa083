/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/json"

	"github.com/go-jose/go-jose/v3"
	"github.com/mitchellh/mapstructure"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

type verificationMethod struct {
	ID           string                 `mapstructure:"id"`
	Controller   string                 `mapstructure:"controller"`
	Type         string                 `mapstructure:"type"`
	PublicKeyJwk map[string]interface{} `mapstructure:"publicKeyJwk"`
}

type didDocument struct {
	ID                 string               `mapstructure:"id"`
	VerificationMethod []verificationMethod `mapstructure:"verificationMethod"`
}

func findVerificationMethod(raw interface{}, ref string) (*verificationMethod, error) {
	doc := &didDocument{}

	err := mapstructure.Decode(raw, doc)
	if err != nil {
		return nil, nzcp.NewParseError("invalid did document", err)
	}

	for i := range doc.VerificationMethod {
		if doc.VerificationMethod[i].ID == ref {
			return &doc.VerificationMethod[i], nil
		}
	}

	return nil, nzcp.NewParseError("no matching verification method found in did document", nil)
}

// importKey converts a JWK into a P-256 public key.
func importKey(raw map[string]interface{}) (*ecdsa.PublicKey, error) {
	if raw == nil {
		return nil, nzcp.NewParseError("verification method has no publicKeyJwk", nil)
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, nzcp.NewParseError("invalid publicKeyJwk", err)
	}

	jwk := &jose.JSONWebKey{}

	err = jwk.UnmarshalJSON(b)
	if err != nil {
		return nil, nzcp.NewParseError("invalid publicKeyJwk", err)
	}

	key, ok := jwk.Key.(*ecdsa.PublicKey)
	if !ok {
		return nil, nzcp.NewParseError("publicKeyJwk must be a public EC key", nil)
	}

	if key.Curve != elliptic.P256() {
		return nil, nzcp.NewParseError("publicKeyJwk must use curve P-256", nil)
	}

	return key, nil
}
