/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cwt

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

// Credential is the verifiable credential embedded under the vc claim.
type Credential struct {
	Context           []interface{}      `cbor:"@context"`
	Type              []interface{}      `cbor:"type"`
	Version           string             `cbor:"version"`
	CredentialSubject *CredentialSubject `cbor:"credentialSubject"`
}

// CredentialSubject holds the holder's identity fields.
type CredentialSubject struct {
	GivenName  *string `cbor:"givenName"`
	FamilyName *string `cbor:"familyName"`
	DOB        *string `cbor:"dob"`
}

// ExtractVC decodes the vc claim. It returns nil, nil when the claim is absent.
func ExtractVC(claims *ClaimsSet) (*Credential, error) {
	if claims == nil || !claims.HasVC() {
		return nil, nil
	}

	vc := &Credential{}

	if err := cbor.Unmarshal(claims.raw.VC, vc); err != nil {
		return nil, nzcp.NewParseError("invalid vc claim", err)
	}

	return vc, nil
}

// FirstContext returns the first @context entry when it is a string.
func (c *Credential) FirstContext() (string, bool) {
	if len(c.Context) == 0 {
		return "", false
	}

	s, ok := c.Context[0].(string)

	return s, ok
}

// Types returns the type entries, or false when any entry is not a string.
func (c *Credential) Types() ([]string, bool) {
	types := make([]string, 0, len(c.Type))

	for _, t := range c.Type {
		s, ok := t.(string)
		if !ok {
			return nil, false
		}

		types = append(types, s)
	}

	return types, true
}
