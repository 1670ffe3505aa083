/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package nzcp holds the NZ Covid Pass constants, the verified pass model and the error taxonomy
// shared by the decoding, resolving and verifying packages.
package nzcp

import (
	"encoding/json"
	"time"
)

const (
	// Scheme is the URI scheme of a pass token.
	Scheme = "NZCP"
	// VersionIdentifier is the only supported token version.
	VersionIdentifier = "1"

	// AlgorithmES256 is the COSE identifier of ECDSA w/ SHA-256, the only accepted signing algorithm.
	AlgorithmES256 int64 = -7

	// CredentialsContextV1 must be the first entry of the credential @context.
	CredentialsContextV1 = "https://www.w3.org/2018/credentials/v1"

	// TypeVerifiableCredential and TypePublicCovidPass form the required credential type, in this order.
	TypeVerifiableCredential = "VerifiableCredential"
	TypePublicCovidPass      = "PublicCovidPass"

	// DateLayout is the layout of the dob claim.
	DateLayout = "2006-01-02"
)

// TrustedIssuers returns the production issuer allow-list.
func TrustedIssuers() []string {
	return []string{"did:web:nzcp.identity.health.nz"}
}

// TestTrustedIssuers returns the issuers that are accepted only when test issuers are allowed.
func TestTrustedIssuers() []string {
	return []string{"did:web:nzcp.covid19.health.nz"}
}

// CredentialType returns the exact credential type sequence a pass must carry.
func CredentialType() []string {
	return []string{TypeVerifiableCredential, TypePublicCovidPass}
}

// Pass is a fully verified NZ Covid Pass. It is only ever built after every check has passed.
type Pass struct {
	GivenName  string
	FamilyName *string
	DOB        time.Time
	Expiry     time.Time
	NotBefore  time.Time
	JTI        string
	Version    string
	Issuer     string
	KeyID      string
}

// DOBString returns the date of birth as YYYY-MM-DD.
func (p *Pass) DOBString() string {
	return p.DOB.Format(DateLayout)
}

type rawPass struct {
	GivenName  string    `json:"givenName"`
	FamilyName *string   `json:"familyName,omitempty"`
	DOB        string    `json:"dob"`
	Expiry     time.Time `json:"expiry"`
	NotBefore  time.Time `json:"notBefore"`
	JTI        string    `json:"jti"`
	Version    string    `json:"version"`
	Issuer     string    `json:"issuer"`
	KeyID      string    `json:"keyId"`
}

// MarshalJSON renders the pass with the date of birth as YYYY-MM-DD.
func (p *Pass) MarshalJSON() ([]byte, error) {
	return json.Marshal(&rawPass{
		GivenName:  p.GivenName,
		FamilyName: p.FamilyName,
		DOB:        p.DOB.Format(DateLayout),
		Expiry:     p.Expiry,
		NotBefore:  p.NotBefore,
		JTI:        p.JTI,
		Version:    p.Version,
		Issuer:     p.Issuer,
		KeyID:      p.KeyID,
	})
}

// UnmarshalJSON reads a pass produced by MarshalJSON.
func (p *Pass) UnmarshalJSON(data []byte) error {
	raw := &rawPass{}

	if err := json.Unmarshal(data, raw); err != nil {
		return err
	}

	dob, err := time.Parse(DateLayout, raw.DOB)
	if err != nil {
		return err
	}

	*p = Pass{
		GivenName:  raw.GivenName,
		FamilyName: raw.FamilyName,
		DOB:        dob,
		Expiry:     raw.Expiry,
		NotBefore:  raw.NotBefore,
		JTI:        raw.JTI,
		Version:    raw.Version,
		Issuer:     raw.Issuer,
		KeyID:      raw.KeyID,
	}

	return nil
}
