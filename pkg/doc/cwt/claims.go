/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cwt extracts the CBOR Web Token claims carried by a pass.
package cwt

import (
	"fmt"
	"math"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

const (
	ctiLength = 16
	cborNull  = 0xf6
)

// NumericDate is a CWT date in seconds since the Unix epoch. Fractional values are truncated.
type NumericDate int64

// UnmarshalCBOR accepts an integer or floating point date.
func (d *NumericDate) UnmarshalCBOR(data []byte) error {
	var v interface{}

	if err := cbor.Unmarshal(data, &v); err != nil {
		return err
	}

	switch n := v.(type) {
	case uint64:
		if n > math.MaxInt64 {
			return fmt.Errorf("numeric date %d out of range", n)
		}

		*d = NumericDate(n)
	case int64:
		*d = NumericDate(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("numeric date %v out of range", n)
		}

		*d = NumericDate(n)
	default:
		return fmt.Errorf("numeric date has unexpected type %T", v)
	}

	return nil
}

// Time returns the date in UTC.
func (d NumericDate) Time() time.Time {
	return time.Unix(int64(d), 0).UTC()
}

type rawClaims struct {
	Issuer    *string         `cbor:"1,keyasint,omitempty"`
	Subject   *string         `cbor:"2,keyasint,omitempty"`
	Expiry    *NumericDate    `cbor:"4,keyasint,omitempty"`
	NotBefore *NumericDate    `cbor:"5,keyasint,omitempty"`
	CTI       []byte          `cbor:"7,keyasint,omitempty"`
	VC        cbor.RawMessage `cbor:"vc,omitempty"`
}

// ClaimsSet is the decoded claims map. Required claims are checked by their accessors.
type ClaimsSet struct {
	raw rawClaims
}

// ExtractClaims decodes a CWT claims map.
func ExtractClaims(payload []byte) (*ClaimsSet, error) {
	var raw rawClaims

	if err := cbor.Unmarshal(payload, &raw); err != nil {
		return nil, nzcp.NewParseError("invalid CWT claims", err)
	}

	return &ClaimsSet{raw: raw}, nil
}

// Issuer returns the iss claim.
func (c *ClaimsSet) Issuer() (string, error) {
	if c.raw.Issuer == nil {
		return "", nzcp.NewParseError("missing issuer", nil)
	}

	return *c.raw.Issuer, nil
}

// Subject returns the optional sub claim.
func (c *ClaimsSet) Subject() (string, bool) {
	if c.raw.Subject == nil {
		return "", false
	}

	return *c.raw.Subject, true
}

// NotBefore returns the nbf claim.
func (c *ClaimsSet) NotBefore() (time.Time, error) {
	if c.raw.NotBefore == nil {
		return time.Time{}, nzcp.NewParseError("missing not before", nil)
	}

	return c.raw.NotBefore.Time(), nil
}

// Expiry returns the exp claim.
func (c *ClaimsSet) Expiry() (time.Time, error) {
	if c.raw.Expiry == nil {
		return time.Time{}, nzcp.NewParseError("missing expiry", nil)
	}

	return c.raw.Expiry.Time(), nil
}

// JTI renders the cti claim as a UUID URN. Only a 16 byte cti yields a value.
func (c *ClaimsSet) JTI() (string, bool) {
	if len(c.raw.CTI) != ctiLength {
		return "", false
	}

	id, err := uuid.FromBytes(c.raw.CTI)
	if err != nil {
		return "", false
	}

	return id.URN(), true
}

// HasVC reports whether a non-null vc claim is present.
func (c *ClaimsSet) HasVC() bool {
	return len(c.raw.VC) > 0 && !(len(c.raw.VC) == 1 && c.raw.VC[0] == cborNull)
}
