/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"context"
	"time"

	"golang.org/x/exp/slices"

	"github.com/nzcp/nzcp-go/pkg/doc/cose"
	"github.com/nzcp/nzcp-go/pkg/doc/cwt"
	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
	"github.com/nzcp/nzcp-go/pkg/doc/nzcp/token"
	"github.com/nzcp/nzcp-go/pkg/vdr/web"
)

// run is a single verification attempt. Each step stores what later steps need.
type run struct {
	token    string
	trusted  []string
	at       time.Time
	ctx      context.Context
	resolver KeyResolver

	raw        []byte
	sign1      *cose.Sign1
	claims     *cwt.ClaimsSet
	issuer     string
	vc         *cwt.Credential
	notBefore  time.Time
	expiry     time.Time
	jti        string
	givenName  string
	familyName *string
	dob        time.Time
	keyID      string
	key        *web.PublicKey
}

func (r *run) parse() error {
	raw, err := token.Decode(r.token)
	if err != nil {
		return err
	}

	r.raw = raw

	return nil
}

func (r *run) deserialize() error {
	sign1, err := cose.Deserialize(r.raw)
	if err != nil {
		return err
	}

	r.sign1 = sign1

	return nil
}

func (r *run) checkAlgorithm() error {
	alg, err := r.sign1.Algorithm()
	if err != nil {
		return err
	}

	if alg != nzcp.AlgorithmES256 {
		return nzcp.NewParseError("ALG must be ES256 (-7)", nil)
	}

	return nil
}

func (r *run) checkIssuer() error {
	claims, err := cwt.ExtractClaims(r.sign1.Payload())
	if err != nil {
		return err
	}

	r.claims = claims

	issuer, err := claims.Issuer()
	if err != nil {
		return err
	}

	if !slices.Contains(r.trusted, issuer) {
		return nzcp.NewParseError("invalid issuer", nil)
	}

	r.issuer = issuer

	return nil
}

func (r *run) checkVC() error {
	vc, err := cwt.ExtractVC(r.claims)
	if err != nil {
		return err
	}

	if vc == nil {
		return nzcp.NewParseError("no vc claim", nil)
	}

	r.vc = vc

	return nil
}

func (r *run) checkContext() error {
	ctx, ok := r.vc.FirstContext()
	if !ok || ctx != nzcp.CredentialsContextV1 {
		return nzcp.NewParseError("invalid vc @context", nil)
	}

	return nil
}

func (r *run) checkType() error {
	types, ok := r.vc.Types()
	if !ok || !slices.Equal(types, nzcp.CredentialType()) {
		return nzcp.NewParseError("invalid vc type", nil)
	}

	return nil
}

func (r *run) checkNotBefore() error {
	nbf, err := r.claims.NotBefore()
	if err != nil {
		return err
	}

	// Claims carry whole seconds, so the reference time is compared at second precision.
	if nbf.Unix() > r.at.Unix() {
		return nzcp.NewNotYetValidError("pass is not yet valid, valid from " + nbf.Format(time.RFC3339))
	}

	r.notBefore = nbf

	return nil
}

func (r *run) checkExpiry() error {
	exp, err := r.claims.Expiry()
	if err != nil {
		return err
	}

	if exp.Unix() < r.at.Unix() {
		return nzcp.NewExpiredError("pass expired at " + exp.Format(time.RFC3339))
	}

	r.expiry = exp

	return nil
}

func (r *run) checkJTI() error {
	jti, ok := r.claims.JTI()
	if !ok {
		return nzcp.NewParseError("invalid jti", nil)
	}

	r.jti = jti

	return nil
}

func (r *run) checkSubject() error {
	subject := r.vc.CredentialSubject
	if subject == nil {
		return nzcp.NewParseError("credentialSubject missing", nil)
	}

	if subject.GivenName == nil {
		return nzcp.NewParseError("givenName missing", nil)
	}

	if subject.DOB == nil {
		return nzcp.NewParseError("dob missing", nil)
	}

	dob, err := time.Parse(nzcp.DateLayout, *subject.DOB)
	if err != nil {
		return nzcp.NewParseError("invalid dob", err)
	}

	r.givenName = *subject.GivenName
	r.familyName = subject.FamilyName
	r.dob = dob

	return nil
}

func (r *run) resolveKey() error {
	kid, err := r.sign1.KeyID()
	if err != nil {
		return err
	}

	key, err := r.resolver.ResolveKey(r.ctx, r.issuer, kid)
	if err != nil {
		return err
	}

	r.keyID = kid
	r.key = key

	return nil
}

func (r *run) checkSignature() error {
	return r.sign1.Verify(r.key.Key)
}
