/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verifier verifies NZ Covid Pass tokens.
//
// Verification is a fixed, fail-fast sequence of checks. The first failed check ends the run
// with a typed error from package nzcp, and a Pass is only built when every check succeeded.
package verifier

import (
	"context"

	"github.com/nzcp/nzcp-go/pkg/common/log"
	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
	"github.com/nzcp/nzcp-go/pkg/internal/logutil"
	"github.com/nzcp/nzcp-go/pkg/vdr/web"
)

const (
	logModule = "nzcp/verifier"
	component = "verifier"
)

var logger = log.New(logModule)

// KeyResolver returns the verification key for issuer#keyID.
type KeyResolver interface {
	ResolveKey(ctx context.Context, issuer, keyID string) (*web.PublicKey, error)
}

// Verifier runs verifications with shared options. It is safe for concurrent use.
type Verifier struct {
	opts     options
	resolver KeyResolver
}

// New creates a Verifier. Options given here apply to every call of Verify.
func New(opts ...Option) *Verifier {
	v := &Verifier{}
	v.opts.apply(opts)
	v.resolver = newResolver(&v.opts)

	return v
}

// Verify verifies token with the given options. It is one verification attempt.
func Verify(token string, opts ...Option) (*nzcp.Pass, error) {
	return New(opts...).Verify(token)
}

// Verify verifies token. Options given here override those of the Verifier for this call only.
func (v *Verifier) Verify(token string, opts ...Option) (*nzcp.Pass, error) {
	o := v.opts
	o.apply(opts)

	var override options
	override.apply(opts)

	resolver := v.resolver
	if override.cache != nil || override.httpClient != nil {
		resolver = newResolver(&o)
	}

	r := &run{
		token:    token,
		trusted:  trustedIssuers(o.allowTestIssuers),
		at:       o.referenceTime(),
		ctx:      o.context(),
		resolver: resolver,
	}

	return r.verify()
}

func newResolver(o *options) KeyResolver {
	return web.New(web.WithCache(o.cache), web.WithHTTPClient(o.httpClient))
}

func trustedIssuers(allowTest bool) []string {
	issuers := nzcp.TrustedIssuers()
	if allowTest {
		issuers = append(issuers, nzcp.TestTrustedIssuers()...)
	}

	return issuers
}

type step struct {
	name string
	fn   func() error
}

func (r *run) verify() (*nzcp.Pass, error) {
	steps := []step{
		{"parse", r.parse},
		{"deserialize", r.deserialize},
		{"algorithm", r.checkAlgorithm},
		{"issuer", r.checkIssuer},
		{"vc", r.checkVC},
		{"context", r.checkContext},
		{"type", r.checkType},
		{"notBefore", r.checkNotBefore},
		{"expiry", r.checkExpiry},
		{"jti", r.checkJTI},
		{"credentialSubject", r.checkSubject},
		{"resolveKey", r.resolveKey},
		{"signature", r.checkSignature},
	}

	for _, s := range steps {
		if err := s.fn(); err != nil {
			logutil.LogFailure(logger, component, s.name, err)

			return nil, err
		}

		logutil.LogDebug(logger, component, s.name, "passed")
	}

	return r.pass(), nil
}

func (r *run) pass() *nzcp.Pass {
	return &nzcp.Pass{
		GivenName:  r.givenName,
		FamilyName: r.familyName,
		DOB:        r.dob,
		Expiry:     r.expiry,
		NotBefore:  r.notBefore,
		JTI:        r.jti,
		Version:    r.vc.Version,
		Issuer:     r.issuer,
		KeyID:      r.keyID,
	}
}
