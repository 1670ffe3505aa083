/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package web resolves pass verification keys from did:web DID documents.
package web

import (
	"crypto/ecdsa"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/nzcp/nzcp-go/pkg/common/log"
	"github.com/nzcp/nzcp-go/spi/cache"
)

const (
	namespace = "web"
	prefix    = "did:" + namespace + ":"

	logModule = "nzcp/vdr/web"
)

var logger = log.New(logModule)

// HTTPClient performs the DID document request.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// PublicKey is a resolved verification key.
type PublicKey struct {
	// KeyID is the full key reference, issuer#kid.
	KeyID string
	Key   *ecdsa.PublicKey
}

// Opt configures Resolver.
type Opt func(r *Resolver)

// WithCache sets the document cache. Without it, every resolution fetches the document.
func WithCache(c cache.Cache) Opt {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
		}
	}
}

// WithHTTPClient sets the client used to fetch DID documents.
func WithHTTPClient(client HTTPClient) Opt {
	return func(r *Resolver) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// Resolver maps an issuer and key id to a P-256 public key.
type Resolver struct {
	cache      cache.Cache
	httpClient HTTPClient
}

// New creates a Resolver.
func New(opts ...Opt) *Resolver {
	r := &Resolver{}

	for _, opt := range opts {
		opt(r)
	}

	if r.httpClient == nil {
		r.httpClient = NewHTTPClient(0)
	}

	return r
}

// NewHTTPClient returns a client that requires TLS 1.2 or later and always verifies the peer.
// A zero timeout means no timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}
