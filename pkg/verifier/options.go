/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"context"
	"time"

	"github.com/nzcp/nzcp-go/pkg/vdr/web"
	"github.com/nzcp/nzcp-go/spi/cache"
)

// Option configures a verification.
type Option func(opts *options)

type options struct {
	allowTestIssuers bool
	at               time.Time
	cache            cache.Cache
	httpClient       web.HTTPClient
	ctx              context.Context
}

// WithTestIssuers adds the test issuers to the trusted set.
func WithTestIssuers(allow bool) Option {
	return func(opts *options) {
		opts.allowTestIssuers = allow
	}
}

// WithTime sets the reference time used for the validity window. It defaults to the time of the call.
func WithTime(t time.Time) Option {
	return func(opts *options) {
		opts.at = t
	}
}

// WithCache sets the DID document cache.
func WithCache(c cache.Cache) Option {
	return func(opts *options) {
		opts.cache = c
	}
}

// WithHTTPClient sets the client used to fetch DID documents.
func WithHTTPClient(client web.HTTPClient) Option {
	return func(opts *options) {
		opts.httpClient = client
	}
}

// WithContext sets the context of the DID document fetch.
func WithContext(ctx context.Context) Option {
	return func(opts *options) {
		opts.ctx = ctx
	}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

func (o *options) referenceTime() time.Time {
	if o.at.IsZero() {
		return time.Now()
	}

	return o.at
}

func (o *options) context() context.Context {
	if o.ctx == nil {
		return context.Background()
	}

	return o.ctx
}
