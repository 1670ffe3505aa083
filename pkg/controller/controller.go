/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package controller

import (
	"github.com/nzcp/nzcp-go/pkg/controller/command"
	nzcpcmd "github.com/nzcp/nzcp-go/pkg/controller/command/nzcp"
	"github.com/nzcp/nzcp-go/pkg/controller/rest"
	nzcprest "github.com/nzcp/nzcp-go/pkg/controller/rest/nzcp"
	"github.com/nzcp/nzcp-go/pkg/vdr/web"
	"github.com/nzcp/nzcp-go/pkg/verifier"
	"github.com/nzcp/nzcp-go/spi/cache"
)

type allOpts struct {
	allowTestIssuers bool
	cache            cache.Cache
	httpClient       web.HTTPClient
	verifierOpts     []verifier.Option
}

// Opt represents a controller option.
type Opt func(opts *allOpts)

// WithTestIssuers is an option allowing requests to accept passes from the test issuers.
func WithTestIssuers(allow bool) Opt {
	return func(opts *allOpts) {
		opts.allowTestIssuers = allow
	}
}

// WithCache is an option for sharing a DID document cache between verifications.
func WithCache(c cache.Cache) Opt {
	return func(opts *allOpts) {
		opts.cache = c
	}
}

// WithHTTPClient is an option for setting the client used to fetch DID documents.
func WithHTTPClient(client web.HTTPClient) Opt {
	return func(opts *allOpts) {
		opts.httpClient = client
	}
}

// WithVerifierOptions is an option for passing further verifier options.
func WithVerifierOptions(opts ...verifier.Option) Opt {
	return func(o *allOpts) {
		o.verifierOpts = append(o.verifierOpts, opts...)
	}
}

func (o *allOpts) commandOpts() []nzcpcmd.Opt {
	verifierOpts := append([]verifier.Option{}, o.verifierOpts...)

	if o.cache != nil {
		verifierOpts = append(verifierOpts, verifier.WithCache(o.cache))
	}

	if o.httpClient != nil {
		verifierOpts = append(verifierOpts, verifier.WithHTTPClient(o.httpClient))
	}

	return []nzcpcmd.Opt{
		nzcpcmd.WithTestIssuers(o.allowTestIssuers),
		nzcpcmd.WithVerifierOptions(verifierOpts...),
	}
}

func applyOpts(opts []Opt) *allOpts {
	o := &allOpts{}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// GetRESTHandlers returns all REST handlers provided by controller.
func GetRESTHandlers(opts ...Opt) []rest.Handler {
	o := applyOpts(opts)

	// nzcp REST operation
	nzcpOp := nzcprest.New(o.commandOpts()...)

	var allHandlers []rest.Handler
	allHandlers = append(allHandlers, nzcpOp.GetRESTHandlers()...)

	return allHandlers
}

// GetCommandHandlers returns all command handlers provided by controller.
func GetCommandHandlers(opts ...Opt) []command.Handler {
	o := applyOpts(opts)

	// nzcp command operation
	nzcpCmd := nzcpcmd.New(o.commandOpts()...)

	var allHandlers []command.Handler
	allHandlers = append(allHandlers, nzcpCmd.GetHandlers()...)

	return allHandlers
}
