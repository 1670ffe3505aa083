/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

const maxDocumentSize = 1 << 20

// ResolveKey returns the verification key referenced by issuer#keyID.
func (r *Resolver) ResolveKey(ctx context.Context, issuer, keyID string) (*PublicKey, error) {
	host, err := hostFromIssuer(issuer)
	if err != nil {
		return nil, err
	}

	doc, err := r.document(ctx, host)
	if err != nil {
		return nil, err
	}

	ref := keyReference(issuer, keyID)

	vm, err := findVerificationMethod(doc, ref)
	if err != nil {
		return nil, err
	}

	key, err := importKey(vm.PublicKeyJwk)
	if err != nil {
		return nil, err
	}

	return &PublicKey{KeyID: ref, Key: key}, nil
}

// document returns the DID document for host, from cache when present.
func (r *Resolver) document(ctx context.Context, host string) (interface{}, error) {
	if r.cache != nil {
		if doc, ok := r.cache.Get(host); ok {
			logger.Debugf("did document for %s served from cache", host)

			return doc, nil
		}
	}

	doc, err := r.fetch(ctx, host)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Set(host, doc)
	}

	return doc, nil
}

func (r *Resolver) fetch(ctx context.Context, host string) (map[string]interface{}, error) {
	address := documentURL(host)

	logger.Debugf("fetching did document %s", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, nzcp.NewNetworkError(0, "failed to create did document request", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, nzcp.NewNetworkError(0, "https request failed", err)
	}

	defer closeResponseBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, nzcp.NewNetworkError(resp.StatusCode,
			fmt.Sprintf("https request returned response code %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, nzcp.NewNetworkError(resp.StatusCode, "failed to read did document", err)
	}

	var doc map[string]interface{}

	err = json.Unmarshal(body, &doc)
	if err != nil || doc == nil {
		return nil, nzcp.NewNetworkError(resp.StatusCode, "malformed did document", err)
	}

	return doc, nil
}

func closeResponseBody(respBody io.Closer) {
	e := respBody.Close()
	if e != nil {
		logger.Errorf("Failed to close response body: %v", e)
	}
}
