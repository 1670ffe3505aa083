/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package nzcptest

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// DocumentClient serves DID documents from memory and counts requests.
type DocumentClient struct {
	// Documents maps a request URL to a response body.
	Documents map[string][]byte
	// StatusCode overrides the response status when non-zero.
	StatusCode int
	// Err is returned instead of a response when set.
	Err error

	mu       sync.Mutex
	requests []*http.Request
}

// NewDocumentClient serves doc at https://host/.well-known/did.json.
func NewDocumentClient(host string, doc []byte) *DocumentClient {
	return &DocumentClient{
		Documents: map[string][]byte{"https://" + host + "/.well-known/did.json": doc},
	}
}

// Do records the request and answers it.
func (c *DocumentClient) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	status := c.StatusCode

	body, ok := c.Documents[req.URL.String()]

	switch {
	case status != 0:
	case ok:
		status = http.StatusOK
	default:
		status = http.StatusNotFound
	}

	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}

// Count returns the number of requests received.
func (c *DocumentClient) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.requests)
}

// Requests returns the received requests.
func (c *DocumentClient) Requests() []*http.Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]*http.Request(nil), c.requests...)
}
