/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nzcp/nzcp-go/internal/nzcptest"
	"github.com/nzcp/nzcp-go/pkg/cache/mem"
	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

const testHost = "nzcp.covid19.health.nz"

func requireKind(t *testing.T, err error, want nzcp.Kind) {
	t.Helper()

	require.Error(t, err)

	kind, ok := nzcp.KindOf(err)
	require.True(t, ok, err.Error())
	require.Equal(t, want, kind, err.Error())
}

func newTLSServer(t *testing.T, body func() []byte, status int) (*httptest.Server, string, *int32) {
	t.Helper()

	var hits int32

	s := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)

		if r.URL.Path != defaultPath {
			http.NotFound(w, r)

			return
		}

		w.WriteHeader(status)
		_, err := w.Write(body())
		require.NoError(t, err)
	}))
	t.Cleanup(s.Close)

	issuer := prefix + url.QueryEscape(strings.TrimPrefix(s.URL, "https://"))

	return s, issuer, &hits
}

func TestResolveKey(t *testing.T) {
	priv := nzcptest.NewKey(t)

	t.Run("resolve over https and serve later calls from cache", func(t *testing.T) {
		var issuer string

		s, issuer, hits := newTLSServer(t, func() []byte {
			return nzcptest.DIDDocumentJSON(t, issuer, nzcptest.KeyID, &priv.PublicKey)
		}, http.StatusOK)

		c := mem.New()
		r := New(WithHTTPClient(s.Client()), WithCache(c))

		key, err := r.ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		require.NoError(t, err)
		require.Equal(t, issuer+"#"+nzcptest.KeyID, key.KeyID)
		require.True(t, priv.PublicKey.Equal(key.Key))
		require.Equal(t, int32(1), atomic.LoadInt32(hits))

		host, err := hostFromIssuer(issuer)
		require.NoError(t, err)

		_, ok := c.Get(host)
		require.True(t, ok)

		key, err = r.ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		require.NoError(t, err)
		require.True(t, priv.PublicKey.Equal(key.Key))
		require.Equal(t, int32(1), atomic.LoadInt32(hits))
	})

	t.Run("without a cache every call fetches", func(t *testing.T) {
		var issuer string

		s, issuer, hits := newTLSServer(t, func() []byte {
			return nzcptest.DIDDocumentJSON(t, issuer, nzcptest.KeyID, &priv.PublicKey)
		}, http.StatusOK)

		r := New(WithHTTPClient(s.Client()), WithCache(nil))

		for i := 1; i <= 2; i++ {
			key, err := r.ResolveKey(context.Background(), issuer, nzcptest.KeyID)
			require.NoError(t, err)
			require.True(t, priv.PublicKey.Equal(key.Key))
			require.Equal(t, int32(i), atomic.LoadInt32(hits))
		}
	})

	t.Run("default client verifies the server certificate", func(t *testing.T) {
		_, issuer, hits := newTLSServer(t, func() []byte { return []byte("{}") }, http.StatusOK)

		_, err := New().ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		requireKind(t, err, nzcp.NetworkErrorKind)

		var netErr *nzcp.NetworkError
		require.True(t, errors.As(err, &netErr))
		require.Equal(t, 0, netErr.StatusCode)
		require.Equal(t, int32(0), atomic.LoadInt32(hits))
	})

	t.Run("non 200 response is not cached", func(t *testing.T) {
		s, issuer, hits := newTLSServer(t, func() []byte { return []byte("gone") }, http.StatusNotFound)

		c := mem.New()
		r := New(WithHTTPClient(s.Client()), WithCache(c))

		_, err := r.ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		requireKind(t, err, nzcp.NetworkErrorKind)
		require.EqualError(t, err, "https request returned response code 404")

		var netErr *nzcp.NetworkError
		require.True(t, errors.As(err, &netErr))
		require.Equal(t, http.StatusNotFound, netErr.StatusCode)
		require.Equal(t, 0, c.Len())

		_, err = r.ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		requireKind(t, err, nzcp.NetworkErrorKind)
		require.Equal(t, int32(2), atomic.LoadInt32(hits))
	})

	t.Run("malformed document is not cached", func(t *testing.T) {
		s, issuer, _ := newTLSServer(t, func() []byte { return []byte("{not json") }, http.StatusOK)

		c := mem.New()

		_, err := New(WithHTTPClient(s.Client()), WithCache(c)).ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		requireKind(t, err, nzcp.NetworkErrorKind)
		require.Contains(t, err.Error(), "malformed did document")
		require.Equal(t, 0, c.Len())
	})

	t.Run("canceled context", func(t *testing.T) {
		s, issuer, _ := newTLSServer(t, func() []byte { return []byte("{}") }, http.StatusOK)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(WithHTTPClient(s.Client())).ResolveKey(ctx, issuer, nzcptest.KeyID)
		requireKind(t, err, nzcp.NetworkErrorKind)
		require.True(t, errors.Is(err, context.Canceled))
	})
}

func TestResolveKey_Document(t *testing.T) {
	priv := nzcptest.NewKey(t)
	issuer := nzcptest.TestIssuer

	t.Run("request shape", func(t *testing.T) {
		client := nzcptest.NewDocumentClient(testHost, nzcptest.DIDDocumentJSON(t, issuer, nzcptest.KeyID, &priv.PublicKey))

		_, err := New(WithHTTPClient(client)).ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		require.NoError(t, err)

		reqs := client.Requests()
		require.Len(t, reqs, 1)
		require.Equal(t, http.MethodGet, reqs[0].Method)
		require.Equal(t, "https://"+testHost+"/.well-known/did.json", reqs[0].URL.String())
		require.Equal(t, "application/json", reqs[0].Header.Get("Accept"))
	})

	t.Run("transport failure", func(t *testing.T) {
		client := &nzcptest.DocumentClient{Err: errors.New("connection refused")}

		_, err := New(WithHTTPClient(client)).ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		requireKind(t, err, nzcp.NetworkErrorKind)
		require.Contains(t, err.Error(), "connection refused")
	})

	t.Run("key id match is exact and case sensitive", func(t *testing.T) {
		client := nzcptest.NewDocumentClient(testHost, nzcptest.DIDDocumentJSON(t, issuer, nzcptest.KeyID, &priv.PublicKey))
		r := New(WithHTTPClient(client), WithCache(mem.New()))

		for _, kid := range []string{"KEY-1", "key-2", "key-1 ", ""} {
			_, err := r.ResolveKey(context.Background(), issuer, kid)
			requireKind(t, err, nzcp.ParseErrorKind)
			require.EqualError(t, err, "no matching verification method found in did document")
		}

		require.Equal(t, 1, client.Count())
	})

	t.Run("document published under another issuer", func(t *testing.T) {
		doc := nzcptest.DIDDocumentJSON(t, "did:web:nzcp.identity.health.nz", nzcptest.KeyID, &priv.PublicKey)
		client := nzcptest.NewDocumentClient(testHost, doc)

		_, err := New(WithHTTPClient(client)).ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		requireKind(t, err, nzcp.ParseErrorKind)
	})

	t.Run("cached value is used without network", func(t *testing.T) {
		c := mem.New()
		c.Set(testHost, nzcptest.DIDDocument(t, issuer, nzcptest.KeyID, &priv.PublicKey))

		client := &nzcptest.DocumentClient{Err: errors.New("offline")}

		key, err := New(WithHTTPClient(client), WithCache(c)).ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		require.NoError(t, err)
		require.True(t, priv.PublicKey.Equal(key.Key))
		require.Equal(t, 0, client.Count())
	})

	t.Run("cached value of wrong shape", func(t *testing.T) {
		c := mem.New()
		c.Set(testHost, "not a document")

		_, err := New(WithCache(c)).ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		requireKind(t, err, nzcp.ParseErrorKind)
	})

	t.Run("unsupported keys", func(t *testing.T) {
		p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
		require.NoError(t, err)

		privateJWK := nzcptest.JWK(t, &priv.PublicKey)
		privateJWK["d"] = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAE"

		for name, jwk := range map[string]map[string]interface{}{
			"P-384":       nzcptest.JWK(t, &p384.PublicKey),
			"private key": privateJWK,
			"octet key":   {"kty": "oct", "k": "c2VjcmV0"},
			"garbage":     {"kty": "EC", "crv": "P-256", "x": "!!", "y": "!!"},
		} {
			doc := nzcptest.DIDDocument(t, issuer, nzcptest.KeyID, &priv.PublicKey)
			vm := doc["verificationMethod"].([]interface{})[0].(map[string]interface{})
			vm["publicKeyJwk"] = jwk

			c := mem.New()
			c.Set(testHost, doc)

			_, err := New(WithCache(c)).ResolveKey(context.Background(), issuer, nzcptest.KeyID)
			requireKind(t, err, nzcp.ParseErrorKind)
			require.Contains(t, err.Error(), "publicKeyJwk", name)
		}
	})

	t.Run("missing publicKeyJwk", func(t *testing.T) {
		doc := nzcptest.DIDDocument(t, issuer, nzcptest.KeyID, &priv.PublicKey)
		vm := doc["verificationMethod"].([]interface{})[0].(map[string]interface{})
		delete(vm, "publicKeyJwk")

		c := mem.New()
		c.Set(testHost, doc)

		_, err := New(WithCache(c)).ResolveKey(context.Background(), issuer, nzcptest.KeyID)
		require.EqualError(t, err, "verification method has no publicKeyJwk")
	})
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient(0)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	require.Equal(t, uint16(tls.VersionTLS12), transport.TLSClientConfig.MinVersion)
	require.False(t, transport.TLSClientConfig.InsecureSkipVerify)
}
