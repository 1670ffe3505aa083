/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"net/url"
	"strings"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

const defaultPath = "/.well-known/did.json"

// hostFromIssuer returns the host named by a did:web issuer: the text after the last colon, percent-decoded.
func hostFromIssuer(issuer string) (string, error) {
	if !strings.HasPrefix(issuer, prefix) {
		return "", nzcp.NewParseError("issuer is not a did:web identifier", nil)
	}

	encoded := issuer[strings.LastIndex(issuer, ":")+1:]

	host, err := url.PathUnescape(encoded)
	if err != nil {
		return "", nzcp.NewParseError("invalid did:web host", err)
	}

	if host == "" {
		return "", nzcp.NewParseError("invalid did:web host", nil)
	}

	return host, nil
}

func documentURL(host string) string {
	return "https://" + host + defaultPath
}

// keyReference joins issuer and key id into a verification method id.
func keyReference(issuer, keyID string) string {
	return issuer + "#" + keyID
}
