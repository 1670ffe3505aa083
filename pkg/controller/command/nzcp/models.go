/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package nzcp

import (
	"time"

	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

// VerifyRequest is the request model of the Verify command.
type VerifyRequest struct {
	// Token is the pass URI, NZCP:/1/<base32>.
	Token string `json:"token" validate:"required,max=8192"`

	// AllowTestIssuers accepts passes from the test issuers. The command must permit it.
	AllowTestIssuers bool `json:"allowTestIssuers,omitempty"`

	// Time overrides the reference time of the validity window.
	Time *time.Time `json:"time,omitempty"`
}

// VerifyResponse is the response model of the Verify command.
type VerifyResponse struct {
	*nzcp.Pass
}
