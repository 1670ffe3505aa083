/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package nzcp

import (
	"github.com/nzcp/nzcp-go/pkg/controller/command/nzcp"
)

// verifyPassReq model
//
// This is used to verify an NZ Covid Pass.
//
// swagger:parameters verifyPassReq
type verifyPassReq struct { // nolint: unused,deadcode
	// Params for verifying the pass
	//
	// in: body
	Params nzcp.VerifyRequest
}

// verifyPassRes model
//
// The verified pass.
//
// swagger:response verifyPassRes
type verifyPassRes struct { // nolint: unused,deadcode
	// in: body
	nzcp.VerifyResponse
}
