/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package nzcp

import (
	"net/http"

	"github.com/nzcp/nzcp-go/pkg/controller/command/nzcp"
	"github.com/nzcp/nzcp-go/pkg/controller/internal/cmdutil"
	"github.com/nzcp/nzcp-go/pkg/controller/rest"
)

const (
	nzcpOperationID = "/nzcp"
	verifyPath      = nzcpOperationID + "/verify"
)

// Operation contains the pass verification operations provided by controller REST API.
type Operation struct {
	handlers []rest.Handler
	command  *nzcp.Command
}

// New returns new nzcp operations rest client instance.
func New(opts ...nzcp.Opt) *Operation {
	o := &Operation{command: nzcp.New(opts...)}
	o.registerHandler()

	return o
}

// GetRESTHandlers get all controller API handler available for this service.
func (o *Operation) GetRESTHandlers() []rest.Handler {
	return o.handlers
}

// registerHandler register handlers to be exposed from this service as REST API endpoints.
func (o *Operation) registerHandler() {
	o.handlers = []rest.Handler{
		cmdutil.NewHTTPHandler(verifyPath, http.MethodPost, o.Verify),
	}
}

// Verify swagger:route POST /nzcp/verify nzcp verifyPassReq
//
// Verifies an NZ Covid Pass.
//
// Responses:
//
//	default: genericError
//	    200: verifyPassRes
func (o *Operation) Verify(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.Verify, rw, req.Body)
}
