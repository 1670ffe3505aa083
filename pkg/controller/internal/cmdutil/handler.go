/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmdutil

import (
	"net/http"

	"github.com/nzcp/nzcp-go/pkg/controller/command"
)

// HTTPHandler binds an http.HandlerFunc to a REST path and method. It satisfies rest.Handler.
type HTTPHandler struct {
	path   string
	method string
	handle http.HandlerFunc
}

// NewHTTPHandler returns an HTTPHandler serving handle at method and path.
func NewHTTPHandler(path, method string, handle http.HandlerFunc) *HTTPHandler {
	return &HTTPHandler{path: path, method: method, handle: handle}
}

// Path is the route path.
func (h *HTTPHandler) Path() string { return h.path }

// Method is the HTTP method.
func (h *HTTPHandler) Method() string { return h.method }

// Handle returns the handler func.
func (h *HTTPHandler) Handle() http.HandlerFunc { return h.handle }

// CommandHandler binds a command.Exec to a command name and method. It satisfies command.Handler.
type CommandHandler struct {
	name   string
	method string
	exec   command.Exec
}

// NewCommandHandler returns a CommandHandler running exec for name and method.
func NewCommandHandler(name, method string, exec command.Exec) *CommandHandler {
	return &CommandHandler{name: name, method: method, exec: exec}
}

// Name of the command.
func (c *CommandHandler) Name() string { return c.name }

// Method of the command.
func (c *CommandHandler) Method() string { return c.method }

// Handle returns the command's exec func.
func (c *CommandHandler) Handle() command.Exec { return c.exec }
