/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package nzcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/nzcp/nzcp-go/pkg/common/log"
	"github.com/nzcp/nzcp-go/pkg/controller/command"
	"github.com/nzcp/nzcp-go/pkg/controller/internal/cmdutil"
	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
	"github.com/nzcp/nzcp-go/pkg/internal/logutil"
	"github.com/nzcp/nzcp-go/pkg/verifier"
)

var logger = log.New("nzcp/command/nzcp")

// Error codes.
const (
	// InvalidRequestErrorCode is typically a code for invalid requests.
	InvalidRequestErrorCode = command.Code(iota + command.NZCP)

	// ParseErrorCode for a malformed or untrusted pass.
	ParseErrorCode

	// NetworkErrorCode for a failed DID document fetch.
	NetworkErrorCode

	// NotYetValidErrorCode for a pass whose validity has not started.
	NotYetValidErrorCode

	// ExpiredErrorCode for an expired pass.
	ExpiredErrorCode

	// SignatureErrorCode for a pass whose signature does not verify.
	SignatureErrorCode
)

// constants for the nzcp controller's methods.
const (
	// command name.
	CommandName = "nzcp"

	// command methods.
	VerifyCommandMethod = "Verify"

	// error messages.
	errTestIssuersDisabled = "test issuers are disabled"

	// log constants.
	jtiString = "jti"
)

// Opt configures Command.
type Opt func(c *Command)

// WithTestIssuers permits requests to accept passes from the test issuers.
func WithTestIssuers(allow bool) Opt {
	return func(c *Command) {
		c.allowTestIssuers = allow
	}
}

// WithVerifierOptions sets options applied to every verification, such as the cache or HTTP client.
func WithVerifierOptions(opts ...verifier.Option) Opt {
	return func(c *Command) {
		c.verifierOpts = append(c.verifierOpts, opts...)
	}
}

// Command contains command operations provided by nzcp controller.
type Command struct {
	verifier         *verifier.Verifier
	validate         *validator.Validate
	allowTestIssuers bool
	verifierOpts     []verifier.Option
}

// New returns new nzcp controller command instance.
func New(opts ...Opt) *Command {
	c := &Command{validate: validator.New()}

	for _, opt := range opts {
		opt(c)
	}

	c.verifier = verifier.New(c.verifierOpts...)

	return c
}

// GetHandlers returns list of all commands supported by this controller command.
func (c *Command) GetHandlers() []command.Handler {
	return []command.Handler{
		cmdutil.NewCommandHandler(CommandName, VerifyCommandMethod, c.Verify),
	}
}

// Verify verifies a pass and writes the verified pass.
func (c *Command) Verify(rw io.Writer, req io.Reader) command.Error {
	var request VerifyRequest

	err := json.NewDecoder(req).Decode(&request)
	if err != nil {
		logutil.LogInfo(logger, CommandName, VerifyCommandMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("request decode : %w", err))
	}

	err = c.validate.Struct(&request)
	if err != nil {
		logutil.LogDebug(logger, CommandName, VerifyCommandMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("invalid request : %w", err))
	}

	if request.AllowTestIssuers && !c.allowTestIssuers {
		logutil.LogDebug(logger, CommandName, VerifyCommandMethod, errTestIssuersDisabled)

		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errTestIssuersDisabled))
	}

	opts := []verifier.Option{verifier.WithTestIssuers(request.AllowTestIssuers)}
	if request.Time != nil {
		opts = append(opts, verifier.WithTime(*request.Time))
	}

	pass, err := c.verifier.Verify(request.Token, opts...)
	if err != nil {
		logutil.LogFailure(logger, CommandName, VerifyCommandMethod, err)

		return toCommandError(err)
	}

	command.WriteNillableResponse(rw, &VerifyResponse{Pass: pass}, logger)

	logutil.LogDebug(logger, CommandName, VerifyCommandMethod, "success",
		logutil.CreateKeyValueString(jtiString, pass.JTI))

	return nil
}

// toCommandError maps a verification failure to its command error. A rejected pass is a
// validation error; only a failed DID document fetch is an execute error.
func toCommandError(err error) command.Error {
	kind, _ := nzcp.KindOf(err)

	switch kind {
	case nzcp.ParseErrorKind:
		return command.NewValidationError(ParseErrorCode, err)
	case nzcp.NotYetValidErrorKind:
		return command.NewValidationError(NotYetValidErrorCode, err)
	case nzcp.ExpiredErrorKind:
		return command.NewValidationError(ExpiredErrorCode, err)
	case nzcp.SignatureErrorKind:
		return command.NewValidationError(SignatureErrorCode, err)
	case nzcp.NetworkErrorKind:
		return command.NewExecuteError(NetworkErrorCode, err)
	default:
		return command.NewExecuteError(command.UnknownStatus, err)
	}
}
