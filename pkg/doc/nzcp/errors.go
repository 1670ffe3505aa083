/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package nzcp

import (
	"errors"
	"fmt"
)

// Kind classifies a verification failure.
type Kind int32

const (
	// ParseErrorKind covers structural, schema, format and trust violations.
	ParseErrorKind Kind = iota + 1
	// NetworkErrorKind means the DID document could not be fetched.
	NetworkErrorKind
	// NotYetValidErrorKind means the reference time precedes the not-before claim.
	NotYetValidErrorKind
	// ExpiredErrorKind means the reference time is past the expiry claim.
	ExpiredErrorKind
	// SignatureErrorKind means the pass is well formed but its signature does not verify.
	SignatureErrorKind
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case ParseErrorKind:
		return "ParseError"
	case NetworkErrorKind:
		return "NetworkError"
	case NotYetValidErrorKind:
		return "NotYetValidError"
	case ExpiredErrorKind:
		return "ExpiredError"
	case SignatureErrorKind:
		return "SignatureError"
	default:
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
}

// Error is the common interface of every pass verification failure.
type Error interface {
	error
	// Kind returns the failure class.
	Kind() Kind
}

// KindOf returns the Kind of the first Error found in err's chain.
func KindOf(err error) (Kind, bool) {
	var e Error
	if errors.As(err, &e) {
		return e.Kind(), true
	}

	return 0, false
}

type baseError struct {
	msg   string
	cause error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}

	return e.msg
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ParseError reports a malformed, untrusted or schema-violating pass.
type ParseError struct{ baseError }

// Kind returns ParseErrorKind.
func (e *ParseError) Kind() Kind { return ParseErrorKind }

// NewParseError creates a ParseError with an optional cause.
func NewParseError(msg string, cause error) *ParseError {
	return &ParseError{baseError{msg: msg, cause: cause}}
}

// NetworkError reports a failed DID document fetch. StatusCode is zero when no response was received.
type NetworkError struct {
	baseError
	StatusCode int
}

// Kind returns NetworkErrorKind.
func (e *NetworkError) Kind() Kind { return NetworkErrorKind }

// NewNetworkError creates a NetworkError.
func NewNetworkError(statusCode int, msg string, cause error) *NetworkError {
	return &NetworkError{baseError: baseError{msg: msg, cause: cause}, StatusCode: statusCode}
}

// NotYetValidError reports a pass whose not-before claim lies after the reference time.
type NotYetValidError struct{ baseError }

// Kind returns NotYetValidErrorKind.
func (e *NotYetValidError) Kind() Kind { return NotYetValidErrorKind }

// NewNotYetValidError creates a NotYetValidError.
func NewNotYetValidError(msg string) *NotYetValidError {
	return &NotYetValidError{baseError{msg: msg}}
}

// ExpiredError reports a pass whose expiry claim lies before the reference time.
type ExpiredError struct{ baseError }

// Kind returns ExpiredErrorKind.
func (e *ExpiredError) Kind() Kind { return ExpiredErrorKind }

// NewExpiredError creates an ExpiredError.
func NewExpiredError(msg string) *ExpiredError {
	return &ExpiredError{baseError{msg: msg}}
}

// SignatureError reports a signature that does not verify against the issuer key.
type SignatureError struct{ baseError }

// Kind returns SignatureErrorKind.
func (e *SignatureError) Kind() Kind { return SignatureErrorKind }

// NewSignatureError creates a SignatureError.
func NewSignatureError(msg string, cause error) *SignatureError {
	return &SignatureError{baseError{msg: msg, cause: cause}}
}
