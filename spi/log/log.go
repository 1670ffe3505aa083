/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package log defines the logger contract shared by every nzcp package.
package log

// Level orders log messages by severity. Lower values are more severe.
type Level int

// Levels, most severe first. A module logs messages at or below its level.
const (
	CRITICAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

// Logger writes printf-style messages. Fatalf exits the process after logging.
type Logger interface {
	Fatalf(msg string, args ...interface{})
	Errorf(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Infof(msg string, args ...interface{})
	Debugf(msg string, args ...interface{})
}

// LoggerProvider returns the logger for a module, such as "nzcp/verifier".
type LoggerProvider interface {
	GetLogger(module string) Logger
}
