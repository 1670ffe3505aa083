/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package mocklogger provides a recording logger for tests.
package mocklogger

import (
	"fmt"
	"sync"

	"github.com/nzcp/nzcp-go/spi/log"
)

// MockLogger records every formatted message it receives.
type MockLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (l *MockLogger) add(level, msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Messages = append(l.Messages, level+": "+fmt.Sprintf(msg, args...))
}

// Fatalf records a CRITICAL message.
func (l *MockLogger) Fatalf(msg string, args ...interface{}) { l.add("CRITICAL", msg, args...) }

// Debugf records a DEBUG message.
func (l *MockLogger) Debugf(msg string, args ...interface{}) { l.add("DEBUG", msg, args...) }

// Infof records an INFO message.
func (l *MockLogger) Infof(msg string, args ...interface{}) { l.add("INFO", msg, args...) }

// Warnf records a WARNING message.
func (l *MockLogger) Warnf(msg string, args ...interface{}) { l.add("WARNING", msg, args...) }

// Errorf records an ERROR message.
func (l *MockLogger) Errorf(msg string, args ...interface{}) { l.add("ERROR", msg, args...) }

// Snapshot returns a copy of the recorded messages.
func (l *MockLogger) Snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.Messages...)
}

// Provider hands out the same MockLogger for every module.
type Provider struct {
	MockLogger *MockLogger
}

// GetLogger returns the shared MockLogger.
func (p *Provider) GetLogger(string) log.Logger {
	return p.MockLogger
}
