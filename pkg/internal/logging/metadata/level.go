/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metadata keeps the per-module log level table.
package metadata

import (
	"errors"
	"strings"
	"sync"

	"github.com/nzcp/nzcp-go/spi/log"
)

const (
	defaultLogLevel   = log.INFO
	defaultModuleName = ""
)

// levelNames is indexed by log.Level.
var levelNames = []string{ //nolint:gochecknoglobals
	"CRITICAL",
	"ERROR",
	"WARNING",
	"INFO",
	"DEBUG",
}

//nolint:gochecknoglobals
var (
	rwmutex = &sync.RWMutex{}
	levels  = map[string]log.Level{}
)

// SetLevel sets the log level for the given module. An empty module sets the default for all modules.
func SetLevel(module string, level log.Level) {
	rwmutex.Lock()
	defer rwmutex.Unlock()

	levels[module] = level
}

// GetLevel returns the log level of the given module, falling back to the default module and then INFO.
func GetLevel(module string) log.Level {
	rwmutex.RLock()
	defer rwmutex.RUnlock()

	if level, ok := levels[module]; ok {
		return level
	}

	if level, ok := levels[defaultModuleName]; ok {
		return level
	}

	return defaultLogLevel
}

// IsEnabledFor reports whether messages at level are emitted for module.
func IsEnabledFor(module string, level log.Level) bool {
	return level <= GetLevel(module)
}

// ParseLevel returns the log level from a string representation.
func ParseLevel(level string) (log.Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, level) {
			return log.Level(i), nil
		}
	}

	return log.ERROR, errors.New("logger: invalid log level")
}

// ParseString returns string representation of given log level.
func ParseString(level log.Level) string {
	if level < 0 || int(level) >= len(levelNames) {
		return "UNKNOWN"
	}

	return levelNames[level]
}

// reset clears every configured level. Tests only.
func reset() {
	rwmutex.Lock()
	defer rwmutex.Unlock()

	levels = map[string]log.Level{}
}
