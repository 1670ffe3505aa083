/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logutil

import (
	"fmt"
	"strings"

	"github.com/nzcp/nzcp-go/pkg/common/log"
	"github.com/nzcp/nzcp-go/pkg/doc/nzcp"
)

// LogError is a utility function to log error messages.
func LogError(logger *log.Log, component, step, errMsg string, data ...string) {
	logger.Errorf("component=[%s] step=[%s] %s errMsg=[%s]", component, step, join(data), errMsg)
}

// LogDebug is a utility function to log debug messages.
func LogDebug(logger *log.Log, component, step, msg string, data ...string) {
	logger.Debugf("component=[%s] step=[%s] %s msg=[%s]", component, step, join(data), msg)
}

// LogInfo is a utility function to log info messages.
func LogInfo(logger *log.Log, component, step, msg string, data ...string) {
	logger.Infof("component=[%s] step=[%s] %s msg=[%s]", component, step, join(data), msg)
}

// LogFailure logs a verification failure at debug level together with its kind.
func LogFailure(logger *log.Log, component, step string, err error, data ...string) {
	kind := "unknown"
	if k, ok := nzcp.KindOf(err); ok {
		kind = k.String()
	}

	LogDebug(logger, component, step, err.Error(), append(data, CreateKeyValueString("kind", kind))...)
}

// CreateKeyValueString creates a concatenated string.
func CreateKeyValueString(key, val string) string {
	return fmt.Sprintf("%s=[%s]", key, val)
}

func join(data []string) string {
	return strings.Join(data, " ")
}
