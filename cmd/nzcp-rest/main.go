/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package nzcp-rest (NZ Covid Pass verifier REST server).
//
// Terms Of Service:
//
//	Schemes: https
//	Version: 0.1.0
//	License: SPDX-License-Identifier: Apache-2.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package main

import (
	"github.com/spf13/cobra"

	"github.com/nzcp/nzcp-go/cmd/nzcp-rest/startcmd"
	"github.com/nzcp/nzcp-go/cmd/nzcp-rest/verifycmd"
	"github.com/nzcp/nzcp-go/pkg/common/log"
)

// This is an application which serves the pass verifier API on given port, or verifies a single pass.
func main() {
	rootCmd := &cobra.Command{
		Use: "nzcp-rest",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	logger := log.New("nzcp/rest")

	startCmd, err := startcmd.Cmd(&startcmd.HTTPServer{})
	if err != nil {
		logger.Fatalf(err.Error())
	}

	rootCmd.AddCommand(startCmd, verifycmd.Cmd(nil))

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("Failed to run nzcp-rest: %s", err)
	}
}
