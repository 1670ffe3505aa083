/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifycmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nzcp/nzcp-go/pkg/vdr/web"
	"github.com/nzcp/nzcp-go/pkg/verifier"
)

const (
	allowTestIssuersFlagName  = "allow-test-issuers"
	allowTestIssuersFlagUsage = "Accept passes signed by the test issuers."

	timeFlagName  = "time"
	timeFlagUsage = "Check the validity window against this RFC3339 time instead of the current time."

	httpTimeoutFlagName  = "http-timeout"
	httpTimeoutFlagUsage = "Timeout for fetching the issuer DID document, for example 10s. No timeout if not set."
)

// Cmd returns the Cobra verify command. A nil client fetches DID documents over HTTPS.
func Cmd(client web.HTTPClient) *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:          "verify <token>",
		Short:        "Verify a pass",
		Long:         `Verify an NZ Covid Pass and print its details as JSON`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := verifierOptions(cmd, client)
			if err != nil {
				return err
			}

			pass, err := verifier.Verify(args[0], opts...)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(pass, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal pass : %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))

			return err
		},
	}

	verifyCmd.Flags().Bool(allowTestIssuersFlagName, false, allowTestIssuersFlagUsage)
	verifyCmd.Flags().String(timeFlagName, "", timeFlagUsage)
	verifyCmd.Flags().Duration(httpTimeoutFlagName, 0, httpTimeoutFlagUsage)

	return verifyCmd
}

func verifierOptions(cmd *cobra.Command, client web.HTTPClient) ([]verifier.Option, error) {
	allowTest, err := cmd.Flags().GetBool(allowTestIssuersFlagName)
	if err != nil {
		return nil, err
	}

	opts := []verifier.Option{verifier.WithTestIssuers(allowTest), verifier.WithContext(cmd.Context())}

	at, err := cmd.Flags().GetString(timeFlagName)
	if err != nil {
		return nil, err
	}

	if at != "" {
		t, e := time.Parse(time.RFC3339, at)
		if e != nil {
			return nil, fmt.Errorf("invalid value [%s] for %s : %w", at, timeFlagName, e)
		}

		opts = append(opts, verifier.WithTime(t))
	}

	if client == nil {
		timeout, e := cmd.Flags().GetDuration(httpTimeoutFlagName)
		if e != nil {
			return nil, e
		}

		client = web.NewHTTPClient(timeout)
	}

	return append(opts, verifier.WithHTTPClient(client)), nil
}
