package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"attestor-hq/attestor/pkg/cli"
	"attestor-hq/attestor/pkg/policy"
	"attestor-hq/attestor/pkg/verify"
)

var (
	verifyBundleID string
	verifyFormat   string
)

var verifyCmd = &cobra.Command{
	Use:   "verify [bundle.json]",
	Short: "Re-verify a bundle's integrity offline",
	Long: `Verify re-derives a stored bundle's Merkle root and HMAC signatures
and checks that the recorded overall result still agrees with the
recorded predicate. The bundle comes from a JSON file argument or,
with --bundle-id, from the configured ledger.

The command exits non-zero when any integrity check fails.`,
	Example: `  attestor verify bundle.json
  attestor verify --bundle-id 6f1c9adf-3a0e-4f6b-9a7e-2f8d1c1f2ab3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyBundleID, "bundle-id", "", "look the bundle up in the ledger")
	verifyCmd.Flags().StringVar(&verifyFormat, "format", "text", "output format (text, json)")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	bundle, err := resolveBundle(cmd, args)
	if err != nil {
		return err
	}

	secret := policy.SecretFromEnv()
	if secret.Default {
		fmt.Fprintln(os.Stderr, "warning: verifying under the built-in development secret; set ATTESTOR_POO_SECRET to match the signer")
	}

	report := verify.Recheck(bundle, secret.Key)

	format, err := cli.ParseOutputFormat(verifyFormat)
	if err != nil {
		return err
	}

	switch format {
	case cli.FormatJSON:
		if err := cli.WriteJSON(os.Stdout, report, true); err != nil {
			return err
		}
	default:
		fmt.Printf("bundle:               %s\n", bundle.BundleID)
		fmt.Printf("merkle root:          %s\n", checkMark(report.MerkleValid))
		fmt.Printf("origin signature:     %s\n", checkMark(report.PoOSignatureValid))
		fmt.Printf("reasoning signature:  %s\n", checkMark(report.PoRSignatureValid))
		fmt.Printf("result consistency:   %s\n", checkMark(report.ResultConsistent))
	}

	if !report.OK() {
		return fmt.Errorf("bundle %s failed re-verification", bundle.BundleID)
	}
	return nil
}

// resolveBundle loads the bundle from the ledger or the file argument.
func resolveBundle(cmd *cobra.Command, args []string) (*verify.Bundle, error) {
	if verifyBundleID != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("pass either a bundle file or --bundle-id, not both")
		}

		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		store, _, err := openStorage(cfg)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		record, err := store.Get(cmd.Context(), verifyBundleID)
		if err != nil {
			return nil, err
		}
		return record.DecodeBundle()
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("pass a bundle file or --bundle-id")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle file %q: %w", args[0], err)
	}

	var b verify.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse bundle file %q: %w", args[0], err)
	}
	return &b, nil
}

func checkMark(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAILED"
}
