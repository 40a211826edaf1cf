package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"attestor-hq/attestor/pkg/cli"
	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/engines"
	"attestor-hq/attestor/pkg/ledger"
	"attestor-hq/attestor/pkg/policy"
)

var (
	evalEngine string
	evalInput  string
	evalOutput string
	evalStore  bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one input record and print the decision with its bundle",
	Long: `Evaluate reads a JSON object of input fields, runs it through the
named decision engine, and prints the decision together with its
verification bundle.

The input is read from --input, or from stdin when the flag is omitted
or set to "-". With --store the result is also persisted to the
configured ledger.`,
	Example: `  echo '{"credit_score": 720, "annual_income": 85000}' | attestor evaluate --engine credit_assessment
  attestor evaluate --engine medical_triage --input vitals.json --store`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&evalEngine, "engine", "e", "", "decision engine name (required)")
	evaluateCmd.Flags().StringVarP(&evalInput, "input", "i", "", "input JSON file (default stdin)")
	evaluateCmd.Flags().StringVarP(&evalOutput, "output", "o", "", "output file (default stdout)")
	evaluateCmd.Flags().BoolVar(&evalStore, "store", false, "persist the result to the ledger")
	_ = evaluateCmd.MarkFlagRequired("engine")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	data, err := readInput(evalInput)
	if err != nil {
		return err
	}

	var in engine.Record
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("input is not a JSON object: %w", err)
	}

	secret := policy.SecretFromEnv()
	if secret.Default {
		fmt.Fprintln(os.Stderr, "warning: using the built-in development secret; set ATTESTOR_POO_SECRET in production")
	}

	eng, err := engines.New(evalEngine, secret)
	if err != nil {
		return err
	}

	res, err := eng.Evaluate(in)
	if err != nil {
		return cli.NewCommandError("evaluate", err)
	}

	if evalStore {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, _, err := openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		record, err := ledger.NewRecord(res)
		if err != nil {
			return fmt.Errorf("failed to build ledger record: %w", err)
		}
		if err := store.Store(cmd.Context(), record); err != nil {
			return fmt.Errorf("failed to store result: %w", err)
		}
		fmt.Fprintf(os.Stderr, "stored bundle %s\n", record.BundleID)
	}

	out, err := cli.OpenOutput(evalOutput)
	if err != nil {
		return err
	}
	defer out.Close()

	return cli.WriteJSON(out, res, true)
}

// readInput reads the evaluate payload from a file or stdin.
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %q: %w", path, err)
	}
	return data, nil
}
