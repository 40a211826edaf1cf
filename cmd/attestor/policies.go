package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"attestor-hq/attestor/pkg/cli"
	"attestor-hq/attestor/pkg/engines"
	"attestor-hq/attestor/pkg/policy"
)

var policiesFormat string

var policiesCmd = &cobra.Command{
	Use:   "policies [engine]",
	Short: "List sealed policies and their constraint tables",
	Long: `Policies lists every registered engine with its sealed policy name,
authority, declaration time, and policy hash. With an engine argument
it prints that engine's full constraint table instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPolicies,
}

func init() {
	policiesCmd.Flags().StringVar(&policiesFormat, "format", "text", "output format (text, json)")

	rootCmd.AddCommand(policiesCmd)
}

func runPolicies(cmd *cobra.Command, args []string) error {
	secret := policy.SecretFromEnv()

	format, err := cli.ParseOutputFormat(policiesFormat)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return showPolicy(args[0], secret, format)
	}
	return listPolicies(secret, format)
}

func listPolicies(secret policy.Secret, format cli.OutputFormat) error {
	engs, err := engines.NewAll(secret)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(engs))
	for name := range engs {
		names = append(names, name)
	}
	sort.Strings(names)

	if format == cli.FormatJSON {
		type policySummary struct {
			Engine      string `json:"engine"`
			Policy      string `json:"policy"`
			Authority   string `json:"authority"`
			DeclaredAt  string `json:"declared_at"`
			Hash        string `json:"hash"`
			Constraints int    `json:"constraints"`
		}
		summaries := make([]policySummary, 0, len(names))
		for _, name := range names {
			p := engs[name].Policy()
			summaries = append(summaries, policySummary{
				Engine:      name,
				Policy:      p.Name,
				Authority:   p.Authority,
				DeclaredAt:  p.DeclaredAt,
				Hash:        p.Hash,
				Constraints: len(p.Constraints),
			})
		}
		return cli.WriteJSON(os.Stdout, summaries, true)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINE\tPOLICY\tAUTHORITY\tDECLARED\tCONSTRAINTS\tHASH")
	for _, name := range names {
		p := engs[name].Policy()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			name, p.Name, p.Authority, p.DeclaredAt, len(p.Constraints), shortHash(p.Hash))
	}
	return tw.Flush()
}

func showPolicy(engineName string, secret policy.Secret, format cli.OutputFormat) error {
	eng, err := engines.New(engineName, secret)
	if err != nil {
		return err
	}
	p := eng.Policy()

	if format == cli.FormatJSON {
		type constraintRow struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Rule     string `json:"rule"`
			Severity string `json:"severity"`
		}
		rows := make([]constraintRow, 0, len(p.Constraints))
		for _, c := range p.Constraints {
			rows = append(rows, constraintRow{
				ID:       c.ID,
				Name:     c.Name,
				Rule:     c.Rule,
				Severity: string(c.Severity),
			})
		}
		return cli.WriteJSON(os.Stdout, map[string]any{
			"engine":      engineName,
			"policy":      p.Name,
			"authority":   p.Authority,
			"declared_at": p.DeclaredAt,
			"hash":        p.Hash,
			"constraints": rows,
		}, true)
	}

	fmt.Printf("policy:      %s\n", p.Name)
	fmt.Printf("authority:   %s\n", p.Authority)
	fmt.Printf("declared at: %s\n", p.DeclaredAt)
	fmt.Printf("hash:        %s\n\n", p.Hash)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSEVERITY\tNAME\tRULE")
	for _, c := range p.Constraints {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Severity, c.Name, c.Rule)
	}
	return tw.Flush()
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
