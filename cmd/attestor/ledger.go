package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"attestor-hq/attestor/pkg/cli"
	"attestor-hq/attestor/pkg/ledger"
	"attestor-hq/attestor/pkg/ledger/export"
	"attestor-hq/attestor/pkg/ledger/retention"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Query, export, and prune the evaluation ledger",
}

var (
	queryEngine  string
	queryOutcome string
	queryResult  string
	queryPolicy  string
	queryStart   string
	queryEnd     string
	queryLimit   int
	queryOffset  int
	querySort    string
	queryFormat  string
	queryOutput  string
)

var ledgerQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "List ledger records matching the filters",
	Example: `  attestor ledger query --engine credit_assessment --result FAILED
  attestor ledger query --start 2026-08-01 --end 2026-08-23 --format json`,
	RunE: runLedgerQuery,
}

var (
	showFormat string
)

var ledgerShowCmd = &cobra.Command{
	Use:   "show <bundle-id>",
	Short: "Print one ledger record with its full bundle",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerShow,
}

var (
	exportFormat string
	exportOutput string
)

var ledgerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every matching record for archival",
	Long: `Export walks all records matching the filters (the same flags as
query, without pagination) and writes them as JSON or CSV.`,
	RunE: runLedgerExport,
}

var (
	pruneDays        int
	pruneMaxRecords  int64
	pruneArchive     bool
	pruneArchivePath string
)

var ledgerPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete records past the retention policy",
	Long: `Prune deletes records older than the retention window and, when a
record cap is set, the oldest records beyond it. Flags override the
configured retention settings for this run only.`,
	RunE: runLedgerPrune,
}

func init() {
	flags := ledgerQueryCmd.Flags()
	flags.StringVar(&queryEngine, "engine", "", "filter by engine name")
	flags.StringVar(&queryOutcome, "outcome", "", "filter by decision outcome")
	flags.StringVar(&queryResult, "result", "", "filter by overall result (VERIFIED, FAILED)")
	flags.StringVar(&queryPolicy, "policy", "", "filter by policy name")
	flags.StringVar(&queryStart, "start", "", "inclusive start time (RFC 3339 or YYYY-MM-DD)")
	flags.StringVar(&queryEnd, "end", "", "inclusive end time (RFC 3339 or YYYY-MM-DD)")
	flags.IntVar(&queryLimit, "limit", 100, "maximum records to return")
	flags.IntVar(&queryOffset, "offset", 0, "records to skip")
	flags.StringVar(&querySort, "sort", "DESC", "sort by created_at (ASC, DESC)")
	flags.StringVar(&queryFormat, "format", "text", "output format (text, json, csv)")
	flags.StringVarP(&queryOutput, "output", "o", "", "output file (default stdout)")

	ledgerShowCmd.Flags().StringVar(&showFormat, "format", "json", "output format (json)")

	eflags := ledgerExportCmd.Flags()
	eflags.StringVar(&queryEngine, "engine", "", "filter by engine name")
	eflags.StringVar(&queryOutcome, "outcome", "", "filter by decision outcome")
	eflags.StringVar(&queryResult, "result", "", "filter by overall result (VERIFIED, FAILED)")
	eflags.StringVar(&queryPolicy, "policy", "", "filter by policy name")
	eflags.StringVar(&queryStart, "start", "", "inclusive start time (RFC 3339 or YYYY-MM-DD)")
	eflags.StringVar(&queryEnd, "end", "", "inclusive end time (RFC 3339 or YYYY-MM-DD)")
	eflags.StringVar(&exportFormat, "format", "json", "export format (json, csv)")
	eflags.StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")

	pflags := ledgerPruneCmd.Flags()
	pflags.IntVar(&pruneDays, "days", -1, "retention window in days (override config)")
	pflags.Int64Var(&pruneMaxRecords, "max-records", -1, "record cap (override config)")
	pflags.BoolVar(&pruneArchive, "archive", false, "archive records before deletion")
	pflags.StringVar(&pruneArchivePath, "archive-path", "", "archive directory (override config)")

	ledgerCmd.AddCommand(ledgerQueryCmd)
	ledgerCmd.AddCommand(ledgerShowCmd)
	ledgerCmd.AddCommand(ledgerExportCmd)
	ledgerCmd.AddCommand(ledgerPruneCmd)
	rootCmd.AddCommand(ledgerCmd)
}

// buildQuery assembles a ledger query from the shared filter flags.
func buildQuery() (*ledger.Query, error) {
	q := &ledger.Query{
		Engine:        queryEngine,
		Outcome:       queryOutcome,
		OverallResult: queryResult,
		PolicyName:    queryPolicy,
		Limit:         queryLimit,
		Offset:        queryOffset,
		SortOrder:     querySort,
	}

	if queryStart != "" {
		t, err := parseTime(queryStart)
		if err != nil {
			return nil, err
		}
		q.StartTime = &t
	}
	if queryEnd != "" {
		t, err := parseTime(queryEnd)
		if err != nil {
			return nil, err
		}
		q.EndTime = &t
	}

	return q, nil
}

func runLedgerQuery(cmd *cobra.Command, args []string) error {
	q, err := buildQuery()
	if err != nil {
		return err
	}

	format, err := cli.ParseOutputFormat(queryFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, _, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Query(cmd.Context(), q)
	if err != nil {
		return cli.NewCommandError("ledger query", err)
	}

	out, err := cli.OpenOutput(queryOutput)
	if err != nil {
		return err
	}
	defer out.Close()

	return writeRecords(cmd.Context(), out, records, format)
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, _, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	record, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return cli.WriteJSON(os.Stdout, record, true)
}

func runLedgerExport(cmd *cobra.Command, args []string) error {
	q, err := buildQuery()
	if err != nil {
		return err
	}
	q.SortOrder = "ASC"

	format, err := cli.ParseOutputFormat(exportFormat)
	if err != nil {
		return err
	}
	if format == cli.FormatText {
		return fmt.Errorf("export supports json and csv only")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, _, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Walk the full result set in pages; the storage layer caps
	// unbounded queries.
	const pageSize = 500
	var records []*ledger.Record
	for offset := 0; ; offset += pageSize {
		q.Limit = pageSize
		q.Offset = offset
		page, err := store.Query(cmd.Context(), q)
		if err != nil {
			return cli.NewCommandError("ledger export", err)
		}
		records = append(records, page...)
		if len(page) < pageSize {
			break
		}
	}

	out, err := cli.OpenOutput(exportOutput)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := writeRecords(cmd.Context(), out, records, format); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "exported %d records\n", len(records))
	return nil
}

func runLedgerPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rc := &retention.Config{
		RetentionDays:       cfg.Retention.Days,
		PruneSchedule:       cfg.Retention.Schedule,
		ArchiveBeforeDelete: cfg.Retention.Archive || pruneArchive,
		ArchivePath:         cfg.Retention.ArchivePath,
		MaxRecords:          cfg.Retention.MaxRecords,
	}
	if pruneDays >= 0 {
		rc.RetentionDays = pruneDays
	}
	if pruneMaxRecords >= 0 {
		rc.MaxRecords = pruneMaxRecords
	}
	if pruneArchivePath != "" {
		rc.ArchivePath = pruneArchivePath
	}

	store, _, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := retention.NewPruner(store, rc).Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("ledger prune", err)
	}

	fmt.Printf("pruned %d records\n", deleted)
	return nil
}

// writeRecords renders records in the requested format. JSON and CSV
// reuse the archival exporters so the query and export commands emit
// identical shapes.
func writeRecords(ctx context.Context, w io.Writer, records []*ledger.Record, format cli.OutputFormat) error {
	switch format {
	case cli.FormatJSON:
		return export.NewJSONExporter(true).Export(ctx, records, w)
	case cli.FormatCSV:
		return export.NewCSVExporter(true).Export(ctx, records, w)
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CREATED\tBUNDLE ID\tENGINE\tOUTCOME\tRESULT\tPOLICY")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.BundleID, r.Engine, r.Outcome, r.OverallResult, r.PolicyName)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%d records\n", len(records))
		return err
	}
}
