package export

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"attestor-hq/attestor/pkg/ledger"
)

// CSVExporter exports ledger records to CSV format. Only the filterable
// summary columns are emitted; the decision and bundle payloads stay in
// JSON exports.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{
		IncludeHeader: includeHeader,
	}
}

// Export writes ledger records to the provided writer in CSV format.
func (e *CSVExporter) Export(ctx context.Context, records []*ledger.Record, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(headerRow()); err != nil {
			return ledger.NewExportError("csv", len(records), err)
		}
	}

	for _, record := range records {
		if err := writer.Write(recordToRow(record)); err != nil {
			return ledger.NewExportError("csv", len(records), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return ledger.NewExportError("csv", len(records), err)
	}

	return nil
}

// headerRow returns the CSV column names.
func headerRow() []string {
	return []string{
		"id",
		"bundle_id",
		"engine",
		"outcome",
		"overall_result",
		"merkle_root",
		"policy_name",
		"policy_hash",
		"created_at",
	}
}

// recordToRow flattens a ledger record into a CSV row.
func recordToRow(record *ledger.Record) []string {
	return []string{
		record.ID,
		record.BundleID,
		record.Engine,
		record.Outcome,
		record.OverallResult,
		record.MerkleRoot,
		record.PolicyName,
		record.PolicyHash,
		record.CreatedAt.UTC().Format(time.RFC3339),
	}
}
