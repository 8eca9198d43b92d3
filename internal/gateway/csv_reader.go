package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"cashradar/internal/domain"
)

// CSVLedgerRepository implements the LedgerRepository interface for CSV
// files on disk. It only deals with file shape (headers, field counts);
// semantic validation of the row values belongs to the Normalizer.
type CSVLedgerRepository struct{}

// NewCSVLedgerRepository creates a new repository instance.
func NewCSVLedgerRepository() *CSVLedgerRepository {
	return &CSVLedgerRepository{}
}

// GetTransactionRows reads raw rows from a transactions CSV file.
func (r *CSVLedgerRepository) GetTransactionRows(ctx context.Context, path string) ([]domain.TransactionRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transactions file %s: %w", path, err)
	}
	defer file.Close()

	rows, err := ParseTransactionRows(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions file %s: %w", path, err)
	}
	return rows, nil
}

// GetInvoiceRows reads raw rows from an invoices CSV file.
func (r *CSVLedgerRepository) GetInvoiceRows(ctx context.Context, path string) ([]domain.InvoiceRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open invoices file %s: %w", path, err)
	}
	defer file.Close()

	rows, err := ParseInvoiceRows(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoices file %s: %w", path, err)
	}
	return rows, nil
}

// ParseTransactionRows parses a transactions CSV stream. Columns are
// resolved by header name, case-insensitive; date, type and amount are
// required, the rest are optional.
func ParseTransactionRows(r io.Reader) ([]domain.TransactionRow, error) {
	records, columns, err := readCSV(r, []string{"date", "type", "amount"})
	if err != nil {
		return nil, err
	}

	rows := make([]domain.TransactionRow, 0, len(records))
	for i, record := range records {
		rows = append(rows, domain.TransactionRow{
			Index:        i + 1,
			Date:         field(record, columns, "date"),
			Kind:         field(record, columns, "type"),
			Amount:       field(record, columns, "amount"),
			Category:     field(record, columns, "category"),
			Counterparty: field(record, columns, "client_or_vendor"),
			Notes:        field(record, columns, "notes"),
		})
	}
	return rows, nil
}

// ParseInvoiceRows parses an invoices CSV stream. The paid_date column is
// optional; a blank value means the invoice is still outstanding.
func ParseInvoiceRows(r io.Reader) ([]domain.InvoiceRow, error) {
	records, columns, err := readCSV(r, []string{"invoice_id", "client", "issue_date", "due_date", "amount"})
	if err != nil {
		return nil, err
	}

	rows := make([]domain.InvoiceRow, 0, len(records))
	for i, record := range records {
		rows = append(rows, domain.InvoiceRow{
			Index:     i + 1,
			InvoiceID: field(record, columns, "invoice_id"),
			Client:    field(record, columns, "client"),
			IssueDate: field(record, columns, "issue_date"),
			DueDate:   field(record, columns, "due_date"),
			PaidDate:  field(record, columns, "paid_date"),
			Amount:    field(record, columns, "amount"),
		})
	}
	return rows, nil
}

// readCSV reads all records and resolves the header into a column index
// map, verifying the required columns are present.
func readCSV(r io.Reader, required []string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading records: %w", err)
	}
	return records, columns, nil
}

func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
