package domain

import (
	"errors"
	"fmt"
)

// Validation errors carry the 1-based data row index (or invoice id) of the
// offending input so the user can fix the file. A validation failure aborts
// processing of that file; rows are never silently dropped.

// MalformedDateError indicates a date field that matched none of the
// accepted formats.
type MalformedDateError struct {
	Row   int
	Field string
	Value string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("row %d: malformed %s %q", e.Row, e.Field, e.Value)
}

// InvalidKindError indicates a transaction type other than income/expense.
type InvalidKindError struct {
	Row   int
	Value string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("row %d: invalid transaction type %q (want income or expense)", e.Row, e.Value)
}

// NegativeAmountError indicates a negative or unparseable amount magnitude.
// The sign of a transaction comes from its type, never from the amount.
type NegativeAmountError struct {
	Row   int
	Value string
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("row %d: invalid amount %q (must be a non-negative number)", e.Row, e.Value)
}

// EmptyLedgerError indicates a transactions file with no data rows.
type EmptyLedgerError struct{}

func (e *EmptyLedgerError) Error() string {
	return "ledger contains no transactions"
}

// InvalidInvoiceDateRangeError indicates an invoice due before it was issued.
type InvalidInvoiceDateRangeError struct {
	Row       int
	InvoiceID string
}

func (e *InvalidInvoiceDateRangeError) Error() string {
	return fmt.Sprintf("row %d: invoice %q has due_date before issue_date", e.Row, e.InvoiceID)
}

// DuplicateInvoiceIDError indicates an invoice id used more than once in an
// upload.
type DuplicateInvoiceIDError struct {
	Row       int
	InvoiceID string
}

func (e *DuplicateInvoiceIDError) Error() string {
	return fmt.Sprintf("row %d: duplicate invoice id %q", e.Row, e.InvoiceID)
}

// IsValidationError reports whether err belongs to the input validation
// taxonomy, as opposed to an I/O or internal failure.
func IsValidationError(err error) bool {
	var (
		malformedDate *MalformedDateError
		invalidKind   *InvalidKindError
		negAmount     *NegativeAmountError
		emptyLedger   *EmptyLedgerError
		invDateRange  *InvalidInvoiceDateRangeError
		dupInvoice    *DuplicateInvoiceIDError
	)
	return errors.As(err, &malformedDate) ||
		errors.As(err, &invalidKind) ||
		errors.As(err, &negAmount) ||
		errors.As(err, &emptyLedger) ||
		errors.As(err, &invDateRange) ||
		errors.As(err, &dupInvoice)
}
