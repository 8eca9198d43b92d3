package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind defines the nature of a ledger entry (income or expense).
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// DefaultCategory is assigned to transactions uploaded without a category.
const DefaultCategory = "Uncategorized"

// TransactionRow is a raw transactions.csv row before validation.
// Index is the 1-based position of the row within the file's data rows.
type TransactionRow struct {
	Index        int
	Date         string
	Kind         string
	Amount       string
	Category     string
	Counterparty string
	Notes        string
}

// InvoiceRow is a raw invoices.csv row before validation.
type InvoiceRow struct {
	Index     int
	InvoiceID string
	Client    string
	IssueDate string
	DueDate   string
	PaidDate  string
	Amount    string
}

// Transaction is a validated ledger entry. Amount is a non-negative
// magnitude; the sign is implied by Kind.
type Transaction struct {
	Date         time.Time       `json:"date"`
	Kind         TransactionKind `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Counterparty string          `json:"counterparty,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// NetAmount returns the signed amount: positive for income, negative for
// expense.
func (t Transaction) NetAmount() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// GroupKey identifies the recurrence group a transaction belongs to:
// "category/counterparty", or the category alone when no counterparty is
// recorded.
func (t Transaction) GroupKey() string {
	if t.Counterparty == "" {
		return t.Category
	}
	return t.Category + "/" + t.Counterparty
}

// Invoice is a validated invoices.csv entry. PaidDate is nil while the
// invoice is outstanding.
type Invoice struct {
	InvoiceID string          `json:"invoice_id"`
	Client    string          `json:"client"`
	IssueDate time.Time       `json:"issue_date"`
	DueDate   time.Time       `json:"due_date"`
	PaidDate  *time.Time      `json:"paid_date,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// Ledger holds the normalized transaction history: the stable date-sorted
// transactions plus the daily-continuous running balance series derived
// from them. It is never mutated after normalization.
type Ledger struct {
	Transactions []Transaction
	Balances     []DailyBalancePoint
}

// Start returns the first transaction date.
func (l *Ledger) Start() time.Time {
	return l.Transactions[0].Date
}

// End returns the last transaction date.
func (l *Ledger) End() time.Time {
	return l.Transactions[len(l.Transactions)-1].Date
}

// ClosingBalance returns the running balance at the end of the historical
// series, which seeds the first forecast day.
func (l *Ledger) ClosingBalance() decimal.Decimal {
	return *l.Balances[len(l.Balances)-1].Actual
}

// DaysBetween returns the whole number of calendar days from a to b.
// Dates are normalized to UTC midnight, so the division is exact.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
