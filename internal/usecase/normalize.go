package usecase

import (
	"sort"
	"strings"
	"time"

	"cashradar/internal/domain"

	"github.com/shopspring/decimal"
)

// dateFormats is the fixed set of accepted date layouts for uploads.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeTransactions is the validating factory that turns raw CSV rows
// into the immutable, stable date-sorted Ledger. Any invalid row aborts the
// whole file with a typed error carrying the row index.
func NormalizeTransactions(rows []domain.TransactionRow, cfg domain.Config) (*domain.Ledger, error) {
	if len(rows) == 0 {
		return nil, &domain.EmptyLedgerError{}
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		date, ok := parseDate(row.Date)
		if !ok {
			return nil, &domain.MalformedDateError{Row: row.Index, Field: "date", Value: row.Date}
		}

		var kind domain.TransactionKind
		switch strings.ToLower(strings.TrimSpace(row.Kind)) {
		case string(domain.KindIncome):
			kind = domain.KindIncome
		case string(domain.KindExpense):
			kind = domain.KindExpense
		default:
			return nil, &domain.InvalidKindError{Row: row.Index, Value: row.Kind}
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
		if err != nil || amount.IsNegative() {
			return nil, &domain.NegativeAmountError{Row: row.Index, Value: row.Amount}
		}

		category := strings.TrimSpace(row.Category)
		if category == "" {
			category = domain.DefaultCategory
		}

		transactions = append(transactions, domain.Transaction{
			Date:         date,
			Kind:         kind,
			Amount:       amount,
			Category:     category,
			Counterparty: strings.TrimSpace(row.Counterparty),
			Notes:        row.Notes,
		})
	}

	// Stable sort keeps the original input order for same-date rows.
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})

	return &domain.Ledger{
		Transactions: transactions,
		Balances:     buildActualBalances(transactions, cfg.OpeningBalance),
	}, nil
}

// buildActualBalances produces one point per calendar day between the first
// and last transaction, carrying the running balance across gap days so the
// historical series is continuous.
func buildActualBalances(transactions []domain.Transaction, opening decimal.Decimal) []domain.DailyBalancePoint {
	netByDay := make(map[time.Time]decimal.Decimal)
	for _, t := range transactions {
		netByDay[t.Date] = netByDay[t.Date].Add(t.NetAmount())
	}

	start := transactions[0].Date
	end := transactions[len(transactions)-1].Date

	points := make([]domain.DailyBalancePoint, 0, domain.DaysBetween(start, end)+1)
	balance := opening
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		balance = balance.Add(netByDay[day])
		actual := balance
		points = append(points, domain.DailyBalancePoint{Date: day, Actual: &actual})
	}
	return points
}

// NormalizeInvoices validates raw invoice rows. Invoice ids must be unique
// within the upload and due dates must not precede issue dates; violations
// are errors, never silently corrected.
func NormalizeInvoices(rows []domain.InvoiceRow) ([]domain.Invoice, error) {
	invoices := make([]domain.Invoice, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		id := strings.TrimSpace(row.InvoiceID)
		if seen[id] {
			return nil, &domain.DuplicateInvoiceIDError{Row: row.Index, InvoiceID: id}
		}
		seen[id] = true

		issue, ok := parseDate(row.IssueDate)
		if !ok {
			return nil, &domain.MalformedDateError{Row: row.Index, Field: "issue_date", Value: row.IssueDate}
		}
		due, ok := parseDate(row.DueDate)
		if !ok {
			return nil, &domain.MalformedDateError{Row: row.Index, Field: "due_date", Value: row.DueDate}
		}
		if due.Before(issue) {
			return nil, &domain.InvalidInvoiceDateRangeError{Row: row.Index, InvoiceID: id}
		}

		var paid *time.Time
		if strings.TrimSpace(row.PaidDate) != "" {
			p, ok := parseDate(row.PaidDate)
			if !ok {
				return nil, &domain.MalformedDateError{Row: row.Index, Field: "paid_date", Value: row.PaidDate}
			}
			paid = &p
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
		if err != nil || amount.IsNegative() {
			return nil, &domain.NegativeAmountError{Row: row.Index, Value: row.Amount}
		}

		invoices = append(invoices, domain.Invoice{
			InvoiceID: id,
			Client:    strings.TrimSpace(row.Client),
			IssueDate: issue,
			DueDate:   due,
			PaidDate:  paid,
			Amount:    amount,
		})
	}
	return invoices, nil
}
