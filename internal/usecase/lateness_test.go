package usecase

import (
	"testing"
	"time"

	"cashradar/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidInvoice(id, client string, due, paid time.Time, amount int64) domain.Invoice {
	return domain.Invoice{
		InvoiceID: id,
		Client:    client,
		IssueDate: due.AddDate(0, 0, -30),
		DueDate:   due,
		PaidDate:  &paid,
		Amount:    decimal.NewFromInt(amount),
	}
}

func unpaidInvoice(id, client string, due time.Time, amount int64) domain.Invoice {
	return domain.Invoice{
		InvoiceID: id,
		Client:    client,
		IssueDate: due.AddDate(0, 0, -30),
		DueDate:   due,
		Amount:    decimal.NewFromInt(amount),
	}
}

func latenessConfig(asOf time.Time, grace int) domain.Config {
	cfg := domain.DefaultConfig()
	cfg.AnalysisDate = asOf
	cfg.GracePeriodDays = grace
	return cfg
}

func TestAnalyzeLateness_DelayScenario(t *testing.T) {
	// Issued 2024-01-01, due 2024-01-31, paid 2024-02-15: 15 days late.
	invoices := []domain.Invoice{
		paidInvoice("INV-1", "Acme", date(2024, time.January, 31), date(2024, time.February, 15), 500),
	}

	stats, outstanding := AnalyzeLateness(invoices, latenessConfig(date(2024, time.March, 1), 0))
	require.Len(t, stats, 1)
	assert.Empty(t, outstanding)

	assert.Equal(t, "Acme", stats[0].Client)
	assert.Equal(t, 1, stats[0].PaidCount)
	assert.Equal(t, 15.0, stats[0].MeanDelayDays)
	assert.Equal(t, 1, stats[0].LateCount)
}

func TestAnalyzeLateness_Partition(t *testing.T) {
	asOf := date(2024, time.March, 1)
	invoices := []domain.Invoice{
		paidInvoice("INV-1", "Acme", date(2024, time.January, 31), date(2024, time.February, 10), 500),
		paidInvoice("INV-2", "Acme", date(2024, time.February, 1), date(2024, time.January, 30), 300), // paid early
		unpaidInvoice("INV-3", "Acme", date(2024, time.February, 1), 200),
		unpaidInvoice("INV-4", "Globex", date(2024, time.March, 10), 900), // not yet due
	}

	stats, outstanding := AnalyzeLateness(invoices, latenessConfig(asOf, 0))

	// Every paid invoice lands in exactly one client's delay statistics,
	// every unpaid one in exactly one outstanding total.
	paidTotal, outstandingTotal := 0, 0
	for _, s := range stats {
		paidTotal += s.PaidCount
		outstandingTotal += s.OutstandingCount
	}
	assert.Equal(t, 2, paidTotal)
	assert.Equal(t, 2, outstandingTotal)
	require.Len(t, outstanding, 2)

	// Aging is relative to the analysis date, negative when not yet due.
	assert.Equal(t, "INV-3", outstanding[0].InvoiceID)
	assert.Equal(t, 29, outstanding[0].DaysOutstanding)
	assert.Equal(t, "INV-4", outstanding[1].InvoiceID)
	assert.Equal(t, -9, outstanding[1].DaysOutstanding)

	// Acme: delays +10 and -2 -> mean 4, one late.
	require.Equal(t, "Acme", stats[0].Client)
	assert.Equal(t, 4.0, stats[0].MeanDelayDays)
	assert.Equal(t, 1, stats[0].LateCount)
	assert.True(t, stats[0].OutstandingTotal.Equal(decimal.NewFromInt(200)))

	// Globex has no paid invoices and must not contribute delay stats.
	require.Equal(t, "Globex", stats[1].Client)
	assert.Equal(t, 0, stats[1].PaidCount)
	assert.Equal(t, 0.0, stats[1].MeanDelayDays)
	assert.True(t, stats[1].OutstandingTotal.Equal(decimal.NewFromInt(900)))
}

func TestAnalyzeLateness_GracePeriod(t *testing.T) {
	invoices := []domain.Invoice{
		paidInvoice("INV-1", "Acme", date(2024, time.January, 31), date(2024, time.February, 5), 100), // 5 days
		paidInvoice("INV-2", "Acme", date(2024, time.February, 29), date(2024, time.March, 10), 100),  // 10 days
	}

	stats, _ := AnalyzeLateness(invoices, latenessConfig(date(2024, time.April, 1), 7))
	require.Len(t, stats, 1)
	// Only the 10-day delay exceeds the 7-day grace period.
	assert.Equal(t, 1, stats[0].LateCount)
	assert.Equal(t, 7.5, stats[0].MeanDelayDays)
}

func TestAnalyzeLateness_WorstPayersFirst(t *testing.T) {
	invoices := []domain.Invoice{
		paidInvoice("INV-1", "Prompt", date(2024, time.January, 31), date(2024, time.January, 20), 100),
		paidInvoice("INV-2", "Slow", date(2024, time.January, 31), date(2024, time.February, 10), 100),
		paidInvoice("INV-3", "Slow", date(2024, time.February, 15), date(2024, time.February, 25), 100),
		paidInvoice("INV-4", "Slower", date(2024, time.January, 31), date(2024, time.February, 20), 100),
		paidInvoice("INV-5", "Slower", date(2024, time.February, 15), date(2024, time.March, 6), 100),
	}

	stats, _ := AnalyzeLateness(invoices, latenessConfig(date(2024, time.April, 1), 0))
	require.Len(t, stats, 3)

	// Slow and Slower both have two late invoices; Slower's mean delay of
	// 20 days outranks Slow's 10.
	assert.Equal(t, "Slower", stats[0].Client)
	assert.Equal(t, "Slow", stats[1].Client)
	assert.Equal(t, "Prompt", stats[2].Client)
	assert.Equal(t, 0, stats[2].LateCount)
}
