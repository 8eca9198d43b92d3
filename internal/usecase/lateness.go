package usecase

import (
	"sort"

	"cashradar/internal/domain"
)

// AnalyzeLateness partitions invoices into paid and outstanding and
// aggregates per-client payment behavior. Paid invoices contribute a delay
// (negative when paid early); unpaid invoices age against the analysis date
// and never mix into the delay statistics.
func AnalyzeLateness(invoices []domain.Invoice, cfg domain.Config) ([]domain.ClientLatenessStat, []domain.OutstandingInvoice) {
	type clientAcc struct {
		stat      domain.ClientLatenessStat
		delayDays int
	}
	accs := make(map[string]*clientAcc)
	var order []string

	acc := func(client string) *clientAcc {
		a, ok := accs[client]
		if !ok {
			a = &clientAcc{stat: domain.ClientLatenessStat{Client: client}}
			accs[client] = a
			order = append(order, client)
		}
		return a
	}

	outstanding := make([]domain.OutstandingInvoice, 0)
	for _, inv := range invoices {
		a := acc(inv.Client)
		if inv.PaidDate == nil {
			a.stat.OutstandingCount++
			a.stat.OutstandingTotal = a.stat.OutstandingTotal.Add(inv.Amount)
			outstanding = append(outstanding, domain.OutstandingInvoice{
				InvoiceID:       inv.InvoiceID,
				Client:          inv.Client,
				Amount:          inv.Amount,
				DaysOutstanding: domain.DaysBetween(inv.DueDate, cfg.AnalysisDate),
			})
			continue
		}

		delay := domain.DaysBetween(inv.DueDate, *inv.PaidDate)
		a.stat.PaidCount++
		a.delayDays += delay
		if delay > cfg.GracePeriodDays {
			a.stat.LateCount++
		}
	}

	stats := make([]domain.ClientLatenessStat, 0, len(order))
	for _, client := range order {
		a := accs[client]
		if a.stat.PaidCount > 0 {
			a.stat.MeanDelayDays = float64(a.delayDays) / float64(a.stat.PaidCount)
		}
		stats = append(stats, a.stat)
	}

	// Worst payers first.
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].LateCount != stats[j].LateCount {
			return stats[i].LateCount > stats[j].LateCount
		}
		if stats[i].MeanDelayDays != stats[j].MeanDelayDays {
			return stats[i].MeanDelayDays > stats[j].MeanDelayDays
		}
		return stats[i].Client < stats[j].Client
	})

	sort.SliceStable(outstanding, func(i, j int) bool {
		if outstanding[i].DaysOutstanding != outstanding[j].DaysOutstanding {
			return outstanding[i].DaysOutstanding > outstanding[j].DaysOutstanding
		}
		return outstanding[i].InvoiceID < outstanding[j].InvoiceID
	})

	return stats, outstanding
}
