package usecase

import (
	"fmt"
	"time"

	"cashradar/internal/domain"

	"github.com/shopspring/decimal"
)

// Forecast projects the daily balance for cfg.ForecastHorizonDays past the
// last historical date. Each day's flow is the baseline mean daily net flow
// plus the signed expected amounts of recurring series predicted to occur
// that day. The first forecast day seeds from the ledger's closing balance,
// so the combined series is continuous at the boundary.
//
// Sparse history degrades to a zero baseline with a warning; it is never an
// error here (an empty ledger is rejected by the Normalizer).
func Forecast(ledger *domain.Ledger, recurring []domain.RecurringSeries, cfg domain.Config) ([]domain.DailyBalancePoint, []string) {
	var warnings []string

	baseline := decimal.Zero
	if len(ledger.Transactions) < cfg.MinBaselineTransactions {
		warnings = append(warnings, fmt.Sprintf(
			"only %d transaction(s) in history (minimum %d): baseline daily net flow degraded to zero",
			len(ledger.Transactions), cfg.MinBaselineTransactions))
	} else {
		baseline = baselineNetFlow(ledger, cfg.BaselineWindowDays)
	}

	end := ledger.End()
	horizonEnd := end.AddDate(0, 0, cfg.ForecastHorizonDays)
	recurringByDay := projectRecurring(recurring, horizonEnd)

	points := make([]domain.DailyBalancePoint, 0, cfg.ForecastHorizonDays)
	balance := ledger.ClosingBalance()
	for day := end.AddDate(0, 0, 1); !day.After(horizonEnd); day = day.AddDate(0, 0, 1) {
		balance = balance.Add(baseline).Add(recurringByDay[day])
		forecast := balance
		points = append(points, domain.DailyBalancePoint{Date: day, Forecast: &forecast})
	}
	return points, warnings
}

// baselineNetFlow is the mean daily net flow over the trailing window, or
// the full history when windowDays is zero. The divisor is the number of
// calendar days spanned, not the number of transaction days.
func baselineNetFlow(ledger *domain.Ledger, windowDays int) decimal.Decimal {
	start := ledger.Start()
	end := ledger.End()
	cutoff := time.Time{}
	days := domain.DaysBetween(start, end) + 1
	if windowDays > 0 && windowDays < days {
		cutoff = end.AddDate(0, 0, -windowDays)
		days = windowDays
	}

	sum := decimal.Zero
	for _, t := range ledger.Transactions {
		if !cutoff.IsZero() && !t.Date.After(cutoff) {
			continue
		}
		sum = sum.Add(t.NetAmount())
	}
	return sum.Div(decimal.NewFromInt(int64(days)))
}

// projectRecurring iterates each series' predicted occurrences through the
// horizon and sums their signed amounts per day.
func projectRecurring(recurring []domain.RecurringSeries, horizonEnd time.Time) map[time.Time]decimal.Decimal {
	flows := make(map[time.Time]decimal.Decimal)
	for _, s := range recurring {
		for occ := s.NextExpected; !occ.After(horizonEnd); occ = s.Advance(occ) {
			flows[occ] = flows[occ].Add(s.NetExpectedAmount())
		}
	}
	return flows
}
