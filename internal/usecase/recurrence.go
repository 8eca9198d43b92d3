package usecase

import (
	"math"
	"sort"
	"time"

	"cashradar/internal/domain"

	"github.com/shopspring/decimal"
)

// periodBucket is a canonical recurrence period with its match tolerance.
// Tolerances widen with the period length.
type periodBucket struct {
	frequency domain.Frequency
	days      float64
	tolerance float64
}

var periodBuckets = []periodBucket{
	{domain.FrequencyWeekly, 7, 3},
	{domain.FrequencyBiweekly, 14, 3},
	{domain.FrequencyMonthly, 30, 3},
	{domain.FrequencyQuarterly, 91, 7},
	{domain.FrequencyAnnual, 365, 15},
}

func matchBucket(meanGap float64) (periodBucket, bool) {
	for _, b := range periodBuckets {
		if math.Abs(meanGap-b.days) <= b.tolerance {
			return b, true
		}
	}
	return periodBucket{}, false
}

// DetectRecurring scans the normalized ledger for income and expense groups
// that repeat at roughly regular intervals. Transactions are grouped by
// kind and GroupKey; a group is recurring when its inter-event gap spread is
// low and its mean gap lands in a canonical bucket. Groups with exactly two
// occurrences qualify only when their single gap matches a bucket, and their
// confidence is reduced by construction.
func DetectRecurring(transactions []domain.Transaction, cfg domain.Config) []domain.RecurringSeries {
	type group struct {
		kind domain.TransactionKind
		txs  []domain.Transaction
	}
	groups := make(map[string]*group)
	var order []string

	// transactions arrive date-sorted from the Normalizer, so group
	// members stay chronological.
	for _, t := range transactions {
		key := string(t.Kind) + "|" + t.GroupKey()
		g, ok := groups[key]
		if !ok {
			g = &group{kind: t.Kind}
			groups[key] = g
			order = append(order, key)
		}
		g.txs = append(g.txs, t)
	}

	var series []domain.RecurringSeries
	for _, key := range order {
		g := groups[key]
		if len(g.txs) < 2 {
			continue
		}

		gaps := make([]float64, 0, len(g.txs)-1)
		for i := 1; i < len(g.txs); i++ {
			gaps = append(gaps, float64(domain.DaysBetween(g.txs[i-1].Date, g.txs[i].Date)))
		}

		meanGap := mean(gaps)
		if meanGap <= 0 {
			continue
		}
		relSpread := stddev(gaps, meanGap) / meanGap
		if relSpread > cfg.RecurrenceSpreadThreshold {
			continue
		}
		bucket, ok := matchBucket(meanGap)
		if !ok {
			continue
		}

		dates := make([]time.Time, len(g.txs))
		amounts := make([]decimal.Decimal, len(g.txs))
		for i, t := range g.txs {
			dates[i] = t.Date
			amounts[i] = t.Amount
		}
		last := dates[len(dates)-1]

		s := domain.RecurringSeries{
			Key:            g.txs[0].GroupKey(),
			Kind:           g.kind,
			PeriodDays:     meanGap,
			Frequency:      bucket.frequency,
			ExpectedAmount: median(amounts),
			Confidence:     confidence(len(g.txs), relSpread, cfg.RecurrenceSpreadThreshold),
			ObservedDates:  dates,
			LastDate:       last,
		}
		s.NextExpected = s.Advance(last)
		series = append(series, s)
	}

	sort.SliceStable(series, func(i, j int) bool {
		if series[i].Confidence != series[j].Confidence {
			return series[i].Confidence > series[j].Confidence
		}
		if !series[i].ExpectedAmount.Equal(series[j].ExpectedAmount) {
			return series[i].ExpectedAmount.GreaterThan(series[j].ExpectedAmount)
		}
		return series[i].Key < series[j].Key
	})
	return series
}

// confidence scores a detected pattern in [0,1]: monotonic increasing in
// the occurrence count, decreasing in the relative gap spread.
func confidence(occurrences int, relSpread, spreadThreshold float64) float64 {
	c := (1 - 1/float64(occurrences)) * (1 - relSpread/(2*spreadThreshold))
	return math.Max(0, math.Min(1, c))
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// median resists one-off outlier amounts better than the mean.
func median(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}
