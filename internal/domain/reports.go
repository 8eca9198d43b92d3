package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DailyBalancePoint is one day on the combined balance chart. Historical
// days carry Actual, forecast days carry Forecast; exactly one is set.
type DailyBalancePoint struct {
	Date     time.Time        `json:"date"`
	Actual   *decimal.Decimal `json:"actual_balance,omitempty"`
	Forecast *decimal.Decimal `json:"forecast_balance,omitempty"`
}

// Balance returns whichever side of the point is populated.
func (p DailyBalancePoint) Balance() decimal.Decimal {
	if p.Actual != nil {
		return *p.Actual
	}
	if p.Forecast != nil {
		return *p.Forecast
	}
	return decimal.Zero
}

// IsForecast reports whether the point belongs to the projected horizon.
func (p DailyBalancePoint) IsForecast() bool {
	return p.Forecast != nil
}

// Frequency labels the canonical period bucket a recurring series matched.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
)

// RecurringSeries is a detected repeating income or expense pattern.
type RecurringSeries struct {
	Key            string          `json:"key"`
	Kind           TransactionKind `json:"kind"`
	PeriodDays     float64         `json:"period_days"`
	Frequency      Frequency       `json:"frequency"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	Confidence     float64         `json:"confidence"`
	ObservedDates  []time.Time     `json:"observed_dates"`
	LastDate       time.Time       `json:"last_date"`
	NextExpected   time.Time       `json:"next_expected"`
}

// Advance returns the predicted occurrence after from. Month-scale buckets
// advance by calendar months so a payment observed on the 5th stays on the
// 5th; day-scale buckets advance by the rounded mean gap.
func (s RecurringSeries) Advance(from time.Time) time.Time {
	switch s.Frequency {
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return from.AddDate(0, 3, 0)
	case FrequencyAnnual:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 0, int(math.Round(s.PeriodDays)))
	}
}

// NetExpectedAmount returns the signed expected amount for forecasting.
func (s RecurringSeries) NetExpectedAmount() decimal.Decimal {
	if s.Kind == KindExpense {
		return s.ExpectedAmount.Neg()
	}
	return s.ExpectedAmount
}

// RiskDay is a day whose balance falls strictly below the risk threshold.
type RiskDay struct {
	Date       time.Time       `json:"date"`
	Balance    decimal.Decimal `json:"balance"`
	Forecasted bool            `json:"forecasted"`
}

// DropDay is a day ranked by how much net cash flowed out.
type DropDay struct {
	Date    time.Time       `json:"date"`
	NetFlow decimal.Decimal `json:"net_flow"`
	Balance decimal.Decimal `json:"balance"`
}

// LatenessRecord is the delay derived from a single paid invoice.
// DelayDays is negative when the invoice was paid early.
type LatenessRecord struct {
	InvoiceID string `json:"invoice_id"`
	Client    string `json:"client"`
	DelayDays int    `json:"delay_days"`
}

// ClientLatenessStat aggregates payment behavior for one client.
type ClientLatenessStat struct {
	Client           string          `json:"client"`
	PaidCount        int             `json:"paid_count"`
	MeanDelayDays    float64         `json:"mean_delay_days"`
	LateCount        int             `json:"late_count"`
	OutstandingCount int             `json:"outstanding_count"`
	OutstandingTotal decimal.Decimal `json:"outstanding_total"`
}

// OutstandingInvoice is an unpaid invoice as of the analysis date.
// DaysOutstanding is negative when the invoice is not yet due.
type OutstandingInvoice struct {
	InvoiceID       string          `json:"invoice_id"`
	Client          string          `json:"client"`
	Amount          decimal.Decimal `json:"amount"`
	DaysOutstanding int             `json:"days_outstanding"`
}

// Summary provides the headline metrics of an analysis run.
type Summary struct {
	TimeframeStart        string           `json:"timeframe_start"`
	TimeframeEnd          string           `json:"timeframe_end"`
	HorizonEnd            string           `json:"horizon_end"`
	TransactionsProcessed int              `json:"transactions_processed"`
	InvoicesProcessed     int              `json:"invoices_processed"`
	OpeningBalance        decimal.Decimal  `json:"opening_balance"`
	ClosingBalance        decimal.Decimal  `json:"closing_balance"`
	LowestBalance         decimal.Decimal  `json:"lowest_balance"`
	LowestBalanceDate     string           `json:"lowest_balance_date"`
	RiskDayCount          int              `json:"risk_day_count"`
	FirstRiskDate         string           `json:"first_risk_date,omitempty"`
	FirstRiskBalance      *decimal.Decimal `json:"first_risk_balance,omitempty"`
}

// Report is the full output of one analysis run, consumed as-is by the
// surrounding UI.
type Report struct {
	Summary        Summary              `json:"summary"`
	Balances       []DailyBalancePoint  `json:"balances"`
	RiskDays       []RiskDay            `json:"risk_days"`
	BiggestDrops   []DropDay            `json:"biggest_drops"`
	Recurring      []RecurringSeries    `json:"recurring"`
	ClientLateness []ClientLatenessStat `json:"client_lateness"`
	Outstanding    []OutstandingInvoice `json:"outstanding_invoices"`
	Warnings       []string             `json:"warnings,omitempty"`
	InvoiceError   string               `json:"invoice_error,omitempty"`
}
