package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Defaults for analysis parameters not supplied by the caller.
const (
	DefaultForecastHorizonDays       = 90
	DefaultRecurrenceSpreadThreshold = 0.2
	DefaultGracePeriodDays           = 0
	DefaultTopKDrops                 = 10
	DefaultMinBaselineTransactions   = 1
)

// Config holds the user-supplied parameters of one analysis run. A run is a
// pure function of (transactions, invoices, Config); identical inputs must
// reproduce identical reports.
type Config struct {
	// OpeningBalance is the cash balance before the first transaction.
	OpeningBalance decimal.Decimal

	// RiskThreshold is the balance floor below which a day is flagged.
	// It has no default; risk detection requires the caller to choose it.
	RiskThreshold decimal.Decimal

	// ForecastHorizonDays is the number of days projected past the last
	// historical date.
	ForecastHorizonDays int

	// BaselineWindowDays limits the history used for the baseline daily
	// net flow. Zero means the full history.
	BaselineWindowDays int

	// RecurrenceSpreadThreshold is the maximum relative gap spread
	// (stddev/mean) for a group to count as recurring.
	RecurrenceSpreadThreshold float64

	// GracePeriodDays is the lateness tolerance before a paid invoice
	// counts as late.
	GracePeriodDays int

	// TopKDrops is how many biggest-drop days to surface.
	TopKDrops int

	// MinBaselineTransactions is the history size below which the
	// baseline net flow degrades to zero with a warning.
	MinBaselineTransactions int

	// AnalysisDate is the reference "today" for outstanding invoice
	// aging. Zero means the current date.
	AnalysisDate time.Time
}

// DefaultConfig returns a Config with all defaulted parameters filled in.
// RiskThreshold and OpeningBalance remain zero-valued for the caller to set.
func DefaultConfig() Config {
	return Config{
		ForecastHorizonDays:       DefaultForecastHorizonDays,
		RecurrenceSpreadThreshold: DefaultRecurrenceSpreadThreshold,
		GracePeriodDays:           DefaultGracePeriodDays,
		TopKDrops:                 DefaultTopKDrops,
		MinBaselineTransactions:   DefaultMinBaselineTransactions,
	}
}

// Validate checks parameter ranges and fills the analysis date when unset.
func (c *Config) Validate() error {
	if c.ForecastHorizonDays <= 0 {
		return fmt.Errorf("forecast horizon must be positive, got %d", c.ForecastHorizonDays)
	}
	if c.BaselineWindowDays < 0 {
		return fmt.Errorf("baseline window must not be negative, got %d", c.BaselineWindowDays)
	}
	if c.RecurrenceSpreadThreshold <= 0 {
		return fmt.Errorf("recurrence spread threshold must be positive, got %g", c.RecurrenceSpreadThreshold)
	}
	if c.GracePeriodDays < 0 {
		return fmt.Errorf("grace period must not be negative, got %d", c.GracePeriodDays)
	}
	if c.TopKDrops < 0 {
		return fmt.Errorf("top-K drops must not be negative, got %d", c.TopKDrops)
	}
	if c.MinBaselineTransactions < 1 {
		return fmt.Errorf("minimum baseline transactions must be at least 1, got %d", c.MinBaselineTransactions)
	}
	if c.AnalysisDate.IsZero() {
		now := time.Now().UTC()
		c.AnalysisDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return nil
}
