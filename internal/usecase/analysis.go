package usecase

import (
	"context"
	"fmt"
	"time"

	"cashradar/internal/domain"

	"github.com/sirupsen/logrus"
)

// AnalysisUseCase orchestrates the cash-flow analysis pipeline:
// normalize -> detect recurrence -> forecast -> risk/drops, with the
// invoice lateness branch running independently of the forecast.
type AnalysisUseCase struct {
	repo LedgerRepository
	log  logrus.FieldLogger
}

// NewAnalysisUseCase creates a new instance of the usecase.
func NewAnalysisUseCase(repo LedgerRepository, log logrus.FieldLogger) *AnalysisUseCase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AnalysisUseCase{repo: repo, log: log}
}

// Analyze reads the input files through the repository and runs the
// pipeline. invoicePath may be empty; a failing invoices file is reported
// in Report.InvoiceError and never aborts the transaction analysis.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, transactionsPath, invoicePath string, cfg domain.Config) (*domain.Report, error) {
	rows, err := uc.repo.GetTransactionRows(ctx, transactionsPath)
	if err != nil {
		return nil, fmt.Errorf("could not get transaction rows: %w", err)
	}

	var invoiceRows []domain.InvoiceRow
	var invoiceErr error
	if invoicePath != "" {
		invoiceRows, invoiceErr = uc.repo.GetInvoiceRows(ctx, invoicePath)
	}

	report, err := uc.AnalyzeRows(ctx, rows, invoiceRows, cfg)
	if err != nil {
		return nil, err
	}
	if invoiceErr != nil {
		uc.log.WithError(invoiceErr).Warn("invoice analysis skipped")
		report.InvoiceError = invoiceErr.Error()
	}
	return report, nil
}

// AnalyzeRows runs the pipeline over already-read raw rows. It is the pure
// core behind Analyze and the HTTP upload handler: identical rows and
// config always produce an identical report.
func (uc *AnalysisUseCase) AnalyzeRows(ctx context.Context, transactionRows []domain.TransactionRow, invoiceRows []domain.InvoiceRow, cfg domain.Config) (*domain.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	ledger, err := NormalizeTransactions(transactionRows, cfg)
	if err != nil {
		return nil, err
	}

	recurring := DetectRecurring(ledger.Transactions, cfg)
	forecast, warnings := Forecast(ledger, recurring, cfg)

	combined := make([]domain.DailyBalancePoint, 0, len(ledger.Balances)+len(forecast))
	combined = append(combined, ledger.Balances...)
	combined = append(combined, forecast...)

	riskDays := DetectRiskDays(combined, cfg.RiskThreshold)

	report := &domain.Report{
		Summary:        buildSummary(ledger, combined, riskDays, cfg),
		Balances:       combined,
		RiskDays:       riskDays,
		BiggestDrops:   RankBiggestDrops(combined, cfg.OpeningBalance, cfg.TopKDrops),
		Recurring:      recurring,
		ClientLateness: make([]domain.ClientLatenessStat, 0),
		Outstanding:    make([]domain.OutstandingInvoice, 0),
		Warnings:       warnings,
	}

	if invoiceRows != nil {
		invoices, err := NormalizeInvoices(invoiceRows)
		if err != nil {
			uc.log.WithError(err).Warn("invoice analysis skipped")
			report.InvoiceError = err.Error()
		} else {
			report.ClientLateness, report.Outstanding = AnalyzeLateness(invoices, cfg)
			report.Summary.InvoicesProcessed = len(invoices)
		}
	}

	return report, nil
}

func buildSummary(ledger *domain.Ledger, combined []domain.DailyBalancePoint, riskDays []domain.RiskDay, cfg domain.Config) domain.Summary {
	lowest := combined[0]
	for _, p := range combined[1:] {
		if p.Balance().LessThan(lowest.Balance()) {
			lowest = p
		}
	}

	s := domain.Summary{
		TimeframeStart:        ledger.Start().Format(time.DateOnly),
		TimeframeEnd:          ledger.End().Format(time.DateOnly),
		HorizonEnd:            combined[len(combined)-1].Date.Format(time.DateOnly),
		TransactionsProcessed: len(ledger.Transactions),
		OpeningBalance:        cfg.OpeningBalance,
		ClosingBalance:        ledger.ClosingBalance(),
		LowestBalance:         lowest.Balance(),
		LowestBalanceDate:     lowest.Date.Format(time.DateOnly),
		RiskDayCount:          len(riskDays),
	}
	if len(riskDays) > 0 {
		first := riskDays[0]
		s.FirstRiskDate = first.Date.Format(time.DateOnly)
		balance := first.Balance
		s.FirstRiskBalance = &balance
	}
	return s
}
