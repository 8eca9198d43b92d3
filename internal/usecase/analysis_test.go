package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cashradar/internal/domain"
	"cashradar/internal/usecase"
	mock_usecase "cashradar/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func rentScenarioRows() []domain.TransactionRow {
	return []domain.TransactionRow{
		{Index: 1, Date: "2024-01-01", Kind: "income", Amount: "5000"},
		{Index: 2, Date: "2024-01-05", Kind: "expense", Amount: "1200", Category: "Rent"},
		{Index: 3, Date: "2024-02-05", Kind: "expense", Amount: "1200", Category: "Rent"},
		{Index: 4, Date: "2024-03-05", Kind: "expense", Amount: "1200", Category: "Rent"},
	}
}

func rentScenarioConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.RiskThreshold = decimal.Zero
	cfg.AnalysisDate = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	return cfg
}

func TestAnalysisUseCase_RentScenario(t *testing.T) {
	uc := usecase.NewAnalysisUseCase(nil, testLogger())

	report, err := uc.AnalyzeRows(context.Background(), rentScenarioRows(), nil, rentScenarioConfig())
	require.NoError(t, err)
	require.NotNil(t, report)

	// One recurring monthly Rent series of 1200.
	require.Len(t, report.Recurring, 1)
	rent := report.Recurring[0]
	assert.Equal(t, "Rent", rent.Key)
	assert.Equal(t, domain.FrequencyMonthly, rent.Frequency)
	assert.InDelta(t, 30, rent.PeriodDays, 1)
	assert.True(t, rent.ExpectedAmount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC), rent.NextExpected)

	// 65 historical days (Jan 1 .. Mar 5) plus the 90-day horizon.
	require.Len(t, report.Balances, 65+90)

	byDate := make(map[string]decimal.Decimal, len(report.Balances))
	for _, p := range report.Balances {
		byDate[p.Date.Format(time.DateOnly)] = p.Balance()
	}

	// Baseline: net 1400 over the 65-day history.
	baseline := decimal.NewFromInt(1400).Div(decimal.NewFromInt(65))

	// Continuity at the historical/forecast boundary.
	assert.True(t, byDate["2024-03-06"].Equal(byDate["2024-03-05"].Add(baseline)))
	assert.True(t, byDate["2024-03-05"].Equal(decimal.NewFromInt(1400)))

	// The projected rent hits 2024-04-05.
	aprilFlow := byDate["2024-04-05"].Sub(byDate["2024-04-04"])
	assert.True(t, aprilFlow.Equal(baseline.Sub(decimal.NewFromInt(1200))),
		"expected projected -1200 flow on 2024-04-05, got %s", aprilFlow)

	// Balance never dips below the zero threshold in this scenario.
	assert.Empty(t, report.RiskDays)
	assert.Equal(t, 0, report.Summary.RiskDayCount)

	// Drops: the three historical rent days, then the two projected ones.
	require.Len(t, report.BiggestDrops, 5)
	for i, want := range []string{"2024-01-05", "2024-02-05", "2024-03-05"} {
		assert.Equal(t, want, report.BiggestDrops[i].Date.Format(time.DateOnly))
		assert.True(t, report.BiggestDrops[i].NetFlow.Equal(decimal.NewFromInt(-1200)))
	}
	assert.Equal(t, "2024-04-05", report.BiggestDrops[3].Date.Format(time.DateOnly))
	assert.Equal(t, "2024-05-05", report.BiggestDrops[4].Date.Format(time.DateOnly))

	// Summary headline metrics.
	assert.Equal(t, "2024-01-01", report.Summary.TimeframeStart)
	assert.Equal(t, "2024-03-05", report.Summary.TimeframeEnd)
	assert.Equal(t, 4, report.Summary.TransactionsProcessed)
	assert.True(t, report.Summary.ClosingBalance.Equal(decimal.NewFromInt(1400)))
}

func TestAnalysisUseCase_Deterministic(t *testing.T) {
	uc := usecase.NewAnalysisUseCase(nil, testLogger())

	first, err := uc.AnalyzeRows(context.Background(), rentScenarioRows(), nil, rentScenarioConfig())
	require.NoError(t, err)
	second, err := uc.AnalyzeRows(context.Background(), rentScenarioRows(), nil, rentScenarioConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalysisUseCase_InvoiceBranch(t *testing.T) {
	uc := usecase.NewAnalysisUseCase(nil, testLogger())

	invoiceRows := []domain.InvoiceRow{
		{Index: 1, InvoiceID: "INV-1", Client: "Acme", IssueDate: "2024-01-01", DueDate: "2024-01-31", PaidDate: "2024-02-15", Amount: "750"},
	}

	report, err := uc.AnalyzeRows(context.Background(), rentScenarioRows(), invoiceRows, rentScenarioConfig())
	require.NoError(t, err)

	assert.Empty(t, report.InvoiceError)
	assert.Equal(t, 1, report.Summary.InvoicesProcessed)
	require.Len(t, report.ClientLateness, 1)
	assert.Equal(t, "Acme", report.ClientLateness[0].Client)
	assert.Equal(t, 15.0, report.ClientLateness[0].MeanDelayDays)
	assert.Equal(t, 1, report.ClientLateness[0].LateCount)
}

func TestAnalysisUseCase_InvoiceFailureIsolation(t *testing.T) {
	uc := usecase.NewAnalysisUseCase(nil, testLogger())

	// Duplicate invoice ids invalidate the invoices file, but the
	// transaction analysis must still succeed.
	invoiceRows := []domain.InvoiceRow{
		{Index: 1, InvoiceID: "INV-1", Client: "Acme", IssueDate: "2024-01-01", DueDate: "2024-01-31", Amount: "750"},
		{Index: 2, InvoiceID: "INV-1", Client: "Acme", IssueDate: "2024-01-02", DueDate: "2024-02-01", Amount: "100"},
	}

	report, err := uc.AnalyzeRows(context.Background(), rentScenarioRows(), invoiceRows, rentScenarioConfig())
	require.NoError(t, err)

	assert.NotEmpty(t, report.InvoiceError)
	assert.Empty(t, report.ClientLateness)
	assert.Len(t, report.Recurring, 1)
}

func TestAnalysisUseCase_ValidationErrorAborts(t *testing.T) {
	uc := usecase.NewAnalysisUseCase(nil, testLogger())

	rows := []domain.TransactionRow{
		{Index: 1, Date: "2024-01-01", Kind: "transfer", Amount: "10"},
	}
	_, err := uc.AnalyzeRows(context.Background(), rows, nil, rentScenarioConfig())
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestAnalysisUseCase_Analyze_Repository(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("reads transactions and invoices through the repository", func(t *testing.T) {
		repo := mock_usecase.NewMockLedgerRepository(ctrl)
		repo.EXPECT().
			GetTransactionRows(gomock.Any(), "transactions.csv").
			Return(rentScenarioRows(), nil)
		repo.EXPECT().
			GetInvoiceRows(gomock.Any(), "invoices.csv").
			Return([]domain.InvoiceRow{
				{Index: 1, InvoiceID: "INV-1", Client: "Acme", IssueDate: "2024-01-01", DueDate: "2024-01-31", PaidDate: "2024-02-15", Amount: "750"},
			}, nil)

		uc := usecase.NewAnalysisUseCase(repo, testLogger())
		report, err := uc.Analyze(ctx, "transactions.csv", "invoices.csv", rentScenarioConfig())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Summary.InvoicesProcessed)
	})

	t.Run("transaction read failure aborts the run", func(t *testing.T) {
		repo := mock_usecase.NewMockLedgerRepository(ctrl)
		repo.EXPECT().
			GetTransactionRows(gomock.Any(), "transactions.csv").
			Return(nil, errors.New("failed to read transactions"))

		uc := usecase.NewAnalysisUseCase(repo, testLogger())
		report, err := uc.Analyze(ctx, "transactions.csv", "", rentScenarioConfig())
		assert.Error(t, err)
		assert.Nil(t, report)
	})

	t.Run("invoice read failure is isolated", func(t *testing.T) {
		repo := mock_usecase.NewMockLedgerRepository(ctrl)
		repo.EXPECT().
			GetTransactionRows(gomock.Any(), "transactions.csv").
			Return(rentScenarioRows(), nil)
		repo.EXPECT().
			GetInvoiceRows(gomock.Any(), "invoices.csv").
			Return(nil, errors.New("failed to read invoices"))

		uc := usecase.NewAnalysisUseCase(repo, testLogger())
		report, err := uc.Analyze(ctx, "transactions.csv", "invoices.csv", rentScenarioConfig())
		require.NoError(t, err)
		require.NotNil(t, report)
		assert.Contains(t, report.InvoiceError, "failed to read invoices")
		assert.Len(t, report.Recurring, 1)
	})

	t.Run("empty invoice path skips the invoice branch", func(t *testing.T) {
		repo := mock_usecase.NewMockLedgerRepository(ctrl)
		repo.EXPECT().
			GetTransactionRows(gomock.Any(), "transactions.csv").
			Return(rentScenarioRows(), nil)

		uc := usecase.NewAnalysisUseCase(repo, testLogger())
		report, err := uc.Analyze(ctx, "transactions.csv", "", rentScenarioConfig())
		require.NoError(t, err)
		assert.Empty(t, report.InvoiceError)
		assert.Equal(t, 0, report.Summary.InvoicesProcessed)
	})
}
