package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cashradar/internal/domain"
	"cashradar/internal/gateway"
	"cashradar/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	// Define command-line flags
	transactionsFile := flag.String("transactions", "", "Path to the transactions CSV file (required)")
	invoicesFile := flag.String("invoices", "", "Path to the invoices CSV file (optional)")
	thresholdStr := flag.String("threshold", "", "Risk threshold balance; days below it are flagged (required)")
	openingStr := flag.String("opening-balance", "0", "Cash balance before the first transaction")
	horizon := flag.Int("horizon", domain.DefaultForecastHorizonDays, "Forecast horizon in days")
	window := flag.Int("window", 0, "Baseline window in days (0 = full history)")
	grace := flag.Int("grace", domain.DefaultGracePeriodDays, "Invoice lateness grace period in days")
	topK := flag.Int("top", domain.DefaultTopKDrops, "Number of biggest-drop days to report")
	spread := flag.Float64("spread", domain.DefaultRecurrenceSpreadThreshold, "Max relative gap spread for recurrence detection")
	asOfStr := flag.String("as-of", "", "Reference date for outstanding invoice aging (YYYY-MM-DD, default today)")
	flag.Parse()

	decimal.MarshalJSONWithoutQuotes = true

	// Validate required flags
	if *transactionsFile == "" || *thresholdStr == "" {
		fmt.Println("Error: flags -transactions and -threshold are required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg := domain.DefaultConfig()
	cfg.ForecastHorizonDays = *horizon
	cfg.BaselineWindowDays = *window
	cfg.GracePeriodDays = *grace
	cfg.TopKDrops = *topK
	cfg.RecurrenceSpreadThreshold = *spread

	threshold, err := decimal.NewFromString(*thresholdStr)
	if err != nil {
		log.Fatalf("Error parsing threshold: %v", err)
	}
	cfg.RiskThreshold = threshold

	opening, err := decimal.NewFromString(*openingStr)
	if err != nil {
		log.Fatalf("Error parsing opening balance: %v", err)
	}
	cfg.OpeningBalance = opening

	if *asOfStr != "" {
		asOf, err := time.Parse(time.DateOnly, *asOfStr)
		if err != nil {
			log.Fatalf("Error parsing as-of date: %v", err)
		}
		cfg.AnalysisDate = asOf
	}

	// --- Dependency Injection (Wiring the application) ---

	// 1. Create the repository (the outermost layer)
	csvRepo := gateway.NewCSVLedgerRepository()

	// 2. Create the usecase and inject the repository (the core logic layer)
	analysisUseCase := usecase.NewAnalysisUseCase(csvRepo, logrus.StandardLogger())

	// --- Execute the Usecase ---
	report, err := analysisUseCase.Analyze(context.Background(), *transactionsFile, *invoicesFile, cfg)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON report: %v", err)
	}

	fmt.Println(string(output))
}
