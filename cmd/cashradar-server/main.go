package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"cashradar/internal/config"
	"cashradar/internal/gateway"
	"cashradar/internal/handler"
	"cashradar/internal/usecase"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize layers
	repo := gateway.NewCSVLedgerRepository()
	uc := usecase.NewAnalysisUseCase(repo, logger)
	h := handler.NewHandler(uc, logger, cfg.MaxUploadBytes)

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/analyze", h.Analyze).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
