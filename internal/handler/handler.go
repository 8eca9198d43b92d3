package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cashradar/internal/domain"
	"cashradar/internal/gateway"
	"cashradar/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Handler binds multipart CSV uploads and form parameters to the analysis
// usecase. Every request builds a fresh config and runs the pure pipeline;
// nothing is cached between requests.
type Handler struct {
	uc        *usecase.AnalysisUseCase
	log       logrus.FieldLogger
	maxUpload int64
}

func NewHandler(uc *usecase.AnalysisUseCase, log logrus.FieldLogger, maxUpload int64) *Handler {
	return &Handler{uc: uc, log: log, maxUpload: maxUpload}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Analyze runs one analysis over an uploaded transactions file (form field
// "transactions", required) and an optional "invoices" file. A bad invoices
// file is reported inside the 200 response; it never fails the request.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	txFile, _, err := r.FormFile("transactions")
	if err != nil {
		http.Error(w, "transactions file is required", http.StatusBadRequest)
		return
	}
	defer txFile.Close()

	txRows, err := gateway.ParseTransactionRows(txFile)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid transactions file: %v", err), http.StatusBadRequest)
		return
	}

	var invoiceRows []domain.InvoiceRow
	var invoiceErr error
	if invFile, _, err := r.FormFile("invoices"); err == nil {
		defer invFile.Close()
		invoiceRows, invoiceErr = gateway.ParseInvoiceRows(invFile)
		if invoiceErr != nil {
			invoiceErr = fmt.Errorf("invalid invoices file: %w", invoiceErr)
		}
	}

	cfg, err := configFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.uc.AnalyzeRows(r.Context(), txRows, invoiceRows, cfg)
	if err != nil {
		if domain.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.WithError(err).Error("analysis failed")
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}
	if invoiceErr != nil && report.InvoiceError == "" {
		h.log.WithError(invoiceErr).Warn("invoice analysis skipped")
		report.InvoiceError = invoiceErr.Error()
	}

	writeJSON(w, http.StatusOK, report)
}

// configFromForm assembles the analysis config from form values, applying
// the documented defaults. The risk threshold has no default and is
// required.
func configFromForm(r *http.Request) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	raw := r.FormValue("threshold")
	if raw == "" {
		return cfg, fmt.Errorf("threshold parameter is required")
	}
	threshold, err := decimal.NewFromString(raw)
	if err != nil {
		return cfg, fmt.Errorf("invalid threshold %q", raw)
	}
	cfg.RiskThreshold = threshold

	if raw := r.FormValue("opening_balance"); raw != "" {
		opening, err := decimal.NewFromString(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid opening_balance %q", raw)
		}
		cfg.OpeningBalance = opening
	}
	if err := intParam(r, "horizon", &cfg.ForecastHorizonDays); err != nil {
		return cfg, err
	}
	if err := intParam(r, "window", &cfg.BaselineWindowDays); err != nil {
		return cfg, err
	}
	if err := intParam(r, "grace", &cfg.GracePeriodDays); err != nil {
		return cfg, err
	}
	if err := intParam(r, "top", &cfg.TopKDrops); err != nil {
		return cfg, err
	}
	if raw := r.FormValue("spread"); raw != "" {
		spread, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid spread %q", raw)
		}
		cfg.RecurrenceSpreadThreshold = spread
	}
	if raw := r.FormValue("as_of"); raw != "" {
		asOf, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid as_of date %q (want YYYY-MM-DD)", raw)
		}
		cfg.AnalysisDate = asOf
	}

	return cfg, nil
}

func intParam(r *http.Request, name string, dst *int) error {
	raw := r.FormValue(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q", name, raw)
	}
	*dst = n
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
