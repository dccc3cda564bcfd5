// src/handlers/report_handler.go
package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/neurobalance/backend/src/logger"
	"github.com/username/neurobalance/backend/src/security/validation"
	"github.com/username/neurobalance/backend/src/services"
	"github.com/username/neurobalance/backend/src/utils"
)

type ReportHandler struct {
	importService services.ImportService
}

func NewReportHandler(service services.ImportService) *ReportHandler {
	return &ReportHandler{
		importService: service,
	}
}

func (h *ReportHandler) HandleGetReconciliationReport(w http.ResponseWriter, r *http.Request) {
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	if period == "" {
		utils.SendJSONError(w, "query parameter 'period' is required", http.StatusBadRequest)
		return
	}

	report, err := h.importService.GetReconciliationReport(period)
	if err != nil {
		logger.L.Error("Error retrieving reconciliation report", "period", period, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error retrieving reconciliation report for period %q", period), http.StatusInternalServerError)
		return
	}

	currentETag, etagErr := utils.GenerateETag(report)
	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("%q", currentETag)
		w.Header().Set("ETag", quotedETag)
		for _, cETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				logger.L.Debug("ETag match for reconciliation report", "period", period)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else {
		logger.L.Warn("Proceeding without ETag check due to ETag generation error", "period", period, "error", etagErr)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.L.Error("Error encoding JSON response for reconciliation report", "period", period, "error", err)
	}
}

// HandleExportReport renders the per-client breakdown as CSV for download.
// Text cells came from an upload, so they run through the formula-injection
// sanitizer on the way out.
func (h *ReportHandler) HandleExportReport(w http.ResponseWriter, r *http.Request) {
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	if period == "" {
		utils.SendJSONError(w, "query parameter 'period' is required", http.StatusBadRequest)
		return
	}

	report, err := h.importService.GetReconciliationReport(period)
	if err != nil {
		logger.L.Error("Error retrieving reconciliation report for export", "period", period, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error retrieving reconciliation report for period %q", period), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "reconciliation_"+period+".csv"))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"cliente", "data", "categoria", "descricao", "fatura", "prestacao", "estado", "metodo", "total"}
	if err := writer.Write(header); err != nil {
		logger.L.Error("Error writing CSV export header", "period", period, "error", err)
		return
	}

	for _, group := range report.Groups {
		for _, p := range group.Payments {
			record := []string{
				validation.SanitizeForFormulaInjection(group.ClientName),
				p.Date,
				validation.SanitizeForFormulaInjection(p.Category),
				validation.SanitizeForFormulaInjection(p.Description),
				validation.SanitizeForFormulaInjection(p.InvoiceRef),
				validation.SanitizeForFormulaInjection(p.InstallmentLabel),
				validation.SanitizeForFormulaInjection(p.Status),
				validation.SanitizeForFormulaInjection(p.Method),
				p.TotalAmount.StringFixed(2),
			}
			if err := writer.Write(record); err != nil {
				logger.L.Error("Error writing CSV export record", "period", period, "error", err)
				return
			}
		}
		subtotal := []string{"Total " + group.ClientName, "", "", "", "", "", "", "", group.TotalAmount.StringFixed(2)}
		if err := writer.Write(subtotal); err != nil {
			logger.L.Error("Error writing CSV export subtotal", "period", period, "error", err)
			return
		}
	}
}

func (h *ReportHandler) HandleGetUnmatchedPayments(w http.ResponseWriter, r *http.Request) {
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	if period == "" {
		utils.SendJSONError(w, "query parameter 'period' is required", http.StatusBadRequest)
		return
	}

	unmatched, err := h.importService.GetUnmatchedPayments(period)
	if err != nil {
		logger.L.Error("Error retrieving unmatched payments", "period", period, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error retrieving unmatched payments for period %q", period), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(unmatched); err != nil {
		logger.L.Error("Error encoding JSON response for unmatched payments", "period", period, "error", err)
	}
}

func (h *ReportHandler) HandleDeletePayments(w http.ResponseWriter, r *http.Request) {
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	if period == "" {
		utils.SendJSONError(w, "query parameter 'period' is required", http.StatusBadRequest)
		return
	}

	deleted, err := h.importService.DeletePaymentsForPeriod(period)
	if err != nil {
		logger.L.Error("Error deleting payments", "period", period, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error deleting payments for period %q", period), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"period": period, "deleted": deleted})
}
