// src/handlers/import_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/username/neurobalance/backend/src/config"
	"github.com/username/neurobalance/backend/src/logger"
	"github.com/username/neurobalance/backend/src/security/validation"
	"github.com/username/neurobalance/backend/src/services"
	"github.com/username/neurobalance/backend/src/utils"
)

type ImportHandler struct {
	importService services.ImportService
}

func NewImportHandler(service services.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: service,
	}
}

func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		logger.L.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB (header check)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		logger.L.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		logger.L.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.L.Info("File content validated by magic bytes", "filename", fileHeader.Filename, "clientType", clientContentType, "detectedType", detectedContentType)

	source := strings.ToLower(r.FormValue("source"))
	if source == "" {
		source = sourceFromFilename(fileHeader.Filename)
	}
	period := strings.TrimSpace(r.FormValue("period"))
	if period == "" {
		period = config.Cfg.DefaultPeriodLabel
	}

	logger.L.Info("Processing import request", "filename", fileHeader.Filename, "source", source, "period", period)
	result, err := h.importService.ProcessImport(file, source, period, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrParsingFailed):
			logger.L.Warn("Import failed due to parsing errors", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error parsing export file: %v", err), http.StatusBadRequest)
		case errors.Is(err, services.ErrRegistryUnavailable):
			logger.L.Error("Import aborted: client registry unavailable", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "Client registry is unavailable; the import was not run.", http.StatusServiceUnavailable)
		default:
			logger.L.Error("Internal error processing import", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for import result", "error", err)
	}
}

func (h *ImportHandler) HandleListImports(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	batches, err := h.importService.ListImportBatches(limit)
	if err != nil {
		logger.L.Error("Error listing import batches", "error", err)
		utils.SendJSONError(w, "Error retrieving import history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(batches); err != nil {
		logger.L.Error("Error encoding JSON response for import batches", "error", err)
	}
}

// sourceFromFilename falls back to the file extension when the form does not
// name a source explicitly.
func sourceFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	default:
		return "csv"
	}
}
