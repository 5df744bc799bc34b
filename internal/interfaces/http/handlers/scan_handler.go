package handlers

import (
	"net/http"

	"github.com/turtacn/EatTrue/internal/application/scanning"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
)

// ScanHandler serves the scan endpoints.
type ScanHandler struct {
	svc    scanning.Service
	logger logging.Logger
}

// NewScanHandler creates a ScanHandler.
func NewScanHandler(svc scanning.Service, logger logging.Logger) *ScanHandler {
	return &ScanHandler{svc: svc, logger: logger}
}

// AnalyzeText handles POST /api/v1/scans/text.
func (h *ScanHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req scanning.TextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	req.UserID = getUserID(r, req.UserID)

	res, err := h.svc.AnalyzeText(r.Context(), &req)
	if err != nil {
		h.logger.WithContext(r.Context()).Debug("Text scan rejected", logging.Err(err))
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AnalyzeBarcode handles POST /api/v1/scans/barcode.
func (h *ScanHandler) AnalyzeBarcode(w http.ResponseWriter, r *http.Request) {
	var req scanning.BarcodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	req.UserID = getUserID(r, req.UserID)

	res, err := h.svc.AnalyzeBarcode(r.Context(), &req)
	if err != nil {
		h.logger.WithContext(r.Context()).Debug("Barcode scan rejected", logging.Err(err))
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

//Personal.AI order the ending
