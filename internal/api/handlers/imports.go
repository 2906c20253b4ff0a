package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/service"
)

// maxUploadBytes limits CSV uploads.
const maxUploadBytes = 10 << 20

// ImportHandler handles CSV uploads and the import audit trail.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// ImportGeneralFunds handles uploads of the multi-fund percentage format.
//
// Endpoint: POST /api/import/general-funds
// Query Parameters:
//   - createMissing: optional bool, create general funds for unmatched names
//
// Request Body: CSV as the raw body or as the multipart field "file"
// Response: 200 OK with ImportResult
// Error: 400 Bad Request if the file cannot be parsed
// Error: 500 Internal Server Error if the import fails
func (h *ImportHandler) ImportGeneralFunds(w http.ResponseWriter, r *http.Request) {
	createMissing, err := request.ParseFlag("createMissing", r.URL.Query().Get("createMissing"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	fileName, body, err := uploadedFile(w, r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidImportFile.Error(), err.Error())
		return
	}
	defer body.Close()

	result, err := h.importService.ImportGeneralFunds(r.Context(), fileName, body, createMissing)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToImport)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// ImportSingleFund handles uploads of the single-fund format.
//
// Endpoint: POST /api/import/single-fund
// Request Body: CSV as the raw body or as the multipart field "file"
// Response: 200 OK with ImportResult
// Error: 400 Bad Request if the file cannot be parsed
// Error: 500 Internal Server Error if the import fails
func (h *ImportHandler) ImportSingleFund(w http.ResponseWriter, r *http.Request) {
	fileName, body, err := uploadedFile(w, r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidImportFile.Error(), err.Error())
		return
	}
	defer body.Close()

	result, err := h.importService.ImportSingleFund(r.Context(), fileName, body)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToImport)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Batches handles GET requests for the most recent import batches.
//
// Endpoint: GET /api/import/batches
// Query Parameters:
//   - limit: optional, 1 to 500 (default 50)
//
// Response: 200 OK with array of ImportBatch, newest first
// Error: 400 Bad Request if limit is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *ImportHandler) Batches(w http.ResponseWriter, r *http.Request) {
	limit, err := request.ParseBatchLimit(r.URL.Query().Get("limit"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	batches, err := h.importService.GetBatches(r.Context(), limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveImportBatches.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, batches)
}

// uploadedFile returns the uploaded CSV and its file name. Multipart requests
// must carry the file in the "file" field; any other content type is read as
// the raw CSV body.
func uploadedFile(w http.ResponseWriter, r *http.Request) (string, io.ReadCloser, error) {
	if r.Body == nil {
		return "", nil, errors.New("request body is empty")
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		return "", r.Body, nil
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("multipart field %q: %w", "file", err)
	}
	return header.Filename, file, nil
}
