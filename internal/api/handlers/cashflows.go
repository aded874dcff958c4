package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Greggwolin/landscape-sub003/internal/api/request"
	"github.com/Greggwolin/landscape-sub003/internal/api/response"
	"github.com/Greggwolin/landscape-sub003/internal/apperrors"
	"github.com/Greggwolin/landscape-sub003/internal/service"
	"github.com/Greggwolin/landscape-sub003/internal/validation"
)

// CashFlowHandler handles HTTP requests for cash flow endpoints.
type CashFlowHandler struct {
	cashFlowService *service.CashFlowService
}

// NewCashFlowHandler creates a new CashFlowHandler with the provided service dependency.
func NewCashFlowHandler(cashFlowService *service.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{
		cashFlowService: cashFlowService,
	}
}

// CashFlowsPerProject handles GET requests to retrieve all cash flows for a project.
//
// Endpoint: GET /api/project/{uuid}/cashflow
// Response: 200 OK with array of CashFlow ordered by date
// Error: 404 Not Found if project not found
// Error: 500 Internal Server Error if retrieval fails
func (h *CashFlowHandler) CashFlowsPerProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	flows, err := h.cashFlowService.GetCashFlows(projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProjectNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve cash flows", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, flows)
}

// CreateCashFlow handles POST requests to add a cash flow to a project.
//
// Endpoint: POST /api/project/{uuid}/cashflow
// Request Body: CreateCashFlowRequest (periodId, date, amount)
// Response: 201 Created with CashFlow
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if project not found
// Error: 409 Conflict if the project already has a cash flow for the period
// Error: 500 Internal Server Error if creation fails
func (h *CashFlowHandler) CreateCashFlow(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateCashFlowRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCashFlow(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	cf, err := h.cashFlowService.CreateCashFlow(projectID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrProjectNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProjectNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDuplicateEntry):
			response.RespondError(w, http.StatusConflict, "project already has a cash flow for this period", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create cash flow", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, cf)
}

// UpdateCashFlow handles PUT requests to update an existing cash flow.
//
// Endpoint: PUT /api/cashflow/{uuid}
// Request Body: UpdateCashFlowRequest (all fields optional)
// Response: 200 OK with updated CashFlow
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if cash flow not found
// Error: 409 Conflict if the new period collides with an existing cash flow
// Error: 500 Internal Server Error if update fails
func (h *CashFlowHandler) UpdateCashFlow(w http.ResponseWriter, r *http.Request) {
	cashFlowID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateCashFlowRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateCashFlow(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	cf, err := h.cashFlowService.UpdateCashFlow(cashFlowID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCashFlowNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCashFlowNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDuplicateEntry):
			response.RespondError(w, http.StatusConflict, "project already has a cash flow for this period", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update cash flow", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, cf)
}

// DeleteCashFlow handles DELETE requests to remove a cash flow.
//
// Endpoint: DELETE /api/cashflow/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if cash flow not found
// Error: 500 Internal Server Error if deletion fails
func (h *CashFlowHandler) DeleteCashFlow(w http.ResponseWriter, r *http.Request) {
	cashFlowID := chi.URLParam(r, "uuid")

	if err := h.cashFlowService.DeleteCashFlow(cashFlowID); err != nil {
		if errors.Is(err, apperrors.ErrCashFlowNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCashFlowNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete cash flow", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
