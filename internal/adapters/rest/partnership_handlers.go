package rest

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"addisnest-service/internal/core/port/usecases_port"
	"net/http"
)

type PartnershipHandlers struct {
	submitUC       usecases_port.SubmitPartnershipUseCasePort
	listUC         usecases_port.ListPartnershipsUseCasePort
	updateStatusUC usecases_port.UpdatePartnershipStatusUseCasePort
	validator      *requestValidator
}

func NewPartnershipHandlers(
	submitUC usecases_port.SubmitPartnershipUseCasePort,
	listUC usecases_port.ListPartnershipsUseCasePort,
	updateStatusUC usecases_port.UpdatePartnershipStatusUseCasePort,
) *PartnershipHandlers {
	return &PartnershipHandlers{
		submitUC:       submitUC,
		listUC:         listUC,
		updateStatusUC: updateStatusUC,
		validator:      newRequestValidator(),
	}
}

// Submit обрабатывает публичный POST /partnership-requests
func (h *PartnershipHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitPartnership"})

	var req PartnershipSubmitRequest
	if !bindJSON(w, r, logger, h.validator, &req) {
		return
	}

	created, err := h.submitUC.Execute(r.Context(), domain.PartnershipInput{
		CompanyName:     req.CompanyName,
		ContactName:     req.ContactName,
		Email:           req.Email,
		Phone:           req.Phone,
		PartnershipType: req.PartnershipType,
		Message:         req.Message,
	})
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, DataResponse{Success: true, Data: created})
}

// List обрабатывает GET /admin/partnership-requests?status&page&limit
func (h *PartnershipHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListPartnerships"})

	status := r.URL.Query().Get("status")
	if status != "" && !domain.IsValidPartnershipStatus(status) {
		WriteValidationError(w, "unknown partnership status", []string{"status"})
		return
	}

	page, limit := listPageParams(r)

	requests, total, err := h.listUC.Execute(r.Context(), domain.PartnershipFilter{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, PagedResponse{Success: true, Total: total, Page: page, Limit: limit, Data: requests})
}

// UpdateStatus обрабатывает PATCH /admin/partnership-requests/{id}
func (h *PartnershipHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdatePartnershipStatus"})

	id, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid partnership request id")
		return
	}

	var req PartnershipStatusRequest
	if !bindJSON(w, r, logger, h.validator, &req) {
		return
	}

	updated, err := h.updateStatusUC.Execute(r.Context(), id, req.Status)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Success: true, Data: updated})
}
