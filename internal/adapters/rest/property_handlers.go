package rest

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/contracts"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"addisnest-service/internal/core/port/usecases_port"
	"net/http"
)

// PropertyHandlers - обработчики /api/properties
type PropertyHandlers struct {
	createUC       usecases_port.CreatePropertyUseCasePort
	listUC         usecases_port.ListPropertiesUseCasePort
	listMineUC     usecases_port.ListMyPropertiesUseCasePort
	getUC          usecases_port.GetPropertyUseCasePort
	updateUC       usecases_port.UpdatePropertyUseCasePort
	updateStatusUC usecases_port.UpdatePropertyStatusUseCasePort
	deleteUC       usecases_port.DeletePropertyUseCasePort
}

func NewPropertyHandlers(
	createUC usecases_port.CreatePropertyUseCasePort,
	listUC usecases_port.ListPropertiesUseCasePort,
	listMineUC usecases_port.ListMyPropertiesUseCasePort,
	getUC usecases_port.GetPropertyUseCasePort,
	updateUC usecases_port.UpdatePropertyUseCasePort,
	updateStatusUC usecases_port.UpdatePropertyStatusUseCasePort,
	deleteUC usecases_port.DeletePropertyUseCasePort,
) *PropertyHandlers {
	return &PropertyHandlers{
		createUC:       createUC,
		listUC:         listUC,
		listMineUC:     listMineUC,
		getUC:          getUC,
		updateUC:       updateUC,
		updateStatusUC: updateStatusUC,
		deleteUC:       deleteUC,
	}
}

// Create обрабатывает POST /properties.
// 201 - новая запись, 200 - вернули недавний дубль той же подачи.
func (h *PropertyHandlers) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateProperty"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	payload, ok := h.decodePayload(w, r, logger, contracts.PropertyCreateRequest)
	if !ok {
		return
	}

	record, created, err := h.createUC.Execute(r.Context(), claims.UserID, payload)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	status := http.StatusCreated
	if !created {
		logger.Info("Duplicate submission short-circuited", port.Fields{"property_id": record.ID.String()})
		status = http.StatusOK
	}
	RespondWithJSON(w, status, DataResponse{Success: true, Data: record})
}

// List обрабатывает GET /properties
func (h *PropertyHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})

	query := domain.ParseListingQuery(r.URL.Query())
	page, err := h.listUC.Execute(r.Context(), query)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newListResponse(page, query))
}

// ListMine обрабатывает GET /properties/mine
func (h *PropertyHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListMyProperties"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	query := domain.ParseListingQuery(r.URL.Query())
	page, err := h.listMineUC.Execute(r.Context(), claims.UserID, query)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newListResponse(page, query))
}

// Get обрабатывает GET /properties/{id}, каждый просмотр увеличивает счетчик
func (h *PropertyHandlers) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProperty"})

	id, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	record, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Success: true, Data: record})
}

// Update обрабатывает PATCH и PUT /properties/{id}, обе формы частичные
func (h *PropertyHandlers) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProperty"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	payload, ok := h.decodePayload(w, r, logger, contracts.PropertyUpdateRequest)
	if !ok {
		return
	}

	record, err := h.updateUC.Execute(r.Context(), *claims, id, payload)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Success: true, Data: record})
}

// UpdateStatus обрабатывает PATCH /properties/{id}/status (только админ)
func (h *PropertyHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdatePropertyStatus"})

	id, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	var req StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("Failed to decode status request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.updateStatusUC.Execute(r.Context(), id, domain.StatusUpdate{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Success: true, Data: record})
}

// Delete обрабатывает DELETE /properties/{id}
func (h *PropertyHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProperty"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), *claims, id); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodePayload читает тело как свободный JSON-объект и проверяет типы полей по схеме.
// Обязательные поля проверяет домен, чтобы вернуть их все одним ответом.
func (h *PropertyHandlers) decodePayload(w http.ResponseWriter, r *http.Request, logger port.LoggerPort, schemaKey string) (map[string]any, bool) {
	var payload map[string]any
	if err := decodeJSON(r, &payload); err != nil || payload == nil {
		logger.Warn("Failed to decode property request body", nil)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	if err := contracts.ValidatePayload(schemaKey, payload); err != nil {
		fields := contracts.InvalidFields(err)
		logger.Warn("Property payload rejected by schema", port.Fields{"fields": fields})
		WriteValidationError(w, "invalid field types", fields)
		return nil, false
	}
	return payload, true
}

func newListResponse(page *domain.ListingPage, query domain.ListingQuery) ListResponse {
	records := page.Records
	if records == nil {
		records = []domain.PropertyRecord{}
	}
	return ListResponse{
		Success:    true,
		Count:      len(records),
		Total:      page.Total,
		Pagination: domain.BuildPagination(page.Total, query.Page, query.Limit),
		Data:       records,
	}
}
