package rest

import (
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteValidationError - 400 со списком полей, не прошедших проверку
func WriteValidationError(w http.ResponseWriter, message string, fields []string) {
	RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Fields: fields})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// writeUseCaseError переводит ошибку use case в HTTP-статус.
// Все, что не распознано, уходит клиенту как 500 с общим текстом, детали только в лог.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		WriteValidationError(w, vErr.Message, vErr.Fields)
	case errors.Is(err, domain.ErrPropertyNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPartnershipNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrInvalidOTP):
		WriteJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrEmailInUse):
		WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrChannelNotConfigured),
		errors.Is(err, domain.ErrProviderDisabled),
		errors.Is(err, domain.ErrUploadsDisabled):
		WriteJSONError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("Request failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON читает тело запроса в dst, неизвестные поля игнорируются
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// uuidParam разбирает параметр пути chi как UUID
func uuidParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

// pageParams - page/limit из query, некорректные значения заменяются нулем, use case подставит дефолты
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// listPageParams - page/limit с дефолтами и верхней границей для админских списков
func listPageParams(r *http.Request) (int, int) {
	page, limit := pageParams(r)
	if page < 1 {
		page = domain.DefaultPage
	}
	if limit < 1 {
		limit = domain.DefaultLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}
	return page, limit
}
