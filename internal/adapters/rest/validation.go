package rest

import (
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator проверяет DTO по тегам validate.
// Имена полей в ошибках берутся из json-тегов, чтобы совпадать с телом запроса.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

// Struct возвращает *domain.ValidationError, чтобы ошибка шла по общему пути маппинга
func (rv *requestValidator) Struct(req interface{}) error {
	err := rv.validate.Struct(req)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	fields := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, fe.Field())
	}
	return domain.NewValidationError("invalid request fields", fields...)
}

// bindJSON декодирует тело в dst и проверяет его теги validate.
// false - ответ с ошибкой уже записан.
func bindJSON(w http.ResponseWriter, r *http.Request, logger port.LoggerPort, v *requestValidator, dst interface{}) bool {
	if err := decodeJSON(r, dst); err != nil {
		logger.Warn("Failed to decode request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := v.Struct(dst); err != nil {
		logger.Warn("Request validation failed", port.Fields{"error": err.Error()})
		writeUseCaseError(w, logger, err)
		return false
	}
	return true
}
