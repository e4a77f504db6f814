package rest

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"addisnest-service/internal/core/port/usecases_port"
	"io"
	"mime/multipart"
	"net/http"
)

// uploadFormField - имя поля multipart-формы с файлами
const uploadFormField = "images"

// запас на заголовки частей и прочие поля формы
const multipartOverhead = 1 << 20

type UploadHandlers struct {
	uploadUC usecases_port.UploadImagesUseCasePort
}

func NewUploadHandlers(uploadUC usecases_port.UploadImagesUseCasePort) *UploadHandlers {
	return &UploadHandlers{uploadUC: uploadUC}
}

// UploadImages обрабатывает POST /uploads/images
func (h *UploadHandlers) UploadImages(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UploadImages"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxImagesPerUpload*domain.MaxImageSize+multipartOverhead)
	if err := r.ParseMultipartForm(domain.MaxImageSize); err != nil {
		logger.Warn("Failed to parse multipart form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[uploadFormField]
	if len(headers) == 0 {
		WriteValidationError(w, "no images provided", []string{uploadFormField})
		return
	}
	if len(headers) > domain.MaxImagesPerUpload {
		WriteValidationError(w, "too many images", []string{uploadFormField})
		return
	}

	files := make([]domain.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			logger.Warn("Failed to read uploaded file", port.Fields{"filename": fh.Filename, "error": err.Error()})
			WriteJSONError(w, http.StatusBadRequest, "Invalid uploaded file")
			return
		}
		files = append(files, domain.ImageUpload{Filename: fh.Filename, Data: data})
	}

	images, err := h.uploadUC.Execute(r.Context(), claims.UserID, files)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, DataResponse{Success: true, Data: images})
}

// readPart читает файл целиком, но не больше MaxImageSize+1 байт:
// лишний байт нужен, чтобы домен увидел превышение лимита.
func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, domain.MaxImageSize+1))
}
