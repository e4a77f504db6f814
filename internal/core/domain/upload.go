package domain

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxImageSize - предельный размер одного изображения.
const MaxImageSize = 5 << 20

// MaxImagesPerUpload - сколько файлов принимается за один запрос.
const MaxImagesPerUpload = 10

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageUpload - один загруженный файл.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// DetectImageType определяет тип по содержимому, а не по имени файла или заголовку клиента.
func DetectImageType(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if _, ok := imageExtensions[contentType]; !ok {
		return "", NewValidationError(fmt.Sprintf("unsupported image type %q", contentType), "images")
	}
	return contentType, nil
}

// ValidateImage проверяет размер и тип одного файла.
func ValidateImage(upload ImageUpload) (string, error) {
	if len(upload.Data) == 0 {
		return "", NewValidationError("empty image file", "images")
	}
	if len(upload.Data) > MaxImageSize {
		return "", NewValidationError(fmt.Sprintf("image %q exceeds 5MB", upload.Filename), "images")
	}
	return DetectImageType(upload.Data)
}

// ImageObjectKey - ключ объекта: properties/<owner>/<дата>/<uuid>.<ext>
func ImageObjectKey(ownerID uuid.UUID, contentType string, now time.Time) string {
	return path.Join("properties", ownerID.String(), now.UTC().Format("2006/01/02"), uuid.NewString()+imageExtensions[contentType])
}

// ImageCaption - подпись по умолчанию из имени файла без расширения.
func ImageCaption(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
