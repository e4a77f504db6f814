package domain

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
)

// GeoCellPrecision - длина geohash-ячейки, ~150м x 150м.
const GeoCellPrecision = 7

// buildFingerprintPayload собирает стабильную строку из ключевых полей заявки.
// Поля те же, что сравнивает защита от повторной отправки.
func buildFingerprintPayload(ownerID uuid.UUID, title string, price float64, propertyType string) string {
	parts := []string{
		ownerID.String(),
		strings.TrimSpace(title),
		fmt.Sprintf("%f", price),
		propertyType,
	}
	return strings.Join(parts, "|")
}

// SubmissionFingerprint - sha256 от владельца, заголовка, цены и типа объекта.
func SubmissionFingerprint(ownerID uuid.UUID, title string, price float64, propertyType string) string {
	sum := sha256.Sum256([]byte(buildFingerprintPayload(ownerID, title, price, propertyType)))
	return fmt.Sprintf("%x", sum)
}

// GeoCell кодирует координаты в geohash-ячейку для фильтра "рядом".
func GeoCell(point *GeoPoint) string {
	if point == nil {
		return ""
	}
	return geohash.EncodeWithPrecision(point.Lat, point.Lng, GeoCellPrecision)
}
