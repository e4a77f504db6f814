package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Каналы доставки одноразового кода
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// MaxOTPAttempts - после стольких неверных попыток код перестает приниматься.
const MaxOTPAttempts = 5

// OTPCode - выданный одноразовый код. Сам код хранится только в виде bcrypt-хэша.
type OTPCode struct {
	ID          uuid.UUID
	Destination string
	Channel     string
	CodeHash    string
	Attempts    int
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// NewOTPCode генерирует числовой код заданной длины и возвращает запись и сам код.
func NewOTPCode(channel, destination string, length int, ttl time.Duration, now time.Time) (*OTPCode, string, error) {
	code, err := GenerateNumericCode(length)
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	return &OTPCode{
		ID:          uuid.New(),
		Destination: NormalizeDestination(channel, destination),
		Channel:     channel,
		CodeHash:    string(hash),
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
	}, code, nil
}

// Usable - код не истек и лимит попыток не исчерпан.
func (o *OTPCode) Usable(now time.Time) bool {
	return now.Before(o.ExpiresAt) && o.Attempts < MaxOTPAttempts
}

func (o *OTPCode) Matches(code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(o.CodeHash), []byte(strings.TrimSpace(code))) == nil
}

// GenerateNumericCode - криптостойкий код из цифр.
func GenerateNumericCode(length int) (string, error) {
	const digits = "0123456789"
	if length <= 0 {
		length = 6
	}
	code := make([]byte, length)
	for i := range length {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}
	return string(code), nil
}

// NormalizeDestination приводит email к нижнему регистру, у телефона убирает пробелы.
func NormalizeDestination(channel, destination string) string {
	if channel == ChannelEmail {
		return NormalizeEmail(destination)
	}
	return strings.ReplaceAll(strings.TrimSpace(destination), " ", "")
}

// ChannelForDestination угадывает канал по адресу назначения.
func ChannelForDestination(destination string) string {
	if strings.Contains(destination, "@") {
		return ChannelEmail
	}
	return ChannelSMS
}
