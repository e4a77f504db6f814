package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// Провайдеры входа
const (
	ProviderLocal  = "local"
	ProviderOTP    = "otp"
	ProviderGoogle = "google"
)

// User - основная доменная сущность
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	AuthProvider string    `json:"authProvider"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Claims - это данные, которые мы "зашиваем" в JWT токен.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// IsAdmin - есть ли у владельца токена права администратора
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// NewUser создает нового пользователя с паролем. Хэширование пароля происходит здесь.
func NewUser(email, password, fullName, phone, role string) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if role != RoleAgent {
		role = RoleUser
	}

	return &User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		Phone:        strings.TrimSpace(phone),
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hashedPassword),
		Role:         role,
		AuthProvider: ProviderLocal,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NewPasswordlessUser - пользователь, впервые вошедший по коду или через Google.
func NewPasswordlessUser(email, phone, fullName, provider string) *User {
	return &User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		Phone:        strings.TrimSpace(phone),
		FullName:     strings.TrimSpace(fullName),
		Role:         RoleUser,
		AuthProvider: provider,
		IsVerified:   true,
		CreatedAt:    time.Now().UTC(),
	}
}

// CheckPassword сравнивает предоставленный пароль с хэшем, хранящимся у пользователя.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserStats - агрегаты по пользователям для панели администратора.
type UserStats struct {
	Total  int64            `json:"total"`
	ByRole map[string]int64 `json:"byRole"`
}

// RegistrationInput - данные формы регистрации.
type RegistrationInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     string
}
