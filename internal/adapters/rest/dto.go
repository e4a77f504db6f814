package rest

import (
	"addisnest-service/internal/core/domain"
)

// RegisterRequest - тело запроса для регистрации.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Role     string `json:"role" validate:"omitempty,oneof=user agent"`
}

// LoginRequest - тело запроса для входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OTPRequest - запрос кода подтверждения. Канал можно не указывать, он выводится из адреса.
type OTPRequest struct {
	Channel     string `json:"channel" validate:"omitempty,oneof=email sms"`
	Destination string `json:"destination" validate:"required,max=254"`
}

type OTPVerifyRequest struct {
	Destination string `json:"destination" validate:"required,max=254"`
	Code        string `json:"code" validate:"required,numeric,min=4,max=10"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type SendMessageRequest struct {
	RecipientID string `json:"recipientId" validate:"required,uuid"`
	PropertyID  string `json:"propertyId" validate:"omitempty,uuid"`
	Body        string `json:"body" validate:"required"`
}

// PartnershipSubmitRequest - публичная форма заявки на партнерство.
type PartnershipSubmitRequest struct {
	CompanyName     string `json:"companyName" validate:"required,max=200"`
	ContactName     string `json:"contactName" validate:"required,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,max=32"`
	PartnershipType string `json:"partnershipType" validate:"required,max=100"`
	Message         string `json:"message" validate:"required,max=5000"`
}

type PartnershipStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new reviewed accepted rejected"`
}

// StatusUpdateRequest - административная смена статусов объявления, оба поля необязательны.
type StatusUpdateRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

// ListResponse - конверт выдачи объявлений.
// count - размер текущей страницы, total - все совпадения.
type ListResponse struct {
	Success    bool                    `json:"success"`
	Count      int                     `json:"count"`
	Total      int64                   `json:"total"`
	Pagination domain.Pagination       `json:"pagination"`
	Data       []domain.PropertyRecord `json:"data"`
}

// DataResponse - конверт одиночного результата.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// PagedResponse - конверт для админских списков.
type PagedResponse struct {
	Success bool        `json:"success"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	Data    interface{} `json:"data"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}
