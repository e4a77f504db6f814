package rest

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"addisnest-service/internal/core/port/usecases_port"
	"net/http"
)

// AuthHandlers - обработчики /api/auth
type AuthHandlers struct {
	registerUC   usecases_port.RegisterUserUseCasePort
	loginUC      usecases_port.LoginUserUseCasePort
	requestOTPUC usecases_port.RequestOTPUseCasePort
	verifyOTPUC  usecases_port.VerifyOTPUseCasePort
	googleUC     usecases_port.GoogleLoginUseCasePort
	profileUC    usecases_port.GetProfileUseCasePort
	validator    *requestValidator
}

func NewAuthHandlers(
	registerUC usecases_port.RegisterUserUseCasePort,
	loginUC usecases_port.LoginUserUseCasePort,
	requestOTPUC usecases_port.RequestOTPUseCasePort,
	verifyOTPUC usecases_port.VerifyOTPUseCasePort,
	googleUC usecases_port.GoogleLoginUseCasePort,
	profileUC usecases_port.GetProfileUseCasePort,
) *AuthHandlers {
	return &AuthHandlers{
		registerUC:   registerUC,
		loginUC:      loginUC,
		requestOTPUC: requestOTPUC,
		verifyOTPUC:  verifyOTPUC,
		googleUC:     googleUC,
		profileUC:    profileUC,
		validator:    newRequestValidator(),
	}
}

// Register обрабатывает POST /auth/register
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if !bindJSON(w, r, logger, h.validator, &req) {
		return
	}

	// без пароля!
	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing register request", nil)

	user, token, err := h.registerUC.Execute(r.Context(), domain.RegistrationInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		writeUseCaseError(w, handlerLogger, err)
		return
	}

	handlerLogger.Info("User registered successfully", port.Fields{"user_id": user.ID})
	RespondWithJSON(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login обрабатывает POST /auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if !bindJSON(w, r, logger, h.validator, &req) {
		return
	}

	user, token, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// RequestOTP обрабатывает POST /auth/otp/request.
// 202: код отправлен, но еще не подтвержден.
func (h *AuthHandlers) RequestOTP(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RequestOTP"})

	var req OTPRequest
	if !bindJSON(w, r, logger, h.validator, &req) {
		return
	}

	if err := h.requestOTPUC.Execute(r.Context(), req.Channel, req.Destination); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusAccepted, map[string]interface{}{
		"success": true,
		"message": "verification code sent",
	})
}

// VerifyOTP обрабатывает POST /auth/otp/verify
func (h *AuthHandlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "VerifyOTP"})

	var req OTPVerifyRequest
	if !bindJSON(w, r, logger, h.validator, &req) {
		return
	}

	user, token, err := h.verifyOTPUC.Execute(r.Context(), req.Destination, req.Code)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// GoogleLogin обрабатывает POST /auth/google
func (h *AuthHandlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GoogleLogin"})

	var req GoogleLoginRequest
	if !bindJSON(w, r, logger, h.validator, &req) {
		return
	}

	user, token, err := h.googleUC.Execute(r.Context(), req.IDToken)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Me обрабатывает GET /auth/me
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Me"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.profileUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Success: true, Data: user})
}
