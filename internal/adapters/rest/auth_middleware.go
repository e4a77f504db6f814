package rest

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/port"
	"addisnest-service/internal/core/port/usecases_port"
	"net/http"
	"strings"
)

type AuthMiddleware struct {
	validateTokenUC usecases_port.ValidateTokenUseCasePort
}

func NewAuthMiddleware(validateTokenUC usecases_port.ValidateTokenUseCasePort) *AuthMiddleware {
	return &AuthMiddleware{validateTokenUC: validateTokenUC}
}

// Authenticate - middleware для проверки JWT из заголовка Authorization
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := am.validateTokenUC.Execute(r.Context(), tokenString)
		if err != nil {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		// user_id попадает во все последующие записи лога этого запроса
		logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"user_id": claims.UserID.String()})
		ctx := contextkeys.ContextWithClaims(r.Context(), claims)
		ctx = contextkeys.ContextWithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только пользователей с одной из перечисленных ролей
func (am *AuthMiddleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := contextkeys.ClaimsFromContext(r.Context())
			if !ok {
				WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteJSONError(w, http.StatusForbidden, "Forbidden")
		})
	}
}
