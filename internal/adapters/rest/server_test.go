package rest

import (
	"addisnest-service/internal/adapters/memory"
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/usecase"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userToken  = "user-token"
	otherToken = "other-token"
	adminToken = "admin-token"
)

type testEnv struct {
	handlers Handlers
	tokens   tokenTable
	store    *memory.PropertyStore
	user     *domain.Claims
	admin    *domain.Claims
}

func newTestEnv() *testEnv {
	store := memory.NewPropertyStore()
	env := &testEnv{
		store: store,
		user:  &domain.Claims{UserID: uuid.New(), Email: "owner@example.com", Role: domain.RoleUser},
		admin: &domain.Claims{UserID: uuid.New(), Email: "admin@example.com", Role: domain.RoleAdmin},
	}
	env.tokens = tokenTable{
		userToken:  env.user,
		otherToken: {UserID: uuid.New(), Email: "other@example.com", Role: domain.RoleAgent},
		adminToken: env.admin,
	}
	env.handlers = Handlers{
		Properties: NewPropertyHandlers(
			usecase.NewCreatePropertyUseCase(store, nil, nil, 30*time.Second),
			usecase.NewListPropertiesUseCase(store, nil),
			usecase.NewListMyPropertiesUseCase(store),
			usecase.NewGetPropertyUseCase(store),
			usecase.NewUpdatePropertyUseCase(store, nil),
			usecase.NewUpdatePropertyStatusUseCase(store, nil),
			usecase.NewDeletePropertyUseCase(store, nil),
		),
		Uploads:      NewUploadHandlers(nil),
		Auth:         NewAuthHandlers(nil, nil, nil, nil, nil, nil),
		Messages:     NewMessageHandlers(nil, nil, nil, nil),
		Partnerships: NewPartnershipHandlers(nil, nil, nil),
		Admin:        NewAdminHandlers(nil, nil),
	}
	return env
}

func (e *testEnv) router() http.Handler {
	return NewRouter([]string{"http://localhost:3000"}, e.handlers, NewAuthMiddleware(e.tokens), contextkeys.NoopLogger())
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

const villaPayload = `{
	"title": "Villa in Bole",
	"price": 12000000,
	"propertyType": "Villa",
	"offeringType": "sale",
	"promotionType": "Basic",
	"address": {"city": "Addis Ababa", "state": "Addis Ababa"}
}`

func TestCreateProperty_Endpoint(t *testing.T) {
	env := newTestEnv()

	t.Run("requires authentication", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/properties", "", villaPayload)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/properties", "forged", villaPayload)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	var firstID string
	t.Run("creates then short-circuits the duplicate", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/properties", userToken, villaPayload)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]interface{})
		firstID = data["_id"].(string)
		assert.Equal(t, domain.StatusActive, data["status"])
		assert.Equal(t, domain.PaymentNone, data["paymentStatus"])
		assert.Equal(t, "Addis Ababa", data["city"])

		rec = env.do(t, http.MethodPost, "/api/properties", userToken, villaPayload)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		data = decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, firstID, data["_id"])

		page, err := env.store.List(context.Background(), domain.DefaultListingQuery())
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Total)
	})

	t.Run("schema rejects wrong field types", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/properties", userToken, `{"title": 42, "price": 100}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Contains(t, body["fields"], "title")
	})

	t.Run("reports every missing required field", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/properties", userToken, `{"title": "Lonely title"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		fields := decodeBody(t, rec)["fields"]
		assert.Contains(t, fields, "price")
		assert.Contains(t, fields, "propertyType")
		assert.Contains(t, fields, "offeringType")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/properties", userToken, `{"title":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateProperty_NonFinitePrice(t *testing.T) {
	env := newTestEnv()

	for _, price := range []string{"NaN", "Inf", "-Infinity"} {
		t.Run(price, func(t *testing.T) {
			body := `{"title":"Bad","price":"` + price + `","propertyType":"Villa","offeringType":"sale"}`
			rec := env.do(t, http.MethodPost, "/api/properties", userToken, body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, decodeBody(t, rec)["fields"], "price")
		})
	}

	rec := env.do(t, http.MethodGet, "/api/properties", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 0, decodeBody(t, rec)["total"])
}

func TestPropertyLifecycle_Endpoints(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/properties", userToken, villaPayload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeBody(t, rec)["data"].(map[string]interface{})["_id"].(string)

	t.Run("mine is not parsed as an id", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/properties/mine", userToken, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.EqualValues(t, 1, decodeBody(t, rec)["count"])

		rec = env.do(t, http.MethodGet, "/api/properties/mine", otherToken, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 0, decodeBody(t, rec)["count"])
	})

	t.Run("get increments views", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/properties/"+id, "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		rec = env.do(t, http.MethodGet, "/api/properties/"+id, "", "")
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.EqualValues(t, 2, data["views"])
	})

	t.Run("get with bad or unknown id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/properties/not-a-uuid", "", "").Code)
		assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/properties/"+uuid.NewString(), "", "").Code)
	})

	t.Run("update by a stranger is forbidden", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/properties/"+id, otherToken, `{"title": "Hijacked"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("owner updates with PUT and cannot touch status", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/properties/"+id, userToken, `{"title": "Villa in Bole, renovated", "status": "sold"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "Villa in Bole, renovated", data["title"])
		assert.Equal(t, domain.StatusActive, data["status"])
	})

	t.Run("status change is admin only", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/properties/"+id+"/status", userToken, `{"status": "sold"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.do(t, http.MethodPatch, "/api/properties/"+id+"/status", adminToken, `{"status": "archived"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = env.do(t, http.MethodPatch, "/api/properties/"+id+"/status", adminToken, `{"status": "sold"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, domain.StatusSold, decodeBody(t, rec)["data"].(map[string]interface{})["status"])
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodDelete, "/api/properties/"+id, otherToken, "").Code)
		assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/properties/"+id, userToken, "").Code)
		assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/properties/"+id, userToken, "").Code)
	})
}

func TestListProperties_Pagination(t *testing.T) {
	env := newTestEnv()
	owner := uuid.New()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		require.NoError(t, env.store.Create(context.Background(), &domain.PropertyRecord{
			ID:           uuid.New(),
			OwnerID:      owner,
			Title:        "Apartment",
			PropertyType: "Apartment",
			OfferingType: domain.OfferingForRent,
			Price:        float64(1000 + i),
			Status:       domain.StatusActive,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	rec := env.do(t, http.MethodGet, "/api/properties?limit=10&page=1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 10, body["count"])
	assert.EqualValues(t, 25, body["total"])
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"page": float64(2), "limit": float64(10)}, pagination["next"])
	assert.NotContains(t, pagination, "prev")

	rec = env.do(t, http.MethodGet, "/api/properties?limit=10&page=3", "", "")
	body = decodeBody(t, rec)
	assert.EqualValues(t, 5, body["count"])
	pagination = body["pagination"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"page": float64(2), "limit": float64(10)}, pagination["prev"])
	assert.NotContains(t, pagination, "next")

	// некорректный фильтр молча игнорируется
	rec = env.do(t, http.MethodGet, "/api/properties?priceRange=abc&bedrooms=lots", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 25, decodeBody(t, rec)["total"])
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv()
	user := &domain.User{ID: env.user.UserID, Email: env.user.Email, FullName: "Abebe Kebede", Role: domain.RoleUser}

	env.handlers.Auth.registerUC = registerFunc(func(ctx context.Context, in domain.RegistrationInput) (*domain.User, string, error) {
		if in.Email == "taken@example.com" {
			return nil, "", domain.ErrEmailInUse
		}
		return user, "jwt", nil
	})
	env.handlers.Auth.loginUC = loginFunc(func(ctx context.Context, email, password string) (*domain.User, string, error) {
		return nil, "", domain.ErrInvalidCredentials
	})
	env.handlers.Auth.requestOTPUC = requestOTPFunc(func(ctx context.Context, channel, destination string) error {
		if channel == domain.ChannelSMS {
			return domain.ErrChannelNotConfigured
		}
		return nil
	})
	env.handlers.Auth.profileUC = profileFunc(func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		if id != user.ID {
			return nil, domain.ErrUserNotFound
		}
		return user, nil
	})

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"register", http.MethodPost, "/api/auth/register", "", `{"email":"new@example.com","password":"s3cret-pass","fullName":"Abebe"}`, http.StatusCreated},
		{"register duplicate", http.MethodPost, "/api/auth/register", "", `{"email":"taken@example.com","password":"s3cret-pass","fullName":"Abebe"}`, http.StatusConflict},
		{"register admin role rejected", http.MethodPost, "/api/auth/register", "", `{"email":"new@example.com","password":"s3cret-pass","fullName":"Abebe","role":"admin"}`, http.StatusBadRequest},
		{"login bad credentials", http.MethodPost, "/api/auth/login", "", `{"email":"new@example.com","password":"wrong"}`, http.StatusUnauthorized},
		{"otp email", http.MethodPost, "/api/auth/otp/request", "", `{"channel":"email","destination":"new@example.com"}`, http.StatusAccepted},
		{"otp sms not configured", http.MethodPost, "/api/auth/otp/request", "", `{"channel":"sms","destination":"+251911000000"}`, http.StatusServiceUnavailable},
		{"otp unknown channel", http.MethodPost, "/api/auth/otp/request", "", `{"channel":"fax","destination":"123"}`, http.StatusBadRequest},
		{"me", http.MethodGet, "/api/auth/me", userToken, "", http.StatusOK},
		{"me for a deleted account", http.MethodGet, "/api/auth/me", otherToken, "", http.StatusNotFound},
		{"me anonymous", http.MethodGet, "/api/auth/me", "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	t.Run("validation lists json field names", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/register", "", `{"email":"not-an-email"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		fields := decodeBody(t, rec)["fields"]
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
		assert.Contains(t, fields, "fullName")
	})

	t.Run("register returns token and user", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/register", "", `{"email":"new@example.com","password":"s3cret-pass","fullName":"Abebe"}`)
		body := decodeBody(t, rec)
		assert.Equal(t, "jwt", body["token"])
		assert.Equal(t, user.ID.String(), body["user"].(map[string]interface{})["id"])
	})
}

func TestMessageEndpoints(t *testing.T) {
	env := newTestEnv()
	recipient := uuid.New()
	var gotSender, gotRecipient uuid.UUID
	env.handlers.Messages.sendUC = sendMessageFunc(func(ctx context.Context, senderID, recipientID uuid.UUID, propertyID *uuid.UUID, body string) (*domain.Message, error) {
		gotSender, gotRecipient = senderID, recipientID
		return domain.NewMessage(senderID, recipientID, propertyID, body, time.Now())
	})

	rec := env.do(t, http.MethodPost, "/api/messages", userToken, `{"recipientId":"nope","body":"hi"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["fields"], "recipientId")

	rec = env.do(t, http.MethodPost, "/api/messages", userToken, `{"recipientId":"`+recipient.String()+`","body":"Is it still available?"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, env.user.UserID, gotSender)
	assert.Equal(t, recipient, gotRecipient)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/messages/conversations", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/messages/not-a-uuid", userToken, "").Code)
}

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv()
	env.handlers.Admin.dashboardUC = dashboardFunc(func(ctx context.Context) (*domain.DashboardStats, error) {
		return &domain.DashboardStats{NewPartnershipRequests: 3}, nil
	})
	var gotFilter domain.PartnershipFilter
	env.handlers.Partnerships.listUC = listPartnershipsFunc(func(ctx context.Context, filter domain.PartnershipFilter) ([]domain.PartnershipRequest, int64, error) {
		gotFilter = filter
		return []domain.PartnershipRequest{}, 0, nil
	})

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/admin/dashboard", "", "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/api/admin/dashboard", userToken, "").Code)

	rec := env.do(t, http.MethodGet, "/api/admin/dashboard", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.EqualValues(t, 3, data["newPartnershipRequests"])

	rec = env.do(t, http.MethodGet, "/api/admin/partnership-requests?status=new&page=3&limit=5", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PartnershipFilter{Status: domain.PartnershipNew, Limit: 5, Offset: 10}, gotFilter)

	rec = env.do(t, http.MethodGet, "/api/admin/partnership-requests?status=bogus", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoggerMiddleware_TraceID(t *testing.T) {
	env := newTestEnv()

	traceID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(contextkeys.TraceIDHeader, traceID)
	rec := httptest.NewRecorder()
	env.router().ServeHTTP(rec, req)
	assert.Equal(t, traceID, rec.Header().Get(contextkeys.TraceIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(contextkeys.TraceIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	env.router().ServeHTTP(rec, req)
	generated := rec.Header().Get(contextkeys.TraceIDHeader)
	assert.NotEqual(t, "not-a-uuid", generated)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}
