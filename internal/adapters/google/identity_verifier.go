package google_adapter

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// IdentityVerifier проверяет Google ID-токены, выданные для нашего OAuth client id.
type IdentityVerifier struct {
	clientID string
	validate validateFunc
}

func NewIdentityVerifier(clientID string) (*IdentityVerifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf("google adapter: client id cannot be empty")
	}
	return &IdentityVerifier{clientID: clientID, validate: idtoken.Validate}, nil
}

func (v *IdentityVerifier) Verify(ctx context.Context, idToken string) (*port.ExternalIdentity, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "GoogleIdentityVerifier",
		"method":    "Verify",
	})

	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		logger.Warn("Google ID token rejected", port.Fields{"reason": err.Error()})
		return nil, domain.ErrTokenInvalid
	}

	identity := &port.ExternalIdentity{Subject: payload.Subject}
	identity.Email, _ = payload.Claims["email"].(string)
	identity.FullName, _ = payload.Claims["name"].(string)
	identity.Verified, _ = payload.Claims["email_verified"].(bool)

	if identity.Email == "" {
		logger.Warn("Google ID token has no email claim", port.Fields{"subject": payload.Subject})
		return nil, domain.ErrTokenInvalid
	}
	return identity, nil
}
