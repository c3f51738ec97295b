package services

import (
	"context"

	"tracker/errors"
	"tracker/types"

	"google.golang.org/api/idtoken"
)

// IdentityVerifier xác minh token do nhà cung cấp danh tính cấp
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*types.Identity, error)
}

// GoogleVerifier xác minh ID token lấy từ popup đăng nhập Google
type GoogleVerifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*types.Identity, error) {
	payload, err := v.validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeIdentityFailed, "ID token không hợp lệ", err)
	}
	return identityFromPayload(payload)
}

func identityFromPayload(payload *idtoken.Payload) (*types.Identity, error) {
	if payload == nil || payload.Subject == "" {
		return nil, errors.NewAppError(errors.ErrCodeIdentityFailed, "ID token thiếu subject", nil)
	}
	identity := &types.Identity{
		UserID:      payload.Subject,
		DisplayName: claimString(payload.Claims, "name"),
		AvatarURL:   claimString(payload.Claims, "picture"),
		Email:       claimString(payload.Claims, "email"),
	}
	if identity.DisplayName == "" {
		identity.DisplayName = identity.Email
	}
	return identity, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
