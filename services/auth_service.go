package services

import (
	"context"
	"strings"
	"time"

	"tracker/constants"
	"tracker/errors"
	"tracker/services/logger"
)

// AuthService lo đăng nhập, đăng xuất và xác định session của request
type AuthService struct {
	verifier IdentityVerifier
	tokens   *TokenIssuer
	revoked  RevocationStore
	ui       UIStateStore
	events   *EventHub
	logger   logger.Logger
}

type AuthServiceOptions struct {
	Verifier IdentityVerifier
	Tokens   *TokenIssuer
	Revoked  RevocationStore
	UI       UIStateStore
	Events   *EventHub
	Logger   logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &AuthService{
		verifier: opts.Verifier,
		tokens:   opts.Tokens,
		revoked:  opts.Revoked,
		ui:       opts.UI,
		events:   opts.Events,
		logger:   opts.Logger,
	}
}

// SignIn đổi ID token của nhà cung cấp lấy session token.
// Thất bại thì không phát event nào.
func (s *AuthService) SignIn(ctx context.Context, idToken string) (string, *Session, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", nil, errors.NewAppError(errors.ErrCodeMissingToken, "Thiếu ID token", errors.ErrUnauthorized)
	}

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		s.logger.Info("sign-in rejected: %v", err)
		if errors.IsAppError(err) {
			return "", nil, err
		}
		return "", nil, errors.NewAppError(errors.ErrCodeIdentityFailed, "Không xác minh được danh tính", err)
	}

	token, session, err := s.tokens.Issue(identity)
	if err != nil {
		return "", nil, err
	}

	user := session.User()
	s.events.Publish(AuthEvent{
		Type:      constants.EventPresent,
		UserID:    session.UserID,
		SessionID: session.ID,
		User:      &user,
	})
	s.logger.Info("user %s signed in (session %s)", session.UserID, session.ID)
	return token, session, nil
}

// Resolve lấy session từ token, token đã đăng xuất bị từ chối
func (s *AuthService) Resolve(ctx context.Context, token string) (*Session, error) {
	session, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if err := s.Active(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Active báo lỗi nếu session đã đăng xuất
func (s *AuthService) Active(ctx context.Context, session *Session) error {
	revoked, err := s.revoked.IsRevoked(ctx, session.ID)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeCacheError, "Không kiểm tra được session", err)
	}
	if revoked {
		return errors.NewAppError(errors.ErrCodeRevokedToken, "Session đã đăng xuất", errors.ErrUnauthorized)
	}
	return nil
}

// SignOut thu hồi session, xóa trạng thái giao diện và đóng luồng event của session
func (s *AuthService) SignOut(ctx context.Context, session *Session) error {
	if session == nil {
		return errors.NewAppError(errors.ErrCodeUnauthorized, "Chưa đăng nhập", errors.ErrUnauthorized)
	}
	if err := s.revoked.Revoke(ctx, session.ID, time.Until(session.ExpiresAt)); err != nil {
		return errors.NewAppError(errors.ErrCodeCacheError, "Không thu hồi được session", err)
	}
	if err := s.ui.Clear(ctx, session.ID); err != nil {
		s.logger.Error("clear ui state for session %s: %v", session.ID, err)
	}
	s.events.EndSession(session.UserID, session.ID)
	s.logger.Info("user %s signed out (session %s)", session.UserID, session.ID)
	return nil
}

// Events trả về hub để các handler đăng ký nhận sự kiện
func (s *AuthService) Events() *EventHub {
	return s.events
}
