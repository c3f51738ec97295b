package services

import (
	"fmt"
	"time"

	"tracker/dto"
	"tracker/errors"
	"tracker/types"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Session thay cho biến toàn cục currentUser/docRef: sinh ra khi đăng nhập, mất khi đăng xuất
type Session struct {
	ID          string    `json:"sid"`
	UserID      string    `json:"uid"`
	DisplayName string    `json:"name"`
	AvatarURL   string    `json:"picture"`
	ExpiresAt   time.Time `json:"-"`
}

// User trả về thông tin hiển thị của session
func (s *Session) User() dto.UserView {
	return dto.UserView{
		ID:      s.UserID,
		Name:    s.DisplayName,
		Picture: s.AvatarURL,
	}
}

type Claims struct {
	Session Session `json:"session"`
	jwt.StandardClaims
}

// TokenIssuer ký và kiểm tra session token (HS256)
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue tạo session mới cho identity và ký token
func (t *TokenIssuer) Issue(identity *types.Identity) (string, *Session, error) {
	now := t.now()
	session := &Session{
		ID:          uuid.NewString(),
		UserID:      identity.UserID,
		DisplayName: identity.DisplayName,
		AvatarURL:   identity.AvatarURL,
		ExpiresAt:   now.Add(t.ttl).Truncate(time.Second),
	}
	claims := &Claims{
		Session: *session,
		StandardClaims: jwt.StandardClaims{
			Id:        session.ID,
			Subject:   session.UserID,
			IssuedAt:  now.Unix(),
			ExpiresAt: session.ExpiresAt.Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, session, nil
}

// Parse kiểm tra chữ ký, hạn dùng và trả về session trong token
func (t *TokenIssuer) Parse(tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, errors.NewAppError(errors.ErrCodeMissingToken, "Thiếu token", errors.ErrUnauthorized)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", err)
	}
	if claims.Id == "" || claims.Subject == "" || claims.Session.UserID != claims.Subject {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Token thiếu thông tin session", nil)
	}

	session := claims.Session
	session.ID = claims.Id
	session.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
	return &session, nil
}
