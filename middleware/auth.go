package middleware

import (
	"context"
	"strings"

	"tracker/constants"
	"tracker/errors"
	"tracker/response"
	"tracker/services"

	"github.com/gin-gonic/gin"
)

// SessionResolver lấy session từ token
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*services.Session, error)
}

// TokenFromRequest lấy token từ header Authorization, cookie hoặc query `token`
func TokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(constants.SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("token")
}

// AuthMiddleware bắt buộc request phải có session hợp lệ
func AuthMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		session, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		// Lưu session vào context
		c.Set(constants.ContextSession, session)
		c.Next()
	}
}

// OptionalAuth gắn session nếu có, không chặn request
func OptionalAuth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := TokenFromRequest(c); token != "" {
			if session, err := resolver.Resolve(c.Request.Context(), token); err == nil {
				c.Set(constants.ContextSession, session)
			}
		}
		c.Next()
	}
}

// CurrentSession lấy session đã được middleware gắn vào context
func CurrentSession(c *gin.Context) (*services.Session, bool) {
	v, exists := c.Get(constants.ContextSession)
	if !exists {
		return nil, false
	}
	session, ok := v.(*services.Session)
	return session, ok && session != nil
}

// ErrorHandler xử lý lỗi
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Kiểm tra lỗi
		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			if errors.IsAppError(err) {
				response.FromError(c, err)
				return
			}

			response.ServerError(c)
		}
	}
}
