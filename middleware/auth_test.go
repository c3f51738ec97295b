package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tracker/constants"
	"tracker/errors"
	"tracker/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver map[string]*services.Session

func (r stubResolver) Resolve(_ context.Context, token string) (*services.Session, error) {
	if s, ok := r[token]; ok {
		return s, nil
	}
	return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", errors.ErrUnauthorized)
}

var testSession = &services.Session{ID: "sid-1", UserID: "u1", DisplayName: "Alice", ExpiresAt: time.Now().Add(time.Hour)}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), ErrorHandler())
	r.GET("/", mw, func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, session.UserID)
	})
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenFromRequestPrecedence(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/?token=from-query", nil)
	req.AddCookie(&http.Cookie{Name: constants.SessionCookie, Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")
	c.Request = req
	assert.Equal(t, "from-header", TokenFromRequest(c))

	req.Header.Del("Authorization")
	assert.Equal(t, "from-cookie", TokenFromRequest(c))

	c.Request = httptest.NewRequest(http.MethodGet, "/?token=from-query", nil)
	assert.Equal(t, "from-query", TokenFromRequest(c))
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(stubResolver{"good": testSession}))

	assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestOptionalAuthNeverBlocks(t *testing.T) {
	r := newRouter(OptionalAuth(stubResolver{"good": testSession}))

	req := httptest.NewRequest(http.MethodGet, "/?token=bad", nil)
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/?token=good", nil)
	assert.Equal(t, "u1", serve(r, req).Body.String())
}

func TestErrorHandlerMapsAppErrors(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/phase", func(c *gin.Context) {
		_ = c.Error(errors.NewAppError(errors.ErrCodeUnknownPhase, "Phase không tồn tại", nil))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
	})

	assert.Equal(t, http.StatusNotFound, serve(r, httptest.NewRequest(http.MethodGet, "/phase", nil)).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil)).Code)
}

func TestRequestIDGenerated(t *testing.T) {
	r := newRouter(OptionalAuth(stubResolver{}))
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
