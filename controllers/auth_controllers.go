package controllers

import (
	"net/http"
	"time"

	"tracker/constants"
	"tracker/dto"
	"tracker/middleware"
	"tracker/response"
	"tracker/services"
	"tracker/services/logger"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth         *services.AuthService
	tracker      *TrackerController
	secureCookie bool
	logger       logger.Logger
}

func NewAuthController(auth *services.AuthService, tracker *TrackerController, secureCookie bool, log logger.Logger) *AuthController {
	if log == nil {
		log = logger.Nop{}
	}
	return &AuthController{
		auth:         auth,
		tracker:      tracker,
		secureCookie: secureCookie,
		logger:       log,
	}
}

// AuthGoogle đổi ID token Google lấy session và tải tracker lần đầu
func (ac *AuthController) AuthGoogle(c *gin.Context) {
	var input dto.GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	token, session, err := ac.auth.SignIn(ctx, input.TokenID)
	if err != nil {
		ac.logger.Info("google sign-in failed: %v", err)
		response.Unauthorized(c)
		return
	}

	ac.setSessionCookie(c, token, time.Until(session.ExpiresAt))

	view := ac.tracker.LoadView(ctx, session)
	response.Success(c, dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt,
		User:        session.User(),
		Tracker:     &view,
	})
}

// Logout đăng xuất session hiện tại
func (ac *AuthController) Logout(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	if err := ac.auth.SignOut(c.Request.Context(), session); err != nil {
		ac.logger.Error("sign-out for session %s: %v", session.ID, err)
		_ = c.Error(err)
		return
	}

	ac.setSessionCookie(c, "", -1)
	response.Success(c, nil)
}

// Me trả về thông tin user của session
func (ac *AuthController) Me(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	response.Success(c, session.User())
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.SessionCookie, token, maxAge, "/", "", ac.secureCookie, true)
}
