package routes

import (
	"net/http"

	"tracker/controllers"
	middlewares "tracker/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers gom các controller cần gắn route
type Controllers struct {
	Auth     *controllers.AuthController
	Tracker  *controllers.TrackerController
	Socket   *controllers.SocketController
	Page     *controllers.PageController
	Resolver middlewares.SessionResolver
}

func SetupRoutes(router *gin.Engine, ctrl Controllers) {
	router.Use(middlewares.RequestIDMiddleware(), middlewares.ErrorHandler())

	requireAuth := middlewares.AuthMiddleware(ctrl.Resolver)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/google", ctrl.Auth.AuthGoogle)
	v1.DELETE("/auth/logout", requireAuth, ctrl.Auth.Logout)
	v1.GET("/auth/me", requireAuth, ctrl.Auth.Me)

	v1.GET("/tracker", requireAuth, ctrl.Tracker.GetTracker)
	v1.PUT("/tracker", requireAuth, ctrl.Tracker.SaveTracker)
	v1.POST("/tracker/phases/:phaseId/toggle", requireAuth, ctrl.Tracker.TogglePhase)
	v1.GET("/catalog", ctrl.Tracker.GetCatalog)

	router.GET("/ws", ctrl.Socket.HandleSocket)
	router.GET("/", middlewares.OptionalAuth(ctrl.Resolver), ctrl.Page.Index)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}
