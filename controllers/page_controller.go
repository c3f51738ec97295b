package controllers

import (
	"net/http"

	"tracker/dto"
	"tracker/middleware"

	"github.com/gin-gonic/gin"
)

// PageData là dữ liệu truyền vào template index.html
type PageData struct {
	GoogleClientID string
	View           *dto.TrackerView
}

type PageController struct {
	tracker        *TrackerController
	googleClientID string
}

func NewPageController(tracker *TrackerController, googleClientID string) *PageController {
	return &PageController{tracker: tracker, googleClientID: googleClientID}
}

// Index render trang chính: màn hình đăng nhập nếu chưa có session, ngược lại là tracker
func (pc *PageController) Index(c *gin.Context) {
	data := PageData{GoogleClientID: pc.googleClientID}
	if session, ok := middleware.CurrentSession(c); ok {
		view := pc.tracker.LoadView(c.Request.Context(), session)
		data.View = &view
	}
	c.HTML(http.StatusOK, "index.html", data)
}
