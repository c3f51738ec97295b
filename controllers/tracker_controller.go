package controllers

import (
	"context"

	"tracker/constants"
	"tracker/dto"
	"tracker/middleware"
	"tracker/response"
	"tracker/services"
	"tracker/services/logger"

	"github.com/gin-gonic/gin"
)

type TrackerController struct {
	tracker   *services.TrackerService
	binder    *services.ViewBinder
	ui        services.UIStateStore
	snapshots services.ViewSnapshotStore
	events    *services.EventHub
	logger    logger.Logger
}

type TrackerControllerOptions struct {
	Tracker   *services.TrackerService
	Binder    *services.ViewBinder
	UI        services.UIStateStore
	Snapshots services.ViewSnapshotStore
	Events    *services.EventHub
	Logger    logger.Logger
}

func NewTrackerController(opts TrackerControllerOptions) *TrackerController {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &TrackerController{
		tracker:   opts.Tracker,
		binder:    opts.Binder,
		ui:        opts.UI,
		snapshots: opts.Snapshots,
		events:    opts.Events,
		logger:    opts.Logger,
	}
}

// LoadView tải document và dựng view cho session.
// Lỗi khi tải chỉ được log, view trả về là bản gần nhất đã render (stale).
func (tc *TrackerController) LoadView(ctx context.Context, session *services.Session) dto.TrackerView {
	expanded := tc.expanded(ctx, session)

	doc, err := tc.tracker.Load(ctx, session.UserID)
	if err != nil {
		tc.logger.Error("Load error for user %s: %v", session.UserID, err)
		return tc.staleView(ctx, session, expanded)
	}

	view := tc.binder.Bind(doc, session.User(), expanded)
	if err := tc.snapshots.Remember(ctx, session.UserID, view); err != nil {
		tc.logger.Error("remember view for user %s: %v", session.UserID, err)
	}
	return view
}

func (tc *TrackerController) staleView(ctx context.Context, session *services.Session, expanded map[string]bool) dto.TrackerView {
	last, err := tc.snapshots.Recall(ctx, session.UserID)
	if err != nil {
		tc.logger.Error("recall view for user %s: %v", session.UserID, err)
	}
	if last == nil {
		view := tc.binder.Bind(nil, session.User(), expanded)
		view.Stale = true
		return view
	}

	view := *last
	view.User = session.User()
	view.Phases = append([]dto.PhaseView(nil), last.Phases...)
	for i := range view.Phases {
		view.Phases[i].Expanded = expanded[view.Phases[i].ID]
	}
	view.Stale = true
	return view
}

func (tc *TrackerController) expanded(ctx context.Context, session *services.Session) map[string]bool {
	ids, err := tc.ui.Expanded(ctx, session.ID)
	if err != nil {
		tc.logger.Error("read ui state for session %s: %v", session.ID, err)
		return map[string]bool{}
	}
	return tc.binder.Expand(ids)
}

// GetTracker tải tracker của user hiện tại
func (tc *TrackerController) GetTracker(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	response.Success(c, tc.LoadView(c.Request.Context(), session))
}

// SaveTracker nhận trạng thái đầy đủ của mọi checkbox và lưu lại
func (tc *TrackerController) SaveTracker(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var input dto.CheckStateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	daily, roadmap, err := tc.binder.Collect(input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	doc, err := tc.tracker.Save(ctx, session.UserID, daily, roadmap)
	if err != nil {
		tc.logger.Error("Save error for user %s (request %s): %v", session.UserID, middleware.RequestID(c), err)
		_ = c.Error(err)
		return
	}

	// dựng view từ bản vừa lưu; gọi Load ở đây sẽ reset daily nếu đã qua ngày
	view := tc.binder.Bind(doc, session.User(), tc.expanded(ctx, session))
	if err := tc.snapshots.Remember(ctx, session.UserID, view); err != nil {
		tc.logger.Error("remember view for user %s: %v", session.UserID, err)
	}
	tc.events.Publish(services.AuthEvent{
		Type:      constants.EventTrackerUpdated,
		UserID:    session.UserID,
		SessionID: session.ID,
		Tracker:   &view,
	})
	response.Success(c, view)
}

// TogglePhase đóng/mở một phase. Chỉ đổi trạng thái giao diện, không ghi document.
func (tc *TrackerController) TogglePhase(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	phaseID := c.Param("phaseId")
	if err := tc.binder.HasPhase(phaseID); err != nil {
		_ = c.Error(err)
		return
	}

	expanded, err := tc.ui.Toggle(c.Request.Context(), session.ID, phaseID)
	if err != nil {
		tc.logger.Error("toggle phase %s for session %s: %v", phaseID, session.ID, err)
		response.ServerError(c)
		return
	}

	response.Success(c, dto.ToggleResponse{PhaseID: phaseID, Expanded: expanded})
}

// GetCatalog trả về danh sách checklist
func (tc *TrackerController) GetCatalog(c *gin.Context) {
	response.Success(c, tc.binder.Catalog())
}
