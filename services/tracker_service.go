package services

import (
	"context"

	"tracker/builders"
	"tracker/commands"
	"tracker/constants"
	"tracker/errors"
	"tracker/models"
	"tracker/services/logger"
	"tracker/utils"

	"github.com/lib/pq"
)

// TrackerService đọc, khởi tạo và ghi tracker document của từng user
type TrackerService struct {
	store  DocumentStore
	clock  utils.Clock
	logger logger.Logger
}

type TrackerServiceOptions struct {
	Store  DocumentStore
	Clock  utils.Clock
	Logger logger.Logger
}

func NewTrackerService(opts TrackerServiceOptions) *TrackerService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &TrackerService{
		store:  opts.Store,
		clock:  opts.Clock,
		logger: opts.Logger,
	}
}

// Load lấy document của user.
// Chưa có thì tạo mới với giá trị mặc định, sang ngày mới thì reset daily.
func (s *TrackerService) Load(ctx context.Context, userID string) (*models.TrackerDocument, error) {
	if userID == "" {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized, "thiếu user", errors.ErrUnauthorized)
	}
	today := s.clock.Today()

	doc, err := s.store.Get(ctx, constants.TrackerCollection, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeLoadFailed, "không đọc được tracker", err)
	}

	if doc == nil {
		doc = builders.NewTrackerBuilder(userID).WithLastLogin(today).Build()
		if err := commands.NewCreateTrackerCommand(doc, s.store).Execute(ctx); err != nil {
			return nil, errors.NewAppError(errors.ErrCodeLoadFailed, "không tạo được tracker", err)
		}
		s.logger.Info("created tracker for user %s", userID)
		return doc, nil
	}

	if doc.LastLogin == today {
		return doc, nil
	}

	cleared := builders.ClearedDaily()
	if err := commands.NewDayResetCommand(userID, today, cleared, s.store).Execute(ctx); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeLoadFailed, "không reset được daily", err)
	}
	s.logger.Debug("daily reset for user %s (last login %q)", userID, doc.LastLogin)

	doc.Daily = cleared
	doc.LastLogin = today
	return doc, nil
}

// Save ghi đè daily và roadmap. Streak và lastLogin giữ nguyên.
// Document trả về là bản đã lưu, không đi qua bước reset daily của Load.
func (s *TrackerService) Save(ctx context.Context, userID string, daily, roadmap []bool) (*models.TrackerDocument, error) {
	if userID == "" {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized, "thiếu user", errors.ErrUnauthorized)
	}
	if daily == nil {
		daily = []bool{}
	}
	if roadmap == nil {
		roadmap = []bool{}
	}

	doc, err := s.store.Get(ctx, constants.TrackerCollection, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeSaveFailed, "không lưu được tracker", err)
	}
	if doc == nil {
		notFound := errors.NewAppError(errors.ErrCodeDBNotFound, "document không tồn tại", errors.ErrDocumentNotFound)
		return nil, errors.NewAppError(errors.ErrCodeSaveFailed, "không lưu được tracker", notFound)
	}

	if err := commands.NewSaveChecksCommand(userID, daily, roadmap, s.store).Execute(ctx); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeSaveFailed, "không lưu được tracker", err)
	}

	doc.Daily = append(pq.BoolArray{}, daily...)
	doc.Roadmap = append(pq.BoolArray{}, roadmap...)
	return doc, nil
}
