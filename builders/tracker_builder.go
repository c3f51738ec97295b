package builders

import (
	"tracker/constants"
	"tracker/models"

	"github.com/lib/pq"
)

// TrackerBuilder giúp tạo tracker document theo từng bước
type TrackerBuilder struct {
	doc *models.TrackerDocument
}

// NewTrackerBuilder tạo builder với giá trị mặc định cho user mới
func NewTrackerBuilder(userID string) *TrackerBuilder {
	return &TrackerBuilder{
		doc: &models.TrackerDocument{
			UserID:  userID,
			Daily:   make(pq.BoolArray, constants.DailyItemCount),
			Roadmap: pq.BoolArray{},
			Streak:  0,
		},
	}
}

// WithDaily gán trạng thái daily
func (b *TrackerBuilder) WithDaily(daily ...bool) *TrackerBuilder {
	b.doc.Daily = append(pq.BoolArray{}, daily...)
	return b
}

// WithRoadmap gán trạng thái roadmap
func (b *TrackerBuilder) WithRoadmap(roadmap ...bool) *TrackerBuilder {
	b.doc.Roadmap = append(pq.BoolArray{}, roadmap...)
	return b
}

// WithStreak gán streak
func (b *TrackerBuilder) WithStreak(streak int) *TrackerBuilder {
	b.doc.Streak = streak
	return b
}

// WithLastLogin gán ngày đăng nhập gần nhất
func (b *TrackerBuilder) WithLastLogin(date string) *TrackerBuilder {
	b.doc.LastLogin = date
	return b
}

// Build tạo document hoàn chỉnh
func (b *TrackerBuilder) Build() *models.TrackerDocument {
	return b.doc
}

// ClearedDaily trả về daily đã reset về false
func ClearedDaily() pq.BoolArray {
	return make(pq.BoolArray, constants.DailyItemCount)
}
