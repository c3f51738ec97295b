package models

import (
	"time"

	"tracker/constants"

	"github.com/lib/pq"
)

// TrackerDocument là tài liệu theo dõi tiến độ của một user
type TrackerDocument struct {
	UserID    string       `gorm:"primaryKey;column:user_id" json:"userId"`
	Daily     pq.BoolArray `gorm:"type:boolean[];not null" json:"daily"`
	Roadmap   pq.BoolArray `gorm:"type:boolean[];not null" json:"roadmap"`
	Streak    int          `gorm:"default:0" json:"streak"`
	LastLogin string       `gorm:"column:last_login" json:"lastLogin"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (TrackerDocument) TableName() string {
	return constants.TrackerCollection
}

// Fields là tập field được ghi trong một lần update, key theo tên JSON
type Fields map[string]interface{}

// Clone trả về bản sao độc lập của document
func (d *TrackerDocument) Clone() *TrackerDocument {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Daily = append(pq.BoolArray{}, d.Daily...)
	cp.Roadmap = append(pq.BoolArray{}, d.Roadmap...)
	return &cp
}
