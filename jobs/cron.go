package jobs

import (
	"time"

	"tracker/constants"
	"tracker/services"
	"tracker/services/logger"

	"github.com/robfig/cron/v3"
)

// DayRolloverSchedule chạy lúc 0h mỗi ngày theo múi giờ của cron
const DayRolloverSchedule = "0 0 * * *"

// RolloverPublisher định nghĩa interface phát event tới mọi client đang mở
type RolloverPublisher interface {
	PublishAll(ev services.AuthEvent)
}

// DayRollover báo cho các trang đang mở tải lại tracker để daily được reset
func DayRollover(publisher RolloverPublisher, log logger.Logger, now func() time.Time) func() {
	return func() {
		at := now()
		log.Info("day rollover at %v", at)
		publisher.PublishAll(services.AuthEvent{
			Type: constants.EventDayRollover,
			At:   at,
		})
	}
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, publisher RolloverPublisher, log logger.Logger) error {
	_, err := c.AddFunc(DayRolloverSchedule, DayRollover(publisher, log, time.Now))
	if err != nil {
		return err
	}

	c.Start()
	log.Info("cron jobs initialized")
	return nil
}
