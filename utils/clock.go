package utils

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const DateLayout = "2006-01-02"

// Clock cho biết "hôm nay" theo múi giờ đã cấu hình
type Clock interface {
	Now() time.Time
	Today() string
	Location() *time.Location
}

type zoneClock struct {
	loc *time.Location
}

// NewClock tạo Clock theo tên múi giờ, ví dụ "Asia/Ho_Chi_Minh"
func NewClock(timezone string) (Clock, error) {
	if timezone == "" {
		timezone = "UTC"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &zoneClock{loc: loc}, nil
}

func (c *zoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *zoneClock) Today() string {
	return c.Now().Format(DateLayout)
}

func (c *zoneClock) Location() *time.Location {
	return c.loc
}

// FixedClock luôn trả về cùng một thời điểm
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func (c FixedClock) Today() string {
	return c.At.Format(DateLayout)
}

func (c FixedClock) Location() *time.Location {
	return c.At.Location()
}
