package jobs

import (
	"testing"
	"time"
	_ "time/tzdata"

	"tracker/constants"
	"tracker/services"
	"tracker/services/logger"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRolloverReachesEverySubscriber(t *testing.T) {
	hub := services.NewEventHub(nil)
	a, unsubA := hub.Subscribe("a", "s1")
	b, unsubB := hub.Subscribe("b", "s2")
	defer unsubA()
	defer unsubB()

	at := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	DayRollover(hub, logger.Nop{}, func() time.Time { return at })()

	evA := <-a
	evB := <-b
	assert.Equal(t, constants.EventDayRollover, evA.Type)
	assert.Equal(t, constants.EventDayRollover, evB.Type)
	assert.Equal(t, at, evA.At)
}

func TestInitCronJobsSchedulesRollover(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	c := cron.New(cron.WithLocation(loc))

	require.NoError(t, InitCronJobs(c, services.NewEventHub(nil), logger.Nop{}))
	defer c.Stop()

	entries := c.Entries()
	require.Len(t, entries, 1)
	next := entries[0].Schedule.Next(time.Date(2026, 10, 15, 12, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, loc), next)
}
