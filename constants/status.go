package constants

// Document store
const (
	TrackerCollection = "trackers"
	DailyItemCount    = 4
)

// Tracker document fields
const (
	FieldDaily     = "daily"
	FieldRoadmap   = "roadmap"
	FieldStreak    = "streak"
	FieldLastLogin = "lastLogin"
)

// Auth / tracker event types
const (
	EventPresent        = "present"
	EventAbsent         = "absent"
	EventTrackerUpdated = "tracker-updated"
	EventDayRollover    = "day-rollover"
)

// Context keys
const (
	ContextSession   = "session"
	ContextRequestID = "requestId"
)

const SessionCookie = "tracker_session"
