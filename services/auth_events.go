package services

import (
	"sync"
	"time"

	"tracker/constants"
	"tracker/dto"
	"tracker/services/logger"
)

const subscriberBuffer = 8

// AuthEvent là một sự kiện trong luồng trạng thái đăng nhập của user
type AuthEvent struct {
	Type      string
	UserID    string
	SessionID string
	User      *dto.UserView
	Tracker   *dto.TrackerView
	At        time.Time
}

// Message chuyển event thành message gửi cho client
func (e AuthEvent) Message() dto.AuthEventMessage {
	return dto.AuthEventMessage{
		Type:    e.Type,
		User:    e.User,
		Tracker: e.Tracker,
		At:      e.At,
	}
}

type subscriber struct {
	sessionID string
	ch        chan AuthEvent
}

// EventHub phát sự kiện đăng nhập/đăng xuất/cập nhật tracker tới các subscriber.
// Mỗi subscription gắn với một session và bị đóng khi session đó đăng xuất.
type EventHub struct {
	mu     sync.Mutex
	subs   map[string]map[int]*subscriber
	nextID int
	logger logger.Logger
}

func NewEventHub(log logger.Logger) *EventHub {
	if log == nil {
		log = logger.Nop{}
	}
	return &EventHub{
		subs:   make(map[string]map[int]*subscriber),
		logger: log,
	}
}

// Subscribe đăng ký nhận sự kiện của user trong phạm vi một session.
// Hàm trả về dùng để hủy đăng ký, gọi nhiều lần không sao.
func (h *EventHub) Subscribe(userID, sessionID string) (<-chan AuthEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	sub := &subscriber{sessionID: sessionID, ch: make(chan AuthEvent, subscriberBuffer)}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]*subscriber)
	}
	h.subs[userID][id] = sub

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() { h.remove(userID, id) })
	}
}

func (h *EventHub) remove(userID string, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	users := h.subs[userID]
	sub, ok := users[id]
	if !ok {
		return
	}
	delete(users, id)
	if len(users) == 0 {
		delete(h.subs, userID)
	}
	close(sub.ch)
}

// Publish gửi event tới mọi subscriber của user
func (h *EventHub) Publish(ev AuthEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs[ev.UserID] {
		h.deliver(sub, ev)
	}
}

// PublishAll gửi event tới mọi subscriber của mọi user
func (h *EventHub) PublishAll(ev AuthEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, users := range h.subs {
		ev.UserID = userID
		for _, sub := range users {
			h.deliver(sub, ev)
		}
	}
}

// EndSession gửi event absent cho các subscriber của session rồi đóng chúng
func (h *EventHub) EndSession(userID, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ev := AuthEvent{Type: constants.EventAbsent, UserID: userID, SessionID: sessionID, At: time.Now()}
	users := h.subs[userID]
	for id, sub := range users {
		if sub.sessionID != sessionID {
			continue
		}
		h.deliver(sub, ev)
		delete(users, id)
		close(sub.ch)
	}
	if len(users) == 0 {
		delete(h.subs, userID)
	}
}

// Subscribers trả về số subscriber hiện tại của user
func (h *EventHub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}

// deliver không chặn; subscriber đọc chậm sẽ bị bỏ event
func (h *EventHub) deliver(sub *subscriber, ev AuthEvent) {
	select {
	case sub.ch <- ev:
	default:
		h.logger.Error("dropping %s event for user %s: subscriber is full", ev.Type, ev.UserID)
	}
}
