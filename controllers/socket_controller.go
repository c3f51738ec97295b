package controllers

import (
	"context"
	"time"

	"tracker/constants"
	"tracker/dto"
	"tracker/middleware"
	"tracker/services"
	"tracker/services/logger"
	"tracker/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

const (
	keyToken       = "token"
	keyUnsubscribe = "unsubscribe"
)

// SocketController phát luồng trạng thái đăng nhập qua WebSocket.
// Khi kết nối, client nhận ngay trạng thái hiện tại, sau đó là mọi event của user.
type SocketController struct {
	m      *melody.Melody
	auth   *services.AuthService
	logger logger.Logger
}

func NewSocketController(m *melody.Melody, auth *services.AuthService, log logger.Logger) *SocketController {
	if log == nil {
		log = logger.Nop{}
	}
	sc := &SocketController{m: m, auth: auth, logger: log}
	m.HandleConnect(sc.onConnect)
	m.HandleDisconnect(sc.onDisconnect)
	return sc
}

// HandleSocket nâng cấp request lên WebSocket
func (sc *SocketController) HandleSocket(c *gin.Context) {
	keys := map[string]interface{}{keyToken: middleware.TokenFromRequest(c)}
	if err := sc.m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		sc.logger.Error("websocket upgrade: %v", err)
	}
}

func (sc *SocketController) onConnect(s *melody.Session) {
	notifier := notification.NewMelodyNotifier(s)

	token, _ := s.Get(keyToken)
	tokenString, _ := token.(string)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session, err := sc.auth.Resolve(ctx, tokenString)
	if err != nil {
		sc.reject(s, notifier)
		return
	}

	events, unsubscribe := sc.auth.Events().Subscribe(session.UserID, session.ID)
	// đăng xuất xảy ra giữa Resolve và Subscribe thì EndSession đã bỏ lỡ socket này
	if err := sc.auth.Active(ctx, session); err != nil {
		unsubscribe()
		sc.reject(s, notifier)
		return
	}
	s.Set(keyUnsubscribe, unsubscribe)

	user := session.User()
	if err := notification.Send(notifier, dto.AuthEventMessage{
		Type: constants.EventPresent,
		User: &user,
		At:   time.Now(),
	}); err != nil {
		sc.logger.Error("send initial state to session %s: %v", session.ID, err)
	}
	go sc.forward(s, notifier, events)
}

func (sc *SocketController) reject(s *melody.Session, notifier notification.Notifier) {
	_ = notification.Send(notifier, dto.AuthEventMessage{Type: constants.EventAbsent, At: time.Now()})
	_ = s.Close()
}

// forward chuyển event xuống client; luồng đóng (đăng xuất) thì đóng socket
func (sc *SocketController) forward(s *melody.Session, notifier notification.Notifier, events <-chan services.AuthEvent) {
	for ev := range events {
		if err := notification.Send(notifier, ev.Message()); err != nil {
			sc.logger.Debug("forward %s event: %v", ev.Type, err)
		}
	}
	_ = s.Close()
}

func (sc *SocketController) onDisconnect(s *melody.Session) {
	if v, ok := s.Get(keyUnsubscribe); ok {
		if unsubscribe, ok := v.(func()); ok {
			unsubscribe()
		}
	}
}
