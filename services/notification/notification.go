package notification

import (
	"fmt"

	"tracker/dto"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Notifier gửi message tới một client
type Notifier interface {
	Notify(message []byte) error
}

// MelodyNotifier ghi message vào một WebSocket session
type MelodyNotifier struct {
	session *melody.Session
}

func NewMelodyNotifier(session *melody.Session) *MelodyNotifier {
	return &MelodyNotifier{session: session}
}

func (n *MelodyNotifier) Notify(message []byte) error {
	if n.session == nil {
		return fmt.Errorf("melody session is nil")
	}
	return n.session.Write(message)
}

// MessageBuilder dựng message JSON từ event
type MessageBuilder struct {
	msg dto.AuthEventMessage
}

func NewMessageBuilder(msg dto.AuthEventMessage) *MessageBuilder {
	return &MessageBuilder{msg: msg}
}

func (b *MessageBuilder) Build() ([]byte, error) {
	return json.Marshal(b.msg)
}

// Send dựng message rồi gửi qua notifier
func Send(n Notifier, msg dto.AuthEventMessage) error {
	payload, err := NewMessageBuilder(msg).Build()
	if err != nil {
		return err
	}
	return n.Notify(payload)
}
