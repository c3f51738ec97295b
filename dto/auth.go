package dto

import "time"

// GoogleLoginInput chứa ID token lấy từ popup đăng nhập Google
type GoogleLoginInput struct {
	TokenID string `json:"tokenId" binding:"required"`
}

// LoginResponse trả về sau khi đăng nhập thành công
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserView     `json:"user_info"`
	Tracker     *TrackerView `json:"tracker,omitempty"`
}

// AuthEventMessage là message gửi qua WebSocket
type AuthEventMessage struct {
	Type    string       `json:"type"`
	User    *UserView    `json:"user,omitempty"`
	Tracker *TrackerView `json:"tracker,omitempty"`
	At      time.Time    `json:"at"`
}
