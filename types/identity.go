package types

// Identity is what the identity provider tells us about a signed-in user.
type Identity struct {
	UserID      string `json:"id"`
	DisplayName string `json:"name"`
	AvatarURL   string `json:"picture"`
	Email       string `json:"email,omitempty"`
}
