package model

import "time"

// UserProfile holds identity and display info. UID and Email are set once
// an identity is established with the sync server.
type UserProfile struct {
	UID       string    `json:"uid,omitempty"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birth_date,omitempty"` // DateLayout
	JoinedAt  time.Time `json:"joined_at"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}
