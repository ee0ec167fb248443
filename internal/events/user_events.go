package events

import "time"

const PasswordResetTopic = "elms.user.password-reset.v1"

const EventTypePasswordResetRequested = "user.password_reset_requested"

type PasswordResetRequestedEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	ResetToken string    `json:"reset_token"`
	ExpiresAt  time.Time `json:"expires_at"`
	OccurredAt time.Time `json:"occurred_at"`
}
