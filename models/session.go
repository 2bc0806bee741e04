package models

import "time"

// Session, bir refresh token oturumunu temsil eder.
// Access token (JWT) kısa ömürlüdür; uzun ömürlü refresh token DB'de
// saklanır ve logout ile iptal edilebilir.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
