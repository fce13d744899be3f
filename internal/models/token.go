package models

import "time"

// RefreshToken : une fois révoqué ou expiré, un jeton n'est jamais réémis ;
// on en frappe un nouveau.
type RefreshToken struct {
	ID          int64      `json:"id"`
	Token       string     `json:"token"`
	UserID      string     `json:"user_id"`
	ExpiresAt   time.Time  `json:"expires_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	CreatedByIP string     `json:"created_by_ip"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsActive est un prédicat calculé : ni révoqué, ni expiré.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
