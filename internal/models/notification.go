package models

import "time"

type Notification struct {
	ID         int64            `json:"id"`
	SenderID   string           `json:"sender_id"`
	ReceiverID string           `json:"receiver_id"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	MediaURL   *string          `json:"media_url,omitempty"`
	Type       NotificationType `json:"type"`
	IsRead     bool             `json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}
