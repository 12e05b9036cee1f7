package models

import "time"

type NotificationType string

const (
	NotificationSessionAccessed    NotificationType = "session_accessed"
	NotificationSelectionStarted   NotificationType = "selection_started"
	NotificationSelectionSubmitted NotificationType = "selection_submitted"
	NotificationReopenRequested    NotificationType = "reopen_requested"
)

// Notification is an observational audit record for the admin panel. It is
// never authoritative state.
type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	SessionID   string           `json:"sessionId"`
	SessionName string           `json:"sessionName"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"createdAt"`
}
