package entity

import "time"

type NotificationType string

const (
	NotificationTypeReminder     NotificationType = "APPOINTMENT_REMINDER"
	NotificationTypeAppointment  NotificationType = "APPOINTMENT_UPDATE"
	NotificationTypePrescription NotificationType = "PRESCRIPTION_READY"
	NotificationTypeSystem       NotificationType = "SYSTEM_ALERT"
)

type Notification struct {
	ID        int64                  `json:"id" db:"id"`
	UserID    int64                  `json:"userId" db:"user_id"`
	Type      NotificationType       `json:"type" db:"type"`
	Title     string                 `json:"title" db:"title"`
	Body      string                 `json:"body" db:"body"`
	Data      map[string]interface{} `json:"data,omitempty" db:"data"`
	IsRead    bool                   `json:"isRead" db:"is_read"`
	CreatedAt time.Time              `json:"createdAt" db:"created_at"`
}

// NotificationStats is the admin aggregate over all stored notifications.
type NotificationStats struct {
	Total     int64 `json:"total"`
	Unread    int64 `json:"unread"`
	Reminders int64 `json:"reminders"`
}
