package types

import "github.com/angelmondragon/localarthub-backend/pkg/enums"

// Notification is the transient toast a storefront page shows after an action.
type Notification struct {
	Type       enums.NotificationType    `json:"type"`
	Channel    enums.NotificationChannel `json:"channel"`
	Message    string                    `json:"message"`
	DurationMS int64                     `json:"duration_ms"`
}

func newNotification(channel enums.NotificationChannel, kind enums.NotificationType, message string) *Notification {
	return &Notification{
		Type:       kind,
		Channel:    channel,
		Message:    message,
		DurationMS: channel.Duration().Milliseconds(),
	}
}

// CartNotice builds a cart-channel notification.
func CartNotice(kind enums.NotificationType, message string) *Notification {
	return newNotification(enums.NotificationChannelCart, kind, message)
}

// FormNotice builds a form-channel notification.
func FormNotice(kind enums.NotificationType, message string) *Notification {
	return newNotification(enums.NotificationChannelForm, kind, message)
}
