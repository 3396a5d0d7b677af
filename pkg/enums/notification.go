package enums

import (
	"fmt"
	"time"
)

// NotificationType is the visual flavour of a transient notification.
type NotificationType string

const (
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeError   NotificationType = "error"
	NotificationTypeInfo    NotificationType = "info"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeSuccess,
	NotificationTypeError,
	NotificationTypeInfo,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}

// NotificationChannel separates cart toasts from form toasts; each replaces
// only the previous notification on the same channel.
type NotificationChannel string

const (
	NotificationChannelCart NotificationChannel = "cart"
	NotificationChannelForm NotificationChannel = "form"
)

// Duration is how long a notification on the channel stays visible.
func (c NotificationChannel) Duration() time.Duration {
	if c == NotificationChannelForm {
		return 4 * time.Second
	}
	return 3 * time.Second
}

// CSSClass is the element class the storefront script renders the toast with.
func (c NotificationChannel) CSSClass() string {
	return string(c) + "-notification"
}
