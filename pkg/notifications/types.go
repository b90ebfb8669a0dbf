package notifications

type NotificationCategory string

const (
	STORY_MENTION  NotificationCategory = "STORY_MENTION"
	STORY_REACTION NotificationCategory = "STORY_REACTION"
)

type Alert struct {
	Body      string   `json:"body,omitempty"`
	Key       string   `json:"loc-key"`
	Arguments []string `json:"loc-args"`
}

// PushNotification is JSON encoded and sent to the APNS service.
type PushNotification struct {
	Category   NotificationCategory   `json:"category"`
	Alert      Alert                  `json:"alert"`
	Arguments  map[string]interface{} `json:"arguments"`
	CollapseID string                 `json:"-"`
}

// Notification is stored in redis for the notification endpoint.
type Notification struct {
	Timestamp int64                  `json:"timestamp"`
	From      int                    `json:"from"`
	Category  NotificationCategory   `json:"category"`
	Arguments map[string]interface{} `json:"arguments"`
}

// APNS sends push notifications to a device token.
type APNS interface {
	Send(target string, notification PushNotification) error
}
