package worker

import "github.com/glimmersocial/glimmer/pkg/notifications"

type Job struct {
	Targets      []notifications.Target
	Notification *notifications.PushNotification
}
