package handlers

import (
	"github.com/glimmersocial/glimmer/pkg/notifications"
	"github.com/glimmersocial/glimmer/pkg/pubsub"
)

// Handler handles a specific type of notification
type Handler interface {

	// Type returns the event handled to build a notification
	Type() pubsub.EventType

	// Targets returns the notification receivers
	Targets(event *pubsub.Event) ([]notifications.Target, error)

	// Build builds the notification
	Build(event *pubsub.Event) (*notifications.PushNotification, error)
}
