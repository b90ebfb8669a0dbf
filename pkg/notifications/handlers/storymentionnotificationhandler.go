package handlers

import (
	"github.com/glimmersocial/glimmer/pkg/notifications"
	"github.com/glimmersocial/glimmer/pkg/pubsub"
	"github.com/glimmersocial/glimmer/pkg/users"
)

type StoryMentionNotificationHandler struct {
	targets *notifications.Targets
	users   *users.Backend
}

func NewStoryMentionNotificationHandler(targets *notifications.Targets, u *users.Backend) *StoryMentionNotificationHandler {
	return &StoryMentionNotificationHandler{
		targets: targets,
		users:   u,
	}
}

func (h StoryMentionNotificationHandler) Type() pubsub.EventType {
	return pubsub.EventTypeStoryMention
}

func (h StoryMentionNotificationHandler) Targets(event *pubsub.Event) ([]notifications.Target, error) {
	mentioned, err := event.GetInt("mentioned")
	if err != nil {
		return nil, err
	}

	target, err := h.targets.GetTargetFor(mentioned)
	if err != nil {
		return nil, err
	}

	if !target.Mentions {
		return []notifications.Target{}, nil
	}

	return []notifications.Target{*target}, nil
}

func (h StoryMentionNotificationHandler) Build(event *pubsub.Event) (*notifications.PushNotification, error) {
	creator, err := event.GetInt("creator")
	if err != nil {
		return nil, err
	}

	story, err := event.GetString("id")
	if err != nil {
		return nil, err
	}

	user, err := h.users.GetUserByID(creator)
	if err != nil {
		return nil, err
	}

	return &notifications.PushNotification{
		Category: notifications.STORY_MENTION,
		Alert: notifications.Alert{
			Key:       "story_mention_notification",
			Arguments: []string{user.DisplayName},
		},
		Arguments:  map[string]interface{}{"id": story, "from": creator},
		CollapseID: story,
	}, nil
}
