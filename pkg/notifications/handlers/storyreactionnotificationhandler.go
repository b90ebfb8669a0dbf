package handlers

import (
	"github.com/glimmersocial/glimmer/pkg/engagements"
	"github.com/glimmersocial/glimmer/pkg/notifications"
	"github.com/glimmersocial/glimmer/pkg/pubsub"
	"github.com/glimmersocial/glimmer/pkg/stories"
	"github.com/glimmersocial/glimmer/pkg/users"
)

type StoryReactionNotificationHandler struct {
	targets *notifications.Targets
	users   *users.Backend
	stories *stories.Backend
}

func NewStoryReactionNotificationHandler(targets *notifications.Targets, u *users.Backend, s *stories.Backend) *StoryReactionNotificationHandler {
	return &StoryReactionNotificationHandler{
		targets: targets,
		users:   u,
		stories: s,
	}
}

func (h StoryReactionNotificationHandler) Type() pubsub.EventType {
	return pubsub.EventTypeStoryEngagement
}

func (h StoryReactionNotificationHandler) Targets(event *pubsub.Event) ([]notifications.Target, error) {
	kind, err := event.GetString("kind")
	if err != nil {
		return nil, err
	}

	if kind != string(engagements.KindReact) {
		return []notifications.Target{}, nil
	}

	story, err := event.GetString("id")
	if err != nil {
		return nil, err
	}

	user, err := event.GetInt("user")
	if err != nil {
		return nil, err
	}

	owner, err := h.stories.GetStoryOwner(story)
	if err != nil {
		return nil, err
	}

	// users are not notified about their own reactions
	if owner == user {
		return []notifications.Target{}, nil
	}

	target, err := h.targets.GetTargetFor(owner)
	if err != nil {
		return nil, err
	}

	if !target.Reactions {
		return []notifications.Target{}, nil
	}

	return []notifications.Target{*target}, nil
}

func (h StoryReactionNotificationHandler) Build(event *pubsub.Event) (*notifications.PushNotification, error) {
	user, err := event.GetInt("user")
	if err != nil {
		return nil, err
	}

	story, err := event.GetString("id")
	if err != nil {
		return nil, err
	}

	reactor, err := h.users.GetUserByID(user)
	if err != nil {
		return nil, err
	}

	return &notifications.PushNotification{
		Category: notifications.STORY_REACTION,
		Alert: notifications.Alert{
			Key:       "story_reaction_notification",
			Arguments: []string{reactor.DisplayName},
		},
		Arguments:  map[string]interface{}{"id": story, "from": user},
		CollapseID: story,
	}, nil
}
