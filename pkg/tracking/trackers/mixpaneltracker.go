package trackers

import (
	"fmt"
	"strconv"

	"github.com/dukex/mixpanel"

	"github.com/glimmersocial/glimmer/pkg/pubsub"
	"github.com/glimmersocial/glimmer/pkg/tracking"
)

const (
	NewUser    = "new_user"
	DeleteUser = "delete_user"
)

type MixpanelTracker struct {
	client mixpanel.Mixpanel
}

func NewMixpanelTracker(client mixpanel.Mixpanel) *MixpanelTracker {
	return &MixpanelTracker{client: client}
}

func (m *MixpanelTracker) CanTrack(event *pubsub.Event) bool {
	// expiry and mention events carry no acting user
	return event.Type != pubsub.EventTypeStoryExpired &&
		event.Type != pubsub.EventTypeStoryMention
}

func (m *MixpanelTracker) Track(event *pubsub.Event) error {
	log := transform(event)
	if log == nil {
		return fmt.Errorf("invalid type for tracker: %d", event.Type)
	}

	if log.Name == DeleteUser {
		return m.client.Update(log.ID, &mixpanel.Update{
			IP:        "0",
			Operation: "$delete",
		})
	}

	err := m.client.Track(log.ID, log.Name, &mixpanel.Event{IP: "0", Properties: log.Properties})
	if err != nil {
		return err
	}

	if log.Name == NewUser {
		err := m.client.Update(log.ID, &mixpanel.Update{
			IP:         "0",
			Operation:  "$set",
			Properties: log.Properties,
		})

		if err != nil {
			return err
		}
	}

	return nil
}

func transform(event *pubsub.Event) *tracking.Event {
	switch event.Type {
	case pubsub.EventTypeNewStory:
		id, err := event.GetInt("creator")
		if err != nil {
			return nil
		}

		return &tracking.Event{
			ID:   strconv.Itoa(id),
			Name: "story_new",
			Properties: map[string]interface{}{
				"story_id": event.Params["id"],
			},
		}
	case pubsub.EventTypeStoryEngagement:
		id, err := event.GetInt("user")
		if err != nil {
			return nil
		}

		kind, err := event.GetString("kind")
		if err != nil {
			return nil
		}

		return &tracking.Event{
			ID:   strconv.Itoa(id),
			Name: "story_" + kind,
			Properties: map[string]interface{}{
				"story_id": event.Params["id"],
			},
		}
	case pubsub.EventTypeStoryDelete:
		id, err := event.GetInt("user")
		if err != nil {
			return nil
		}

		return &tracking.Event{
			ID:   strconv.Itoa(id),
			Name: "story_delete",
			Properties: map[string]interface{}{
				"story_id": event.Params["id"],
			},
		}
	case pubsub.EventTypeNewUser:
		id, err := event.GetInt("id")
		if err != nil {
			return nil
		}

		return &tracking.Event{
			ID:   strconv.Itoa(id),
			Name: NewUser,
			Properties: map[string]interface{}{
				"user_id":  event.Params["id"],
				"username": event.Params["username"],
			},
		}
	case pubsub.EventTypeDeleteUser:
		id, err := event.GetInt("id")
		if err != nil {
			return nil
		}

		return &tracking.Event{
			ID:         strconv.Itoa(id),
			Name:       DeleteUser,
			Properties: map[string]interface{}{},
		}
	}

	return nil
}
