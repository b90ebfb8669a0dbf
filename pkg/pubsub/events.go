package pubsub

import "errors"

type EventType int

const (
	EventTypeNewStory EventType = iota
	EventTypeStoryEngagement
	EventTypeStoryDelete
	EventTypeStoryExpired
	EventTypeStoryMention
	EventTypeNewUser
	EventTypeDeleteUser
)

type Event struct {
	Type   EventType              `json:"type"`
	Params map[string]interface{} `json:"params"`
}

// GetInt returns an integer parameter of the event.
func (e Event) GetInt(key string) (int, error) {
	val, ok := e.Params[key]
	if !ok {
		return 0, errors.New("no value for key")
	}

	// json numbers decode as float64
	switch num := val.(type) {
	case float64:
		return int(num), nil
	case int:
		return num, nil
	}

	return 0, errors.New("value is not a number")
}

// GetString returns a string parameter of the event.
func (e Event) GetString(key string) (string, error) {
	val, ok := e.Params[key]
	if !ok {
		return "", errors.New("no value for key")
	}

	str, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return str, nil
}

func NewStoryCreationEvent(story string, creator int) Event {
	return Event{
		Type:   EventTypeNewStory,
		Params: map[string]interface{}{"id": story, "creator": creator},
	}
}

func NewStoryEngagementEvent(story string, user int, kind string) Event {
	return Event{
		Type:   EventTypeStoryEngagement,
		Params: map[string]interface{}{"id": story, "user": user, "kind": kind},
	}
}

func NewStoryDeleteEvent(story string, user int) Event {
	return Event{
		Type:   EventTypeStoryDelete,
		Params: map[string]interface{}{"id": story, "user": user},
	}
}

func NewStoryExpiredEvent(story string) Event {
	return Event{
		Type:   EventTypeStoryExpired,
		Params: map[string]interface{}{"id": story},
	}
}

func NewStoryMentionEvent(story string, creator, mentioned int) Event {
	return Event{
		Type:   EventTypeStoryMention,
		Params: map[string]interface{}{"id": story, "creator": creator, "mentioned": mentioned},
	}
}

func NewUserEvent(id int, username string) Event {
	return Event{
		Type:   EventTypeNewUser,
		Params: map[string]interface{}{"id": id, "username": username},
	}
}

func NewDeleteUserEvent(id int) Event {
	return Event{
		Type:   EventTypeDeleteUser,
		Params: map[string]interface{}{"id": id},
	}
}
