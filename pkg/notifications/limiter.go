package notifications

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var reactionNotificationCooldown = 30 * time.Minute
var valueString = "placeholder"

// Limiter prevents a target from being flooded with pushes for the
// same story.
type Limiter struct {
	rdb *redis.Client
}

func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{
		rdb: rdb,
	}
}

func (l *Limiter) ShouldSendNotification(target Target, notification *PushNotification) bool {
	switch notification.Category {
	case STORY_MENTION:
		return true
	case STORY_REACTION:
		return !l.isLimited(limiterKeyForStory(target.ID, notification.Arguments["id"]))
	}

	return false
}

func (l *Limiter) SentNotification(target Target, notification *PushNotification) {
	if notification.Category != STORY_REACTION {
		return
	}

	l.rdb.Set(
		l.rdb.Context(),
		limiterKeyForStory(target.ID, notification.Arguments["id"]),
		valueString,
		reactionNotificationCooldown,
	)
}

func (l *Limiter) isLimited(key string) bool {
	res, err := l.rdb.Get(l.rdb.Context(), key).Result()
	if err != nil || res != valueString {
		return false
	}

	return true
}

func limiterKeyForStory(target int, story interface{}) string {
	return fmt.Sprintf("%d_story_%v", target, story)
}
