package notifications_test

import (
	"testing"

	"github.com/alicebob/miniredis"
	"github.com/go-redis/redis/v8"

	"github.com/glimmersocial/glimmer/pkg/notifications"
)

func TestLimiter(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	limiter := notifications.NewLimiter(rdb)

	target := notifications.Target{ID: 1, Mentions: true, Reactions: true}
	reaction := &notifications.PushNotification{
		Category:  notifications.STORY_REACTION,
		Arguments: map[string]interface{}{"id": "abc123"},
	}

	if !limiter.ShouldSendNotification(target, reaction) {
		t.Fatal("expected first reaction notification to send")
	}

	limiter.SentNotification(target, reaction)

	if limiter.ShouldSendNotification(target, reaction) {
		t.Fatal("expected repeat reaction notification to be limited")
	}

	mention := &notifications.PushNotification{
		Category:  notifications.STORY_MENTION,
		Arguments: map[string]interface{}{"id": "abc123"},
	}

	if !limiter.ShouldSendNotification(target, mention) {
		t.Fatal("expected mention notification to always send")
	}
}
