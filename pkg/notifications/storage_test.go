package notifications_test

import (
	"testing"

	"github.com/alicebob/miniredis"
	"github.com/go-redis/redis/v8"

	"github.com/glimmersocial/glimmer/pkg/notifications"
)

func TestStorage(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	storage := notifications.NewStorage(rdb)

	user := 1
	notification := &notifications.Notification{
		Timestamp: 10,
		From:      2,
		Category:  notifications.STORY_MENTION,
	}

	err = storage.Store(user, notification)
	if err != nil {
		t.Fatal(err)
	}

	if !storage.HasNewNotifications(user) {
		t.Fatal("expected new notifications")
	}

	list, err := storage.GetNotifications(user)
	if err != nil {
		t.Fatal(err)
	}

	if len(list) != 1 || list[0].From != notification.From {
		t.Fatalf("unexpected notifications %v", list)
	}

	storage.MarkNotificationsViewed(user)

	if storage.HasNewNotifications(user) {
		t.Fatal("expected notifications to be marked viewed")
	}
}
