package handlers_test

import (
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/glimmersocial/glimmer/pkg/notifications"
	"github.com/glimmersocial/glimmer/pkg/notifications/handlers"
	"github.com/glimmersocial/glimmer/pkg/pubsub"
	"github.com/glimmersocial/glimmer/pkg/users"
)

func TestStoryMentionNotificationHandler_Targets(t *testing.T) {
	raw := pubsub.NewStoryMentionEvent("abc123", 12, 1)
	event, err := getRawEvent(&raw)
	if err != nil {
		t.Fatal(err)
	}

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	handler := handlers.NewStoryMentionNotificationHandler(
		notifications.NewTargets(db),
		nil,
	)

	mock.
		ExpectPrepare("SELECT").
		ExpectQuery().
		WithArgs(1).
		WillReturnRows(mock.NewRows([]string{"user_id", "mentions", "reactions"}).FromCSVString("1,true,false"))

	target, err := handler.Targets(event)
	if err != nil {
		t.Fatal(err)
	}

	expected := []notifications.Target{
		{ID: 1, Mentions: true, Reactions: false},
	}

	if !reflect.DeepEqual(target, expected) {
		t.Fatalf("expected %v actual %v", expected, target)
	}
}

func TestStoryMentionNotificationHandler_TargetsWithMentionsDisabled(t *testing.T) {
	raw := pubsub.NewStoryMentionEvent("abc123", 12, 1)
	event, err := getRawEvent(&raw)
	if err != nil {
		t.Fatal(err)
	}

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	handler := handlers.NewStoryMentionNotificationHandler(
		notifications.NewTargets(db),
		nil,
	)

	mock.
		ExpectPrepare("SELECT").
		ExpectQuery().
		WithArgs(1).
		WillReturnRows(mock.NewRows([]string{"user_id", "mentions", "reactions"}).FromCSVString("1,false,true"))

	target, err := handler.Targets(event)
	if err != nil {
		t.Fatal(err)
	}

	if len(target) != 0 {
		t.Fatalf("expected no targets, got %v", target)
	}
}

func TestStoryMentionNotificationHandler_Build(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	handler := handlers.NewStoryMentionNotificationHandler(notifications.NewTargets(nil), users.NewBackend(db))

	displayName := "foo"
	user := 12
	story := "abc123"

	raw := pubsub.NewStoryMentionEvent(story, user, 13)

	event, err := getRawEvent(&raw)
	if err != nil {
		t.Fatal(err)
	}

	mock.
		ExpectPrepare("SELECT").
		ExpectQuery().
		WillReturnRows(mock.NewRows([]string{"id", "display_name", "username", "image"}).FromCSVString("12,foo,foo,foo.png"))

	n, err := handler.Build(event)
	if err != nil {
		t.Fatal(err)
	}

	notification := &notifications.PushNotification{
		Category: notifications.STORY_MENTION,
		Alert: notifications.Alert{
			Key:       "story_mention_notification",
			Arguments: []string{displayName},
		},
		Arguments:  map[string]interface{}{"id": story, "from": user},
		CollapseID: story,
	}

	if !reflect.DeepEqual(n, notification) {
		t.Fatalf("expected %v actual %v", notification, n)
	}
}
