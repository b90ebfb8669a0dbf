package engagements_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/glimmersocial/glimmer/pkg/engagements"
)

func TestBackend_AddView_Upserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	backend := engagements.NewBackend(db)

	story := "story"
	user := 1
	now := int64(100)

	// the conflict target keeps a single live row per (story, user)
	mock.ExpectPrepare("INSERT INTO story_views (.+) ON CONFLICT \\(story_id, user_id\\) DO UPDATE").
		ExpectQuery().
		WithArgs(sqlmock.AnyArg(), story, user, now).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("existing-id"))

	record, err := backend.AddView(story, user, now)
	if err != nil {
		t.Fatal(err)
	}

	if record.ID != "existing-id" {
		t.Fatal("record should keep the id of the surviving row")
	}
}

func TestBackend_AddReact_LastWriteWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	backend := engagements.NewBackend(db)

	story := "story"
	user := 1
	emoji := "🔥"
	now := int64(100)

	mock.ExpectPrepare("INSERT INTO story_reacts (.+) ON CONFLICT \\(story_id, user_id\\) DO UPDATE SET emoji").
		ExpectQuery().
		WithArgs(sqlmock.AnyArg(), story, user, emoji, now).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("id"))

	record, err := backend.AddReact(story, user, emoji, now)
	if err != nil {
		t.Fatal(err)
	}

	if record.Emoji != emoji {
		t.Fatal("emoji not matching")
	}
}

func TestBackend_AddReport(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	backend := engagements.NewBackend(db)

	mock.ExpectPrepare("INSERT INTO story_reports").
		ExpectExec().
		WithArgs(sqlmock.AnyArg(), "story", 1, "spam", int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	record, err := backend.AddReport("story", 1, "spam", 100)
	if err != nil {
		t.Fatal(err)
	}

	if record.Reason != "spam" {
		t.Fatal("reason not matching")
	}
}

func TestBackend_ListByStory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	backend := engagements.NewBackend(db)

	story := "story"
	mock.ExpectPrepare("SELECT id, story_id, user_id, emoji, created_at FROM story_reacts").
		ExpectQuery().
		WithArgs(story).
		WillReturnRows(mock.NewRows([]string{"id", "story_id", "user_id", "emoji", "created_at"}).
			AddRow("id", story, 1, "😂", 100))

	result, err := backend.ListByStory(engagements.KindReact, story)
	if err != nil {
		t.Fatal(err)
	}

	if len(result) != 1 {
		t.Fatalf("unexpected result count %d", len(result))
	}

	if result[0].Emoji != "😂" {
		t.Fatal("emoji not matching")
	}
}

func TestBackend_RemoveAllForStory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	backend := engagements.NewBackend(db)

	story := "story"
	for _, table := range []string{"story_views", "story_reacts", "story_shares", "story_reports", "story_questions"} {
		mock.ExpectPrepare("DELETE FROM " + table).
			ExpectExec().
			WithArgs(story).
			WillReturnResult(sqlmock.NewResult(0, 2))
	}

	err = backend.RemoveAllForStory(story)
	if err != nil {
		t.Fatal(err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestKindFromString(t *testing.T) {
	var tests = []struct {
		in string
		ok bool
	}{
		{"view", true},
		{"react", true},
		{"share", true},
		{"report", true},
		{"question", true},
		{"poke", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, ok := engagements.KindFromString(tt.in)
			if ok != tt.ok {
				t.Fatalf("expected %v for %s", tt.ok, tt.in)
			}
		})
	}
}

func TestKind_IsUpsert(t *testing.T) {
	if !engagements.KindView.IsUpsert() {
		t.Fatal("view should upsert")
	}

	if !engagements.KindReact.IsUpsert() {
		t.Fatal("react should upsert")
	}

	if engagements.KindShare.IsUpsert() {
		t.Fatal("share should append")
	}

	if engagements.KindReport.IsUpsert() {
		t.Fatal("report should append")
	}

	if engagements.KindQuestion.IsUpsert() {
		t.Fatal("question should append")
	}
}
