package stories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"

	"github.com/glimmersocial/glimmer/pkg/engagements"
)

func newTestSweeper(t *testing.T, now int64) (*Sweeper, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}

	sweeper, err := NewSweeper(NewBackend(db), engagements.NewBackend(db), nil, 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	sweeper.now = func() time.Time {
		return time.Unix(now, 0)
	}

	return sweeper, mock, func() {
		_ = db.Close()
	}
}

func expectCascade(mock sqlmock.Sqlmock, id string) {
	for _, table := range []string{"story_views", "story_reacts", "story_shares", "story_reports", "story_questions"} {
		mock.ExpectPrepare("DELETE FROM " + table).
			ExpectExec().
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	mock.ExpectPrepare("DELETE FROM story_mentions").
		ExpectExec().
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectPrepare("DELETE FROM stories").
		ExpectExec().
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestNewSweeper_RejectsBadIntervals(t *testing.T) {
	_, err := NewSweeper(nil, nil, nil, 0)
	if err == nil {
		t.Fatal("expected error for zero interval")
	}

	_, err = NewSweeper(nil, nil, nil, TTL)
	if err == nil {
		t.Fatal("expected error for interval not shorter than the TTL")
	}

	_, err = NewSweeper(nil, nil, nil, 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
}

func TestSweeper_Sweep(t *testing.T) {
	now := int64(90000)

	sweeper, mock, teardown := newTestSweeper(t, now)
	defer teardown()

	mock.ExpectPrepare("SELECT id FROM stories WHERE expires_at <=").
		ExpectQuery().
		WithArgs(now).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))

	expectCascade(mock, "a")
	expectCascade(mock, "b")

	sweeper.Sweep()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSweeper_SweepTwiceIsIdempotent(t *testing.T) {
	now := int64(90000)

	sweeper, mock, teardown := newTestSweeper(t, now)
	defer teardown()

	mock.ExpectPrepare("SELECT id FROM stories WHERE expires_at <=").
		ExpectQuery().
		WithArgs(now).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("a"))

	expectCascade(mock, "a")

	sweeper.Sweep()

	// the second pass finds nothing left to remove
	mock.ExpectPrepare("SELECT id FROM stories WHERE expires_at <=").
		ExpectQuery().
		WithArgs(now).
		WillReturnRows(mock.NewRows([]string{"id"}))

	sweeper.Sweep()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSweeper_SweepContinuesAfterStoryFailure(t *testing.T) {
	now := int64(90000)

	sweeper, mock, teardown := newTestSweeper(t, now)
	defer teardown()

	mock.ExpectPrepare("SELECT id FROM stories WHERE expires_at <=").
		ExpectQuery().
		WithArgs(now).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))

	// story a fails mid cascade and stays for the next pass
	mock.ExpectPrepare("DELETE FROM story_views").
		ExpectExec().
		WithArgs("a").
		WillReturnError(errors.New("connection reset"))

	expectCascade(mock, "b")

	sweeper.Sweep()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
