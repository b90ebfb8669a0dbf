package stories_test

import (
	"context"
	"database/sql"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/glimmersocial/glimmer/pkg/engagements"
	"github.com/glimmersocial/glimmer/pkg/feelings"
	httputil "github.com/glimmersocial/glimmer/pkg/http"
	"github.com/glimmersocial/glimmer/pkg/music"
	"github.com/glimmersocial/glimmer/pkg/stories"
	"github.com/glimmersocial/glimmer/pkg/users"
)

func TestMain(m *testing.M) {
	log.SetOutput(ioutil.Discard)
	os.Exit(m.Run())
}

func newTestEndpoint(t *testing.T) (*stories.Endpoint, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}

	sb := stories.NewBackend(db)
	eb := engagements.NewBackend(db)
	ub := users.NewBackend(db)
	mb := music.NewBackend(db)
	fb := feelings.NewBackend(db)

	engine := stories.NewEngine(sb, eb, ub, mb, fb, stories.NewHydrator(ub, mb, fb, eb), nil)

	return stories.NewEndpoint(engine), mock, func() {
		_ = db.Close()
	}
}

func authenticated(r *http.Request, user int) *http.Request {
	return r.WithContext(httputil.WithUserID(context.Background(), user))
}

func TestEndpoint_CreateStory_InvalidContent(t *testing.T) {
	endpoint, _, teardown := newTestEndpoint(t)
	defer teardown()

	form := url.Values{}

	req, err := http.NewRequest("POST", "/create", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	endpoint.Router().ServeHTTP(rr, authenticated(req, 1))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}
}

func TestEndpoint_GetStory_NotFound(t *testing.T) {
	endpoint, mock, teardown := newTestEndpoint(t)
	defer teardown()

	mock.ExpectPrepare("SELECT (.+) FROM stories").
		ExpectQuery().
		WithArgs("abc", sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	req, err := http.NewRequest("GET", "/abc", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	endpoint.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusNotFound)
	}
}

func TestEndpoint_DeleteStory_Forbidden(t *testing.T) {
	endpoint, mock, teardown := newTestEndpoint(t)
	defer teardown()

	mock.ExpectPrepare("SELECT user_id FROM stories").
		ExpectQuery().
		WithArgs("abc").
		WillReturnRows(mock.NewRows([]string{"user_id"}).AddRow(2))

	req, err := http.NewRequest("DELETE", "/abc", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	endpoint.Router().ServeHTTP(rr, authenticated(req, 1))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusForbidden)
	}
}

func TestEndpoint_AddEngagement_QuestionsDisabled(t *testing.T) {
	endpoint, mock, teardown := newTestEndpoint(t)
	defer teardown()

	mock.ExpectPrepare("SELECT (.+) FROM stories").
		ExpectQuery().
		WithArgs("abc", sqlmock.AnyArg()).
		WillReturnRows(storyRows(mock, "abc"))

	mock.ExpectPrepare("SELECT user_id FROM story_mentions").
		ExpectQuery().
		WithArgs("abc").
		WillReturnRows(mock.NewRows([]string{"user_id"}))

	form := url.Values{}
	form.Set("text", "what is this?")

	req, err := http.NewRequest("POST", "/abc/question", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	endpoint.Router().ServeHTTP(rr, authenticated(req, 1))

	if rr.Code != http.StatusPreconditionFailed {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusPreconditionFailed)
	}
}
