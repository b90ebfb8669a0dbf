package sessions_test

import (
	"testing"

	"github.com/alicebob/miniredis"
	"github.com/go-redis/redis/v8"

	"github.com/glimmersocial/glimmer/pkg/sessions"
)

func TestSessionManager(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	sm := sessions.NewSessionManager(rdb)

	session := "12345"
	user := 1

	_, err = sm.GetUserIDForSession(session)
	if err == nil {
		t.Fatal("expected error for unknown session")
	}

	err = sm.NewSession(session, user, 0)
	if err != nil {
		t.Fatal(err)
	}

	id, err := sm.GetUserIDForSession(session)
	if err != nil {
		t.Fatal(err)
	}

	if id != user {
		t.Fatalf("%d does not match %d", id, user)
	}

	err = sm.CloseSession(session)
	if err != nil {
		t.Fatal(err)
	}

	_, err = sm.GetUserIDForSession(session)
	if err == nil {
		t.Fatal("expected error for closed session")
	}
}
