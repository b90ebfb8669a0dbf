// Package sessions is an abstraction over redis for verified user sessions.
package sessions

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type SessionManager struct {
	rdb *redis.Client
}

func NewSessionManager(rdb *redis.Client) *SessionManager {
	return &SessionManager{rdb: rdb}
}

// NewSession stores a session for a user, expiration 0 means the session never expires.
func (sm *SessionManager) NewSession(id string, user int, expiration time.Duration) error {
	return sm.rdb.Set(sm.rdb.Context(), sessionKey(id), strconv.Itoa(user), expiration).Err()
}

// GetUserIDForSession returns the user a session belongs to.
func (sm *SessionManager) GetUserIDForSession(id string) (int, error) {
	val, err := sm.rdb.Get(sm.rdb.Context(), sessionKey(id)).Result()
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(val)
}

// CloseSession removes a session.
func (sm *SessionManager) CloseSession(id string) error {
	return sm.rdb.Del(sm.rdb.Context(), sessionKey(id)).Err()
}

func sessionKey(id string) string {
	return fmt.Sprintf("session_%s", id)
}
