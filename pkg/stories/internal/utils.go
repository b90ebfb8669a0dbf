package internal

import (
	"github.com/segmentio/ksuid"
)

// GenerateStoryID generates a random alpha-numeric story ID.
func GenerateStoryID() string {
	return ksuid.New().String()
}
