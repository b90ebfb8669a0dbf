package stories

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/glimmersocial/glimmer/pkg/engagements"
	"github.com/glimmersocial/glimmer/pkg/pubsub"
)

// Sweeper physically removes expired stories with their engagement records.
// Expiry is enforced on every read and write path already, the sweep is a
// cleanup pass, not the enforcement point.
type Sweeper struct {
	stories     *Backend
	engagements *engagements.Backend
	queue       *pubsub.Queue

	interval time.Duration
	now      func() time.Time
}

// NewSweeper returns a sweeper for the passed interval. The interval must be
// strictly shorter than the story TTL.
func NewSweeper(sb *Backend, eb *engagements.Backend, queue *pubsub.Queue, interval time.Duration) (*Sweeper, error) {
	if interval <= 0 {
		return nil, errors.New("sweep interval must be positive")
	}

	if interval >= TTL {
		return nil, errors.New("sweep interval must be shorter than the story TTL")
	}

	return &Sweeper{
		stories:     sb,
		engagements: eb,
		queue:       queue,
		interval:    interval,
		now:         time.Now,
	}, nil
}

// Run sweeps on the configured interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep removes every story past its expiry together with all engagement
// records referencing it, engagements first. A failure on one story is logged
// and retried on the next pass, it never halts the rest of the sweep. Sweeping
// an already removed story is a no-op.
func (s *Sweeper) Sweep() {
	ids, err := s.stories.GetExpired(s.now().Unix())
	if err != nil {
		log.Printf("stories.GetExpired err: %v", err)
		return
	}

	for _, id := range ids {
		err := s.engagements.RemoveAllForStory(id)
		if err != nil {
			log.Printf("engagements.RemoveAllForStory err: %v", err)
			continue
		}

		err = s.stories.DeleteStory(id)
		if err != nil {
			log.Printf("stories.DeleteStory err: %v", err)
			continue
		}

		if s.queue != nil {
			err = s.queue.Publish(pubsub.StoryTopic, pubsub.NewStoryExpiredEvent(id))
			if err != nil {
				log.Printf("queue.Publish err: %v", err)
			}
		}
	}
}
