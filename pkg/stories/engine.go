package stories

import (
	"database/sql"
	"log"
	"time"

	"github.com/glimmersocial/glimmer/pkg/engagements"
	"github.com/glimmersocial/glimmer/pkg/feelings"
	"github.com/glimmersocial/glimmer/pkg/music"
	"github.com/glimmersocial/glimmer/pkg/pubsub"
	"github.com/glimmersocial/glimmer/pkg/stories/internal"
	"github.com/glimmersocial/glimmer/pkg/users"
)

// Engine exposes the create, engage, remove and view operations over stories.
// It owns the invariants: expiry is checked on every path, engagement upserts
// never duplicate, removal cascades engagements before the story record.
type Engine struct {
	stories     *Backend
	engagements *engagements.Backend
	users       *users.Backend
	music       *music.Backend
	feelings    *feelings.Backend
	hydrator    *Hydrator
	queue       *pubsub.Queue

	now func() time.Time
}

func NewEngine(
	sb *Backend,
	eb *engagements.Backend,
	ub *users.Backend,
	mb *music.Backend,
	fb *feelings.Backend,
	hydrator *Hydrator,
	queue *pubsub.Queue,
) *Engine {
	return &Engine{
		stories:     sb,
		engagements: eb,
		users:       ub,
		music:       mb,
		feelings:    fb,
		hydrator:    hydrator,
		queue:       queue,
		now:         time.Now,
	}
}

// CreateStory validates and persists a new story for the owner.
func (e *Engine) CreateStory(owner int, input StoryInput) (*Story, error) {
	err := ValidateContent(input)
	if err != nil {
		return nil, err
	}

	if input.MusicID != 0 {
		_, err := e.music.GetMusicWithID(input.MusicID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, &ReferenceError{Kind: "music", ID: input.MusicID}
			}

			return nil, err
		}
	}

	if input.FeelingID != 0 {
		_, err := e.feelings.GetFeelingWithID(input.FeelingID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, &ReferenceError{Kind: "feeling", ID: input.FeelingID}
			}

			return nil, err
		}
	}

	for _, id := range input.Mentions {
		_, err := e.users.GetUserByID(id)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, &ReferenceError{Kind: "user", ID: id}
			}

			return nil, err
		}
	}

	now := e.now().Unix()

	story := &Story{
		ID:          internal.GenerateStoryID(),
		UserID:      owner,
		Text:        input.Text,
		Picture:     input.Picture,
		Video:       input.Video,
		Link:        input.Link,
		MusicID:     input.MusicID,
		FeelingID:   input.FeelingID,
		Location:    input.Location,
		Hashtag:     input.Hashtag,
		IsQuestions: input.IsQuestions,
		Mentions:    input.Mentions,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now + int64(TTL.Seconds()),
	}

	if story.Mentions == nil {
		story.Mentions = make([]int, 0)
	}

	err = e.stories.AddStory(story)
	if err != nil {
		return nil, err
	}

	e.publish(pubsub.NewStoryCreationEvent(story.ID, owner))
	for _, id := range story.Mentions {
		e.publish(pubsub.NewStoryMentionEvent(story.ID, owner, id))
	}

	return story, nil
}

// AddEngagement records an engagement of the passed kind on a story. Expired
// stories behave as absent. Views and reacts replace the user's previous
// record, the other kinds append.
func (e *Engine) AddEngagement(story string, user int, kind engagements.Kind, input EngagementInput) (*engagements.Record, error) {
	now := e.now()

	target, err := e.stories.GetStory(story, now.Unix())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}

		return nil, err
	}

	var record *engagements.Record

	switch kind {
	case engagements.KindView:
		record, err = e.engagements.AddView(story, user, now.Unix())
	case engagements.KindReact:
		if input.Emoji == "" {
			return nil, &ValidationError{Reason: "react needs an emoji"}
		}

		record, err = e.engagements.AddReact(story, user, input.Emoji, now.Unix())
	case engagements.KindShare:
		record, err = e.engagements.AddShare(story, user, now.Unix())
	case engagements.KindReport:
		if input.Reason == "" {
			return nil, &ValidationError{Reason: "report needs a reason"}
		}

		record, err = e.engagements.AddReport(story, user, input.Reason, now.Unix())
	case engagements.KindQuestion:
		if !target.IsQuestions {
			return nil, ErrQuestionsDisabled
		}

		if input.Text == "" {
			return nil, &ValidationError{Reason: "question needs text"}
		}

		record, err = e.engagements.AddQuestion(story, user, input.Text, now.Unix())
	default:
		return nil, &ValidationError{Reason: "unknown engagement kind"}
	}

	if err != nil {
		return nil, err
	}

	err = e.stories.TouchStory(story, now.Unix())
	if err != nil {
		return nil, err
	}

	e.publish(pubsub.NewStoryEngagementEvent(story, user, string(kind)))

	return record, nil
}

// RemoveStory deletes a story owned by the requester, cascading engagement
// records before the story itself. A crash mid-cascade leaves orphaned
// engagements for the sweeper, never a story pointing at missing records.
func (e *Engine) RemoveStory(story string, requester int) error {
	owner, err := e.stories.GetStoryOwner(story)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}

		return err
	}

	if owner != requester {
		return ErrForbidden
	}

	err = e.engagements.RemoveAllForStory(story)
	if err != nil {
		return err
	}

	err = e.stories.DeleteStory(story)
	if err != nil {
		return err
	}

	e.publish(pubsub.NewStoryDeleteEvent(story, requester))

	return nil
}

// GetStoryView returns the hydrated projection of a story, ErrNotFound once
// it expired even when the record has not been swept yet.
func (e *Engine) GetStoryView(story string) (*HydratedStory, error) {
	target, err := e.stories.GetStory(story, e.now().Unix())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return e.hydrator.Hydrate(target)
}

// GetStoriesForUser returns the hydrated un-expired stories of a user.
func (e *Engine) GetStoriesForUser(user int) ([]*HydratedStory, error) {
	list, err := e.stories.GetStoriesForUser(user, e.now().Unix())
	if err != nil {
		return nil, err
	}

	result := make([]*HydratedStory, 0)

	for _, story := range list {
		view, err := e.hydrator.Hydrate(story)
		if err != nil {
			return nil, err
		}

		result = append(result, view)
	}

	return result, nil
}

func (e *Engine) publish(event pubsub.Event) {
	if e.queue == nil {
		return
	}

	err := e.queue.Publish(pubsub.StoryTopic, event)
	if err != nil {
		log.Printf("queue.Publish err: %v", err)
	}
}
