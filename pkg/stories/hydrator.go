package stories

import (
	"database/sql"

	"github.com/glimmersocial/glimmer/pkg/engagements"
	"github.com/glimmersocial/glimmer/pkg/feelings"
	"github.com/glimmersocial/glimmer/pkg/music"
	"github.com/glimmersocial/glimmer/pkg/users"
)

// HydratedStory is the read-time projection of a story with every reference
// resolved into a loaded object. It is never persisted.
type HydratedStory struct {
	Story

	User      *users.User           `json:"user"`
	Music     *music.Music          `json:"music,omitempty"`
	Feeling   *feelings.Feeling     `json:"feeling,omitempty"`
	Mentioned []*users.User         `json:"mentioned"`
	Views     []*engagements.Record `json:"views"`
	Reacts    []*engagements.Record `json:"reacts"`
	Shares    []*engagements.Record `json:"shares"`
	Reports   []*engagements.Record `json:"reports"`
	Questions []*engagements.Record `json:"questions"`
	Reactions []Reaction            `json:"reactions"`
}

// Hydrator resolves story references on reads. It never writes, a missing
// reference becomes a tombstone instead of failing the projection.
type Hydrator struct {
	users       *users.Backend
	music       *music.Backend
	feelings    *feelings.Backend
	engagements *engagements.Backend
}

func NewHydrator(ub *users.Backend, mb *music.Backend, fb *feelings.Backend, eb *engagements.Backend) *Hydrator {
	return &Hydrator{
		users:       ub,
		music:       mb,
		feelings:    fb,
		engagements: eb,
	}
}

func (h *Hydrator) Hydrate(story *Story) (*HydratedStory, error) {
	view := &HydratedStory{Story: *story}

	owner, err := h.users.GetUserByID(story.UserID)
	if err != nil {
		if err != sql.ErrNoRows {
			return nil, err
		}

		owner = users.Tombstone(story.UserID)
	}

	view.User = owner

	if story.MusicID != 0 {
		track, err := h.music.GetMusicWithID(story.MusicID)
		if err != nil {
			if err != sql.ErrNoRows {
				return nil, err
			}

			track = music.Tombstone(story.MusicID)
		}

		view.Music = track
	}

	if story.FeelingID != 0 {
		feeling, err := h.feelings.GetFeelingWithID(story.FeelingID)
		if err != nil {
			if err != sql.ErrNoRows {
				return nil, err
			}

			feeling = feelings.Tombstone(story.FeelingID)
		}

		view.Feeling = feeling
	}

	view.Mentioned = make([]*users.User, 0)
	for _, id := range story.Mentions {
		user, err := h.users.GetUserByID(id)
		if err != nil {
			if err != sql.ErrNoRows {
				return nil, err
			}

			user = users.Tombstone(id)
		}

		view.Mentioned = append(view.Mentioned, user)
	}

	view.Views, err = h.engagements.ListByStory(engagements.KindView, story.ID)
	if err != nil {
		return nil, err
	}

	view.Reacts, err = h.engagements.ListByStory(engagements.KindReact, story.ID)
	if err != nil {
		return nil, err
	}

	view.Shares, err = h.engagements.ListByStory(engagements.KindShare, story.ID)
	if err != nil {
		return nil, err
	}

	view.Reports, err = h.engagements.ListByStory(engagements.KindReport, story.ID)
	if err != nil {
		return nil, err
	}

	view.Questions, err = h.engagements.ListByStory(engagements.KindQuestion, story.ID)
	if err != nil {
		return nil, err
	}

	view.Reactions = summarizeReactions(view.Reacts)

	return view, nil
}

func summarizeReactions(reacts []*engagements.Record) []Reaction {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, react := range reacts {
		if _, seen := counts[react.Emoji]; !seen {
			order = append(order, react.Emoji)
		}

		counts[react.Emoji]++
	}

	result := make([]Reaction, 0)
	for _, emoji := range order {
		result = append(result, Reaction{Emoji: emoji, Count: counts[emoji]})
	}

	return result
}
