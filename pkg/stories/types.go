package stories

import "time"

const (
	// TTL is how long a story stays visible after creation.
	TTL = 24 * time.Hour

	// MaxTextLength is the longest allowed story text.
	MaxTextLength = 500
)

// Story represents a user story. Referenced entities are stored as
// identifiers only, hydration happens at read time.
type Story struct {
	ID          string `json:"id"`
	UserID      int    `json:"user_id"`
	Text        string `json:"text,omitempty"`
	Picture     string `json:"picture,omitempty"`
	Video       string `json:"video,omitempty"`
	Link        string `json:"link,omitempty"`
	MusicID     int    `json:"music_id,omitempty"`
	FeelingID   int    `json:"feeling_id,omitempty"`
	Location    string `json:"location,omitempty"`
	Hashtag     string `json:"hashtag,omitempty"`
	IsQuestions bool   `json:"is_questions"`
	Mentions    []int  `json:"mentions"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Reaction summarizes the reactions users submitted to a story.
type Reaction struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// StoryInput is the caller provided content for a new story.
type StoryInput struct {
	Text        string
	Picture     string
	Video       string
	Link        string
	MusicID     int
	FeelingID   int
	Location    string
	Hashtag     string
	IsQuestions bool
	Mentions    []int
}

// EngagementInput is the kind specific payload for an engagement.
type EngagementInput struct {
	Emoji  string
	Reason string
	Text   string
}
