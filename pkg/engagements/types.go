// Package engagements contains the stores for story engagement records.
package engagements

// Kind is a kind of story engagement.
type Kind string

const (
	KindView     Kind = "view"
	KindReact    Kind = "react"
	KindShare    Kind = "share"
	KindReport   Kind = "report"
	KindQuestion Kind = "question"
)

// Kinds returns every engagement kind.
func Kinds() []Kind {
	return []Kind{KindView, KindReact, KindShare, KindReport, KindQuestion}
}

// KindFromString returns the Kind for a string, false when unknown.
func KindFromString(str string) (Kind, bool) {
	switch Kind(str) {
	case KindView, KindReact, KindShare, KindReport, KindQuestion:
		return Kind(str), true
	}

	return "", false
}

// IsUpsert reports whether a kind is at-most-one-per-user, re-engaging
// replaces the previous record instead of appending.
func (k Kind) IsUpsert() bool {
	return k == KindView || k == KindReact
}

// Record represents a single engagement on a story.
type Record struct {
	ID        string `json:"id"`
	StoryID   string `json:"story_id"`
	UserID    int    `json:"user_id"`
	Emoji     string `json:"emoji,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Text      string `json:"text,omitempty"`
	CreatedAt int64  `json:"created_at"`
}
