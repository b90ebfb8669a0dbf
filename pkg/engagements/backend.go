package engagements

import (
	"database/sql"

	"github.com/google/uuid"
)

var tables = map[Kind]string{
	KindView:     "story_views",
	KindReact:    "story_reacts",
	KindShare:    "story_shares",
	KindReport:   "story_reports",
	KindQuestion: "story_questions",
}

type Backend struct {
	db *sql.DB
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{db: db}
}

// AddView records that a user has seen a story, seeing it again updates the
// previous record.
func (b *Backend) AddView(story string, user int, now int64) (*Record, error) {
	stmt, err := b.db.Prepare("INSERT INTO story_views (id, story_id, user_id, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (story_id, user_id) DO UPDATE SET created_at = $4 RETURNING id;")
	if err != nil {
		return nil, err
	}

	record := &Record{StoryID: story, UserID: user, CreatedAt: now}

	err = stmt.QueryRow(uuid.NewString(), story, user, now).Scan(&record.ID)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// AddReact records a reaction, reacting again replaces the previous emoji.
func (b *Backend) AddReact(story string, user int, emoji string, now int64) (*Record, error) {
	stmt, err := b.db.Prepare("INSERT INTO story_reacts (id, story_id, user_id, emoji, created_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (story_id, user_id) DO UPDATE SET emoji = $4, created_at = $5 RETURNING id;")
	if err != nil {
		return nil, err
	}

	record := &Record{StoryID: story, UserID: user, Emoji: emoji, CreatedAt: now}

	err = stmt.QueryRow(uuid.NewString(), story, user, emoji, now).Scan(&record.ID)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (b *Backend) AddShare(story string, user int, now int64) (*Record, error) {
	stmt, err := b.db.Prepare("INSERT INTO story_shares (id, story_id, user_id, created_at) VALUES ($1, $2, $3, $4);")
	if err != nil {
		return nil, err
	}

	record := &Record{ID: uuid.NewString(), StoryID: story, UserID: user, CreatedAt: now}

	_, err = stmt.Exec(record.ID, story, user, now)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (b *Backend) AddReport(story string, user int, reason string, now int64) (*Record, error) {
	stmt, err := b.db.Prepare("INSERT INTO story_reports (id, story_id, user_id, reason, created_at) VALUES ($1, $2, $3, $4, $5);")
	if err != nil {
		return nil, err
	}

	record := &Record{ID: uuid.NewString(), StoryID: story, UserID: user, Reason: reason, CreatedAt: now}

	_, err = stmt.Exec(record.ID, story, user, reason, now)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (b *Backend) AddQuestion(story string, user int, text string, now int64) (*Record, error) {
	stmt, err := b.db.Prepare("INSERT INTO story_questions (id, story_id, user_id, text, created_at) VALUES ($1, $2, $3, $4, $5);")
	if err != nil {
		return nil, err
	}

	record := &Record{ID: uuid.NewString(), StoryID: story, UserID: user, Text: text, CreatedAt: now}

	_, err = stmt.Exec(record.ID, story, user, text, now)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListByStory returns every engagement record of a kind for a story.
func (b *Backend) ListByStory(kind Kind, story string) ([]*Record, error) {
	switch kind {
	case KindReact:
		return b.list("SELECT id, story_id, user_id, emoji, created_at FROM story_reacts WHERE story_id = $1;", story, func(rows *sql.Rows, r *Record) error {
			return rows.Scan(&r.ID, &r.StoryID, &r.UserID, &r.Emoji, &r.CreatedAt)
		})
	case KindReport:
		return b.list("SELECT id, story_id, user_id, reason, created_at FROM story_reports WHERE story_id = $1;", story, func(rows *sql.Rows, r *Record) error {
			return rows.Scan(&r.ID, &r.StoryID, &r.UserID, &r.Reason, &r.CreatedAt)
		})
	case KindQuestion:
		return b.list("SELECT id, story_id, user_id, text, created_at FROM story_questions WHERE story_id = $1;", story, func(rows *sql.Rows, r *Record) error {
			return rows.Scan(&r.ID, &r.StoryID, &r.UserID, &r.Text, &r.CreatedAt)
		})
	case KindView:
		return b.list("SELECT id, story_id, user_id, created_at FROM story_views WHERE story_id = $1;", story, scanPlain)
	case KindShare:
		return b.list("SELECT id, story_id, user_id, created_at FROM story_shares WHERE story_id = $1;", story, scanPlain)
	}

	return make([]*Record, 0), nil
}

// RemoveByStory removes every record of a kind for a story.
func (b *Backend) RemoveByStory(kind Kind, story string) error {
	table, ok := tables[kind]
	if !ok {
		return nil
	}

	stmt, err := b.db.Prepare("DELETE FROM " + table + " WHERE story_id = $1;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(story)
	return err
}

// RemoveAllForStory removes every engagement record for a story across all kinds.
func (b *Backend) RemoveAllForStory(story string) error {
	for _, kind := range Kinds() {
		err := b.RemoveByStory(kind, story)
		if err != nil {
			return err
		}
	}

	return nil
}

func scanPlain(rows *sql.Rows, r *Record) error {
	return rows.Scan(&r.ID, &r.StoryID, &r.UserID, &r.CreatedAt)
}

func (b *Backend) list(query, story string, scan func(*sql.Rows, *Record) error) ([]*Record, error) {
	stmt, err := b.db.Prepare(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(story)
	if err != nil {
		return nil, err
	}

	result := make([]*Record, 0)

	for rows.Next() {
		record := &Record{}

		err := scan(rows, record)
		if err != nil {
			return nil, err
		}

		result = append(result, record)
	}

	return result, nil
}
