package stories

import (
	"database/sql"
)

type Backend struct {
	db *sql.DB
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{db}
}

// AddStory persists a story together with its mention references.
func (b *Backend) AddStory(story *Story) error {
	stmt, err := b.db.Prepare("INSERT INTO stories (id, user_id, text, picture, video, link, music_id, feeling_id, location, hashtag, is_questions, created_at, updated_at, expires_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		story.ID, story.UserID,
		story.Text, story.Picture, story.Video, story.Link,
		nullable(story.MusicID), nullable(story.FeelingID),
		story.Location, story.Hashtag, story.IsQuestions,
		story.CreatedAt, story.UpdatedAt, story.ExpiresAt,
	)
	if err != nil {
		return err
	}

	for _, user := range story.Mentions {
		err := b.addMention(story.ID, user)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetStory returns a story that has not yet expired at the passed time.
// Expired stories behave as absent, swept or not.
func (b *Backend) GetStory(id string, time int64) (*Story, error) {
	stmt, err := b.db.Prepare("SELECT id, user_id, text, picture, video, link, music_id, feeling_id, location, hashtag, is_questions, created_at, updated_at, expires_at FROM stories WHERE id = $1 AND expires_at > $2;")
	if err != nil {
		return nil, err
	}

	story, err := scanStory(stmt.QueryRow(id, time))
	if err != nil {
		return nil, err
	}

	story.Mentions, err = b.getMentions(story.ID)
	if err != nil {
		return nil, err
	}

	return story, nil
}

// GetStoryOwner returns the owning user for a story, expired or not.
func (b *Backend) GetStoryOwner(id string) (int, error) {
	stmt, err := b.db.Prepare("SELECT user_id FROM stories WHERE id = $1;")
	if err != nil {
		return 0, err
	}

	var user int

	err = stmt.QueryRow(id).Scan(&user)
	if err != nil {
		return 0, err
	}

	return user, nil
}

func (b *Backend) GetStoriesForUser(user int, time int64) ([]*Story, error) {
	stmt, err := b.db.Prepare("SELECT id, user_id, text, picture, video, link, music_id, feeling_id, location, hashtag, is_questions, created_at, updated_at, expires_at FROM stories WHERE user_id = $1 AND expires_at > $2 ORDER BY created_at;")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(user, time)
	if err != nil {
		return nil, err
	}

	result := make([]*Story, 0)

	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, err
		}

		result = append(result, story)
	}

	for _, story := range result {
		story.Mentions, err = b.getMentions(story.ID)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// GetExpired returns the IDs of all stories where the expires_at time has passed.
func (b *Backend) GetExpired(time int64) ([]string, error) {
	stmt, err := b.db.Prepare("SELECT id FROM stories WHERE expires_at <= $1;")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(time)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0)

	for rows.Next() {
		var id string

		err := rows.Scan(&id)
		if err != nil {
			continue
		}

		result = append(result, id)
	}

	return result, nil
}

// TouchStory bumps the updated_at timestamp of a story.
func (b *Backend) TouchStory(id string, time int64) error {
	stmt, err := b.db.Prepare("UPDATE stories SET updated_at = $2 WHERE id = $1;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(id, time)
	return err
}

// DeleteStory removes the story record and its mention references.
func (b *Backend) DeleteStory(id string) error {
	stmt, err := b.db.Prepare("DELETE FROM story_mentions WHERE story_id = $1;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(id)
	if err != nil {
		return err
	}

	stmt, err = b.db.Prepare("DELETE FROM stories WHERE id = $1;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(id)
	return err
}

func (b *Backend) addMention(story string, user int) error {
	stmt, err := b.db.Prepare("INSERT INTO story_mentions (story_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(story, user)
	return err
}

func (b *Backend) getMentions(story string) ([]int, error) {
	stmt, err := b.db.Prepare("SELECT user_id FROM story_mentions WHERE story_id = $1;")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(story)
	if err != nil {
		return nil, err
	}

	result := make([]int, 0)

	for rows.Next() {
		var id int

		err := rows.Scan(&id)
		if err != nil {
			return nil, err
		}

		result = append(result, id)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStory(row scanner) (*Story, error) {
	story := &Story{}

	var musicID, feelingID sql.NullInt64

	err := row.Scan(
		&story.ID, &story.UserID,
		&story.Text, &story.Picture, &story.Video, &story.Link,
		&musicID, &feelingID,
		&story.Location, &story.Hashtag, &story.IsQuestions,
		&story.CreatedAt, &story.UpdatedAt, &story.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	story.MusicID = int(musicID.Int64)
	story.FeelingID = int(feelingID.Int64)
	story.Mentions = make([]int, 0)

	return story, nil
}

func nullable(id int) interface{} {
	if id == 0 {
		return nil
	}

	return id
}
