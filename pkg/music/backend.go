package music

import "database/sql"

type Music struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}

// Tombstone is the placeholder returned for a track that no longer exists.
func Tombstone(id int) *Music {
	return &Music{ID: id, Title: "Removed"}
}

type Backend struct {
	db *sql.DB
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{db: db}
}

func (b *Backend) GetMusicWithID(id int) (*Music, error) {
	stmt, err := b.db.Prepare("SELECT id, title, artist, url FROM music WHERE id = $1;")
	if err != nil {
		return nil, err
	}

	track := &Music{}

	row := stmt.QueryRow(id)
	err = row.Scan(&track.ID, &track.Title, &track.Artist, &track.URL)
	if err != nil {
		return nil, err
	}

	return track, nil
}
