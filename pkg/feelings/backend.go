package feelings

import "database/sql"

type Feeling struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// Tombstone is the placeholder returned for a feeling that no longer exists.
func Tombstone(id int) *Feeling {
	return &Feeling{ID: id, Name: "unknown"}
}

type Backend struct {
	db *sql.DB
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{db: db}
}

func (b *Backend) GetFeelingWithID(id int) (*Feeling, error) {
	stmt, err := b.db.Prepare("SELECT id, name, emoji FROM feelings WHERE id = $1;")
	if err != nil {
		return nil, err
	}

	feeling := &Feeling{}

	row := stmt.QueryRow(id)
	err = row.Scan(&feeling.ID, &feeling.Name, &feeling.Emoji)
	if err != nil {
		return nil, err
	}

	return feeling, nil
}

func (b *Backend) ListFeelings() ([]Feeling, error) {
	stmt, err := b.db.Prepare("SELECT id, name, emoji FROM feelings;")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query()
	if err != nil {
		return nil, err
	}

	result := make([]Feeling, 0)

	for rows.Next() {
		feeling := Feeling{}

		err := rows.Scan(&feeling.ID, &feeling.Name, &feeling.Emoji)
		if err != nil {
			continue
		}

		result = append(result, feeling)
	}

	return result, nil
}
