package devices

import (
	"database/sql"
)

type Backend struct {
	db *sql.DB
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{
		db: db,
	}
}

func (b *Backend) AddDeviceForUser(id int, token string) error {
	stmt, err := b.db.Prepare("INSERT INTO devices (token, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(token, id)
	if err != nil {
		return err
	}

	return nil
}

func (b *Backend) GetDevicesForUser(id int) ([]string, error) {
	stmt, err := b.db.Prepare("SELECT token FROM devices WHERE user_id = $1;")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(id)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0)

	for rows.Next() {
		var token string

		err := rows.Scan(&token)
		if err != nil {
			return nil, err
		}

		result = append(result, token)
	}

	return result, nil
}

func (b *Backend) RemoveDevice(token string) error {
	stmt, err := b.db.Prepare("DELETE FROM devices WHERE token = $1;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(token)
	return err
}
