package users

import (
	"database/sql"
)

type User struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
	Image       string `json:"image"`
}

// Tombstone is the placeholder returned for a user that no longer exists.
func Tombstone(id int) *User {
	return &User{ID: id, DisplayName: "Deleted User", Username: "deleted"}
}

type Backend struct {
	db *sql.DB
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{
		db: db,
	}
}

func (b *Backend) GetUserByID(id int) (*User, error) {
	stmt, err := b.db.Prepare("SELECT id, display_name, username, image FROM users WHERE id = $1;")
	if err != nil {
		return nil, err
	}

	user := &User{}

	row := stmt.QueryRow(id)
	err = row.Scan(&user.ID, &user.DisplayName, &user.Username, &user.Image)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (b *Backend) GetIDForUsername(username string) (int, error) {
	stmt, err := b.db.Prepare("SELECT id FROM users WHERE username = $1;")
	if err != nil {
		return 0, err
	}

	var id int

	row := stmt.QueryRow(username)
	err = row.Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (b *Backend) CreateUser(displayName, username, image string) (int, error) {
	stmt, err := b.db.Prepare("INSERT INTO users (display_name, username, image) VALUES ($1, $2, $3) RETURNING id;")
	if err != nil {
		return 0, err
	}

	var id int
	err = stmt.QueryRow(displayName, username, image).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}
