package notifications

import "database/sql"

// Target is a user eligible to receive a push notification, along with
// their notification preferences.
type Target struct {
	ID        int  `json:"id"`
	Mentions  bool `json:"mentions"`
	Reactions bool `json:"reactions"`
}

type Targets struct {
	db *sql.DB
}

func NewTargets(db *sql.DB) *Targets {
	return &Targets{db: db}
}

func (t *Targets) GetTargetFor(user int) (*Target, error) {
	stmt, err := t.db.Prepare("SELECT user_id, mentions, reactions FROM notification_settings WHERE user_id = $1;")
	if err != nil {
		return nil, err
	}

	row := stmt.QueryRow(user)

	target := &Target{}
	err = row.Scan(&target.ID, &target.Mentions, &target.Reactions)
	if err == sql.ErrNoRows {
		// users without stored settings receive everything
		return &Target{ID: user, Mentions: true, Reactions: true}, nil
	}

	if err != nil {
		return nil, err
	}

	return target, nil
}

func (t *Targets) UpdateTargetFor(user int, mentions, reactions bool) error {
	stmt, err := t.db.Prepare("INSERT INTO notification_settings (user_id, mentions, reactions) VALUES ($1, $2, $3) ON CONFLICT (user_id) DO UPDATE SET mentions = $2, reactions = $3;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(user, mentions, reactions)
	return err
}
