// Package invite records the chosen {venue, time, participants} tuple when
// a user acts on a recommendation. Sending the actual notification is the
// downstream collaborator's job.
package invite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/outing-planner/internal/db"
	"github.com/example/outing-planner/internal/profile"
	"github.com/google/uuid"
)

type Invite struct {
	ID           string
	UserID       string
	VenueID      string
	VenueName    string
	Start        time.Time
	End          time.Time
	Participants []string
	CreatedAt    time.Time
}

func (i Invite) Validate() error {
	if i.UserID == "" {
		return fmt.Errorf("user id required")
	}
	if i.VenueID == "" {
		return fmt.Errorf("venue id required")
	}
	if !i.End.After(i.Start) {
		return fmt.Errorf("end must be after start")
	}
	return nil
}

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func (r *Repo) Create(ctx context.Context, inv Invite) (string, error) {
	if err := inv.Validate(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	err := r.db.Exec(ctx, `
INSERT INTO invites(id, user_id, venue_id, venue_name, start_at, end_at, participants)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		id, inv.UserID, inv.VenueID, inv.VenueName, inv.Start, inv.End, profile.JoinCSV(inv.Participants))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Invite, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, user_id, venue_id, venue_name, start_at, end_at, participants, created_at
FROM invites WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Invite
	for rows.Next() {
		var inv Invite
		var participants string
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.VenueID, &inv.VenueName, &inv.Start, &inv.End, &participants, &inv.CreatedAt); err != nil {
			return nil, err
		}
		inv.Participants = profile.SplitCSV(participants)
		out = append(out, inv)
	}
	return out, rows.Err()
}
