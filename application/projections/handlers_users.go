package projections

import (
	"factguard-backend/domain/events"
)

func (p *Projector) handleUserCreated(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.UserCreatedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	user := &UserView{
		ID:           pl.UserID,
		Username:     pl.Username,
		Email:        pl.Email,
		Posts:        []string{},
		Comments:     []string{},
		Votes:        []string{},
		LastActivity: ev.Timestamp,
	}

	return []Delta{
		newDelta("users.upsert", func(d *viewData) {
			d.users[user.ID] = user
		}),
	}, nil
}

func (p *Projector) handleUserProfileUpdated(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.UserProfileUpdatedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	// Updates never auto-create: an update for an unknown user is a
	// silent no-op.
	if _, ok := r.User(pl.UserID); !ok {
		return nil, nil
	}

	return []Delta{
		newDelta("users.merge", func(d *viewData) {
			u, ok := d.users[pl.UserID]
			if !ok {
				return
			}
			if pl.Username != nil {
				u.Username = *pl.Username
			}
			if pl.Email != nil {
				u.Email = *pl.Email
			}
			if pl.Reputation != nil {
				u.Reputation = *pl.Reputation
			}
			u.LastActivity = ev.Timestamp
		}),
	}, nil
}
