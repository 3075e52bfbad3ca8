package projections

import (
	"factguard-backend/domain/events"
)

// handlePostVoted upserts under the composite (post, user) key: a repeat
// vote by the same user on the same post overwrites the prior record
// (last-write-wins by global order) and the vote count stays the number
// of distinct keys.
func (p *Projector) handlePostVoted(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.PostVotedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	key := VoteKey(pl.PostID, pl.UserID)
	vote := &VoteView{
		Key:       key,
		PostID:    pl.PostID,
		UserID:    pl.UserID,
		Value:     pl.Value,
		UpdatedAt: ev.Timestamp,
	}

	return []Delta{
		newDelta("votes.upsert", func(d *viewData) {
			d.votes[key] = vote
		}),
		newDelta("posts.appendVote", func(d *viewData) {
			post, ok := d.posts[pl.PostID]
			if !ok {
				return
			}
			if !containsID(post.Votes, key) {
				post.Votes = append(post.Votes, key)
			}
			post.VoteCount = len(post.Votes)
		}),
		newDelta("users.appendVote", func(d *viewData) {
			u, ok := d.users[pl.UserID]
			if !ok {
				return
			}
			if !containsID(u.Votes, key) {
				u.Votes = append(u.Votes, key)
			}
			u.LastActivity = ev.Timestamp
		}),
	}, nil
}
