package projections

import (
	"factguard-backend/domain/events"
)

func (p *Projector) handlePostCreated(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.PostCreatedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	post := &PostView{
		ID:        pl.PostID,
		AuthorID:  pl.AuthorID,
		Title:     pl.Title,
		Content:   pl.Content,
		URL:       pl.URL,
		Comments:  []string{},
		Votes:     []string{},
		CreatedAt: ev.Timestamp,
	}

	return []Delta{
		newDelta("posts.upsert", func(d *viewData) {
			d.posts[post.ID] = post
		}),
		newDelta("users.appendPost", func(d *viewData) {
			u, ok := d.users[pl.AuthorID]
			if !ok {
				return
			}
			if !containsID(u.Posts, pl.PostID) {
				u.Posts = append(u.Posts, pl.PostID)
			}
			u.LastActivity = ev.Timestamp
		}),
	}, nil
}

func (p *Projector) handlePostUpdated(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.PostUpdatedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	if _, ok := r.Post(pl.PostID); !ok {
		return nil, nil
	}

	return []Delta{
		newDelta("posts.merge", func(d *viewData) {
			post, ok := d.posts[pl.PostID]
			if !ok {
				return
			}
			if pl.Title != nil {
				post.Title = *pl.Title
			}
			if pl.Content != nil {
				post.Content = *pl.Content
			}
			if pl.URL != nil {
				post.URL = *pl.URL
			}
		}),
	}, nil
}

// handlePostDeleted removes the post and cascades: every comment and vote
// whose parent is the post is deleted, and each id is removed from its
// owner's lists so no view retains a dangling reference.
func (p *Projector) handlePostDeleted(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.PostDeletedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	post, ok := r.Post(pl.PostID)
	if !ok {
		return nil, nil
	}

	deltas := []Delta{
		newDelta("posts.delete", func(d *viewData) {
			delete(d.posts, pl.PostID)
		}),
		newDelta("users.removePost", func(d *viewData) {
			if u, ok := d.users[post.AuthorID]; ok {
				u.Posts = removeID(u.Posts, pl.PostID)
			}
		}),
	}

	for _, commentID := range post.Comments {
		comment, found := r.Comment(commentID)
		deltas = append(deltas, newDelta("comments.delete", func(d *viewData) {
			delete(d.comments, commentID)
		}))
		if found {
			deltas = append(deltas, newDelta("users.removeComment", func(d *viewData) {
				if u, ok := d.users[comment.AuthorID]; ok {
					u.Comments = removeID(u.Comments, commentID)
				}
			}))
		}
	}

	for _, voteKey := range post.Votes {
		vote, found := r.Vote(voteKey)
		deltas = append(deltas, newDelta("votes.delete", func(d *viewData) {
			delete(d.votes, voteKey)
		}))
		if found {
			deltas = append(deltas, newDelta("users.removeVote", func(d *viewData) {
				if u, ok := d.users[vote.UserID]; ok {
					u.Votes = removeID(u.Votes, voteKey)
				}
			}))
		}
	}

	return deltas, nil
}
