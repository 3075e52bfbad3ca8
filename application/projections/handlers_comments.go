package projections

import (
	"factguard-backend/domain/events"
)

func (p *Projector) handleCommentCreated(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.CommentCreatedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	comment := &CommentView{
		ID:       pl.CommentID,
		PostID:   pl.PostID,
		AuthorID: pl.AuthorID,
		ParentID: pl.ParentID,
		Content:  pl.Content,
		Replies:  []string{},
	}

	deltas := []Delta{
		newDelta("comments.upsert", func(d *viewData) {
			d.comments[comment.ID] = comment
		}),
		// CommentCount is recomputed from the list in the same delta set
		// as the append, keeping count == len(comments) at all times.
		newDelta("posts.appendComment", func(d *viewData) {
			post, ok := d.posts[pl.PostID]
			if !ok {
				return
			}
			if !containsID(post.Comments, pl.CommentID) {
				post.Comments = append(post.Comments, pl.CommentID)
			}
			post.CommentCount = len(post.Comments)
		}),
		newDelta("users.appendComment", func(d *viewData) {
			u, ok := d.users[pl.AuthorID]
			if !ok {
				return
			}
			if !containsID(u.Comments, pl.CommentID) {
				u.Comments = append(u.Comments, pl.CommentID)
			}
			u.LastActivity = ev.Timestamp
		}),
	}

	if pl.ParentID != "" {
		deltas = append(deltas, newDelta("comments.appendReply", func(d *viewData) {
			parent, ok := d.comments[pl.ParentID]
			if !ok {
				return
			}
			if !containsID(parent.Replies, pl.CommentID) {
				parent.Replies = append(parent.Replies, pl.CommentID)
			}
		}))
	}

	return deltas, nil
}

func (p *Projector) handleCommentUpdated(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.CommentUpdatedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	if _, ok := r.Comment(pl.CommentID); !ok {
		return nil, nil
	}

	return []Delta{
		newDelta("comments.merge", func(d *viewData) {
			comment, ok := d.comments[pl.CommentID]
			if !ok {
				return
			}
			if pl.Content != nil {
				comment.Content = *pl.Content
			}
		}),
	}, nil
}

// handleCommentDeleted removes the comment record and, in the same delta
// set, strips its id from the parent post (recomputing the count), the
// author and any parent comment's reply list.
func (p *Projector) handleCommentDeleted(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.CommentDeletedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	comment, ok := r.Comment(pl.CommentID)
	if !ok {
		return nil, nil
	}

	deltas := []Delta{
		newDelta("comments.delete", func(d *viewData) {
			delete(d.comments, pl.CommentID)
		}),
		newDelta("posts.removeComment", func(d *viewData) {
			post, ok := d.posts[comment.PostID]
			if !ok {
				return
			}
			post.Comments = removeID(post.Comments, pl.CommentID)
			post.CommentCount = len(post.Comments)
		}),
		newDelta("users.removeComment", func(d *viewData) {
			if u, ok := d.users[comment.AuthorID]; ok {
				u.Comments = removeID(u.Comments, pl.CommentID)
			}
		}),
	}

	if comment.ParentID != "" {
		deltas = append(deltas, newDelta("comments.removeReply", func(d *viewData) {
			if parent, ok := d.comments[comment.ParentID]; ok {
				parent.Replies = removeID(parent.Replies, pl.CommentID)
			}
		}))
	}

	return deltas, nil
}
