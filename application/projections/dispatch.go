package projections

import (
	"factguard-backend/domain/events"
)

// handlerFunc maps (event, current view state) to the delta set that
// event produces. Handlers never mutate the store directly.
type handlerFunc func(ev events.Envelope, r ViewReader) ([]Delta, error)

// handlerFor is the total routing function over the closed event kind
// enum. Every known kind has exactly one handler; KindUnknown (and any
// future kind this switch does not cover) routes to nil, which the apply
// path logs and skips.
func (p *Projector) handlerFor(kind events.Kind) handlerFunc {
	switch kind {
	case events.KindUserCreated:
		return p.handleUserCreated
	case events.KindUserProfileUpdated:
		return p.handleUserProfileUpdated
	case events.KindPostCreated:
		return p.handlePostCreated
	case events.KindPostUpdated:
		return p.handlePostUpdated
	case events.KindPostDeleted:
		return p.handlePostDeleted
	case events.KindPostVoted:
		return p.handlePostVoted
	case events.KindCommentCreated:
		return p.handleCommentCreated
	case events.KindCommentUpdated:
		return p.handleCommentUpdated
	case events.KindCommentDeleted:
		return p.handleCommentDeleted
	case events.KindLinkScanRequested:
		return p.handleLinkScanRequested
	case events.KindLinkScanCompleted:
		return p.handleLinkScanCompleted
	case events.KindChatMessageSent:
		return p.handleChatMessageSent
	case events.KindChatAIResponded:
		return p.handleChatAIResponded
	case events.KindNewsPublished:
		return p.handleNewsPublished
	case events.KindAdminActionPerformed:
		return p.handleAdminActionPerformed
	case events.KindAlertCreated:
		return p.handleAlertCreated
	default:
		return nil
	}
}
