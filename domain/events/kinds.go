package events

// Kind is the closed enumeration of event types the projection engine
// understands. Routing happens over this enum rather than an open-ended
// string lookup; any type string outside the known set parses to
// KindUnknown, which handlers treat as log-and-skip. New event types
// appearing in the log before the engine learns about them are therefore
// harmless.
type Kind int

const (
	KindUnknown Kind = iota
	KindUserCreated
	KindUserProfileUpdated
	KindPostCreated
	KindPostUpdated
	KindPostDeleted
	KindPostVoted
	KindCommentCreated
	KindCommentUpdated
	KindCommentDeleted
	KindLinkScanRequested
	KindLinkScanCompleted
	KindChatMessageSent
	KindChatAIResponded
	KindNewsPublished
	KindAdminActionPerformed
	KindAlertCreated
)

// ParseKind maps an event type string to its Kind. Unrecognized strings
// map to KindUnknown.
func ParseKind(eventType string) Kind {
	switch eventType {
	case TypeUserCreated:
		return KindUserCreated
	case TypeUserProfileUpdated:
		return KindUserProfileUpdated
	case TypePostCreated:
		return KindPostCreated
	case TypePostUpdated:
		return KindPostUpdated
	case TypePostDeleted:
		return KindPostDeleted
	case TypePostVoted:
		return KindPostVoted
	case TypeCommentCreated:
		return KindCommentCreated
	case TypeCommentUpdated:
		return KindCommentUpdated
	case TypeCommentDeleted:
		return KindCommentDeleted
	case TypeLinkScanRequested:
		return KindLinkScanRequested
	case TypeLinkScanCompleted:
		return KindLinkScanCompleted
	case TypeChatMessageSent:
		return KindChatMessageSent
	case TypeChatAIResponded:
		return KindChatAIResponded
	case TypeNewsPublished:
		return KindNewsPublished
	case TypeAdminActionPerformed:
		return KindAdminActionPerformed
	case TypeAlertCreated:
		return KindAlertCreated
	default:
		return KindUnknown
	}
}

// String returns the canonical type string for a Kind.
func (k Kind) String() string {
	switch k {
	case KindUserCreated:
		return TypeUserCreated
	case KindUserProfileUpdated:
		return TypeUserProfileUpdated
	case KindPostCreated:
		return TypePostCreated
	case KindPostUpdated:
		return TypePostUpdated
	case KindPostDeleted:
		return TypePostDeleted
	case KindPostVoted:
		return TypePostVoted
	case KindCommentCreated:
		return TypeCommentCreated
	case KindCommentUpdated:
		return TypeCommentUpdated
	case KindCommentDeleted:
		return TypeCommentDeleted
	case KindLinkScanRequested:
		return TypeLinkScanRequested
	case KindLinkScanCompleted:
		return TypeLinkScanCompleted
	case KindChatMessageSent:
		return TypeChatMessageSent
	case KindChatAIResponded:
		return TypeChatAIResponded
	case KindNewsPublished:
		return TypeNewsPublished
	case KindAdminActionPerformed:
		return TypeAdminActionPerformed
	case KindAlertCreated:
		return TypeAlertCreated
	default:
		return "unknown"
	}
}
