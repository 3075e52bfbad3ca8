package events

// Event types - These define the types of events in the system
const (
	// User events
	TypeUserCreated        = "user.created"
	TypeUserProfileUpdated = "user.profile.updated"

	// Post events
	TypePostCreated = "post.created"
	TypePostUpdated = "post.updated"
	TypePostDeleted = "post.deleted"
	TypePostVoted   = "post.voted"

	// Comment events
	TypeCommentCreated = "comment.created"
	TypeCommentUpdated = "comment.updated"
	TypeCommentDeleted = "comment.deleted"

	// Link scan events
	TypeLinkScanRequested = "linkscan.requested"
	TypeLinkScanCompleted = "linkscan.completed"

	// Chat events
	TypeChatMessageSent = "chat.message.sent"
	TypeChatAIResponded = "chat.ai.responded"

	// News events
	TypeNewsPublished = "news.published"

	// Admin events
	TypeAdminActionPerformed = "admin.action.performed"

	// Alert events
	TypeAlertCreated = "alert.created"
)

// Message sender types
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Link scan lifecycle statuses. There is no failure terminal state; a scan
// only ever moves from requested to completed.
const (
	ScanStatusRequested = "requested"
	ScanStatusCompleted = "completed"
)

// Alert statuses
const (
	AlertStatusActive = "active"
)
