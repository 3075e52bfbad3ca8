package events

// Typed payloads for each known event kind. Fields carry validator tags;
// the projector rejects malformed payloads before any view is touched.
// Pointer fields on update payloads distinguish "absent" from "set to
// zero value" so partial updates merge correctly.

// UserCreatedPayload carries the initial profile for a new user.
type UserCreatedPayload struct {
	UserID   string `json:"userId" validate:"required"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserProfileUpdatedPayload is a partial profile update.
type UserProfileUpdatedPayload struct {
	UserID     string  `json:"userId" validate:"required"`
	Username   *string `json:"username,omitempty"`
	Email      *string `json:"email,omitempty"`
	Reputation *int    `json:"reputation,omitempty"`
}

// PostCreatedPayload describes a newly submitted post.
type PostCreatedPayload struct {
	PostID   string `json:"postId" validate:"required"`
	AuthorID string `json:"authorId" validate:"required"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	URL      string `json:"url" validate:"omitempty,url"`
}

// PostUpdatedPayload is a partial post update.
type PostUpdatedPayload struct {
	PostID  string  `json:"postId" validate:"required"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	URL     *string `json:"url,omitempty"`
}

// PostDeletedPayload identifies the post to remove.
type PostDeletedPayload struct {
	PostID string `json:"postId" validate:"required"`
}

// PostVotedPayload records a user's verdict on a post. A later vote by the
// same user on the same post overwrites the earlier one.
type PostVotedPayload struct {
	PostID string `json:"postId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
	Value  string `json:"value" validate:"required,oneof=safe unsafe"`
}

// CommentCreatedPayload describes a new comment. ParentID is set when the
// comment replies to another comment on the same post.
type CommentCreatedPayload struct {
	CommentID string `json:"commentId" validate:"required"`
	PostID    string `json:"postId" validate:"required"`
	AuthorID  string `json:"authorId" validate:"required"`
	Content   string `json:"content"`
	ParentID  string `json:"parentId,omitempty"`
}

// CommentUpdatedPayload is a partial comment update.
type CommentUpdatedPayload struct {
	CommentID string  `json:"commentId" validate:"required"`
	Content   *string `json:"content,omitempty"`
}

// CommentDeletedPayload identifies the comment to remove.
type CommentDeletedPayload struct {
	CommentID string `json:"commentId" validate:"required"`
}

// LinkScanRequestedPayload opens a link scan lifecycle.
type LinkScanRequestedPayload struct {
	ScanID      string `json:"scanId" validate:"required"`
	URL         string `json:"url" validate:"required"`
	RequestedBy string `json:"requestedBy"`
}

// LinkScanCompletedPayload closes a link scan lifecycle with its result.
type LinkScanCompletedPayload struct {
	ScanID  string  `json:"scanId" validate:"required"`
	Verdict string  `json:"verdict"`
	Score   float64 `json:"score"`
}

// ChatMessageSentPayload is a user message in a conversation. The
// conversation is created lazily on first reference.
type ChatMessageSentPayload struct {
	MessageID      string `json:"messageId" validate:"required"`
	ConversationID string `json:"conversationId" validate:"required"`
	UserID         string `json:"userId" validate:"required"`
	Content        string `json:"content"`
}

// ChatAIRespondedPayload is a generated assistant reply.
type ChatAIRespondedPayload struct {
	MessageID      string `json:"messageId" validate:"required"`
	ConversationID string `json:"conversationId" validate:"required"`
	Content        string `json:"content"`
}

// NewsPublishedPayload announces a published news article.
type NewsPublishedPayload struct {
	ArticleID string `json:"articleId" validate:"required"`
	Headline  string `json:"headline"`
	Source    string `json:"source"`
	URL       string `json:"url" validate:"omitempty,url"`
}

// AdminActionPerformedPayload records an administrative action for audit.
type AdminActionPerformedPayload struct {
	ActionID string `json:"actionId" validate:"required"`
	AdminID  string `json:"adminId" validate:"required"`
	Action   string `json:"action" validate:"required"`
	TargetID string `json:"targetId"`
	Detail   string `json:"detail"`
}

// AlertCreatedPayload raises a system alert.
type AlertCreatedPayload struct {
	AlertID  string `json:"alertId" validate:"required"`
	Severity string `json:"severity" validate:"omitempty,oneof=info warning critical"`
	Message  string `json:"message"`
}
