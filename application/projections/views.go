package projections

import (
	"time"
)

// View record types. Each view is a keyed collection of one of these
// denormalized records, derived entirely from the event log. Records hold
// id lists for child entities plus materialized counts so read paths never
// need a join; the projector keeps counts equal to list lengths after
// every applied event.

// UserView is the projected state of a platform user.
type UserView struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Reputation   int       `json:"reputation"`
	Posts        []string  `json:"posts"`
	Comments     []string  `json:"comments"`
	Votes        []string  `json:"votes"`
	LastActivity time.Time `json:"last_activity"`
}

// PostView is the projected state of a submitted post.
type PostView struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	URL          string    `json:"url"`
	Comments     []string  `json:"comments"`
	Votes        []string  `json:"votes"`
	CommentCount int       `json:"comment_count"`
	VoteCount    int       `json:"vote_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// CommentView is the projected state of a comment on a post.
type CommentView struct {
	ID       string   `json:"id"`
	PostID   string   `json:"post_id"`
	AuthorID string   `json:"author_id"`
	ParentID string   `json:"parent_id,omitempty"`
	Content  string   `json:"content"`
	Replies  []string `json:"replies"`
}

// VoteView is the projected state of a user's verdict on a post, keyed by
// the composite VoteKey so at most one record exists per (post, user) pair.
type VoteView struct {
	Key       string    `json:"key"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LinkScanView is the projected state of a link scan lifecycle.
type LinkScanView struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Status      string    `json:"status"`
	RequestedBy string    `json:"requested_by"`
	Verdict     string    `json:"verdict,omitempty"`
	Score       float64   `json:"score"`
	RequestedAt time.Time `json:"requested_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// ConversationView is the projected state of a chat conversation. It is
// created lazily on the first message that references it.
type ConversationView struct {
	ID            string    `json:"id"`
	Messages      []string  `json:"messages"`
	Participants  []string  `json:"participants"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// MessageView is the projected state of a single chat message.
type MessageView struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewsView is the projected state of a published news article.
type NewsView struct {
	ID          string    `json:"id"`
	Headline    string    `json:"headline"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Views       int       `json:"views"`
	Shares      int       `json:"shares"`
	PublishedAt time.Time `json:"published_at"`
}

// AuditEntryView is the projected record of an administrative action.
type AuditEntryView struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	Action    string    `json:"action"`
	TargetID  string    `json:"target_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AlertView is the projected state of a system alert.
type AlertView struct {
	ID        string    `json:"id"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteKey builds the composite vote key for a (post, user) pair. The key
// is what enforces "one active vote per user per post".
func VoteKey(postID, userID string) string {
	return postID + "#" + userID
}

func (v *UserView) clone() *UserView {
	cp := *v
	cp.Posts = append([]string{}, v.Posts...)
	cp.Comments = append([]string{}, v.Comments...)
	cp.Votes = append([]string{}, v.Votes...)
	return &cp
}

func (v *PostView) clone() *PostView {
	cp := *v
	cp.Comments = append([]string{}, v.Comments...)
	cp.Votes = append([]string{}, v.Votes...)
	return &cp
}

func (v *CommentView) clone() *CommentView {
	cp := *v
	cp.Replies = append([]string{}, v.Replies...)
	return &cp
}

func (v *VoteView) clone() *VoteView {
	cp := *v
	return &cp
}

func (v *LinkScanView) clone() *LinkScanView {
	cp := *v
	return &cp
}

func (v *ConversationView) clone() *ConversationView {
	cp := *v
	cp.Messages = append([]string{}, v.Messages...)
	cp.Participants = append([]string{}, v.Participants...)
	return &cp
}

func (v *MessageView) clone() *MessageView {
	cp := *v
	return &cp
}

func (v *NewsView) clone() *NewsView {
	cp := *v
	return &cp
}

func (v *AuditEntryView) clone() *AuditEntryView {
	cp := *v
	return &cp
}

func (v *AlertView) clone() *AlertView {
	cp := *v
	return &cp
}
