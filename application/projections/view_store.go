package projections

import (
	"sync"

	appErrors "factguard-backend/pkg/errors"
)

// View names exposed through the query API.
const (
	ViewUsers         = "users"
	ViewPosts         = "posts"
	ViewComments      = "comments"
	ViewVotes         = "votes"
	ViewLinkScans     = "linkScans"
	ViewConversations = "conversations"
	ViewMessages      = "messages"
	ViewNews          = "news"
	ViewAuditLog      = "auditLog"
	ViewAlerts        = "alerts"
)

// ViewNames lists every view the store maintains, in a stable order.
var ViewNames = []string{
	ViewUsers,
	ViewPosts,
	ViewComments,
	ViewVotes,
	ViewLinkScans,
	ViewConversations,
	ViewMessages,
	ViewNews,
	ViewAuditLog,
	ViewAlerts,
}

// viewData holds the keyed collections behind the store mutex. Deltas
// produced by event handlers are the only thing that mutates it.
type viewData struct {
	users         map[string]*UserView
	posts         map[string]*PostView
	comments      map[string]*CommentView
	votes         map[string]*VoteView
	linkScans     map[string]*LinkScanView
	conversations map[string]*ConversationView
	messages      map[string]*MessageView
	news          map[string]*NewsView
	auditLog      map[string]*AuditEntryView
	alerts        map[string]*AlertView
}

func newViewData() viewData {
	return viewData{
		users:         make(map[string]*UserView),
		posts:         make(map[string]*PostView),
		comments:      make(map[string]*CommentView),
		votes:         make(map[string]*VoteView),
		linkScans:     make(map[string]*LinkScanView),
		conversations: make(map[string]*ConversationView),
		messages:      make(map[string]*MessageView),
		news:          make(map[string]*NewsView),
		auditLog:      make(map[string]*AuditEntryView),
		alerts:        make(map[string]*AlertView),
	}
}

// ViewStore encapsulates all materialized views. Every mutation goes
// through the projector's apply path as a delta set; the accessors below
// hand out snapshot copies so callers can never reach the live records.
type ViewStore struct {
	mu   sync.RWMutex
	data viewData
}

// NewViewStore creates a store with every view empty.
func NewViewStore() *ViewStore {
	return &ViewStore{data: newViewData()}
}

// Reset clears every view back to empty. Used by the rebuild coordinator
// before a full replay.
func (s *ViewStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = newViewData()
}

// apply runs a delta set as one atomic unit under the write lock.
func (s *ViewStore) apply(deltas []Delta) {
	if len(deltas) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range deltas {
		d.apply(&s.data)
	}
}

// ViewReader is the read-only surface handlers use to inspect current
// state while computing deltas. All returned records are copies.
type ViewReader interface {
	User(id string) (*UserView, bool)
	Post(id string) (*PostView, bool)
	Comment(id string) (*CommentView, bool)
	Vote(key string) (*VoteView, bool)
	LinkScan(id string) (*LinkScanView, bool)
	Conversation(id string) (*ConversationView, bool)
}

// User returns a copy of the user record, if present.
func (s *ViewStore) User(id string) (*UserView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.users[id]
	if !ok {
		return nil, false
	}
	return v.clone(), true
}

// Post returns a copy of the post record, if present.
func (s *ViewStore) Post(id string) (*PostView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.posts[id]
	if !ok {
		return nil, false
	}
	return v.clone(), true
}

// Comment returns a copy of the comment record, if present.
func (s *ViewStore) Comment(id string) (*CommentView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.comments[id]
	if !ok {
		return nil, false
	}
	return v.clone(), true
}

// Vote returns a copy of the vote record under the composite key.
func (s *ViewStore) Vote(key string) (*VoteView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.votes[key]
	if !ok {
		return nil, false
	}
	return v.clone(), true
}

// LinkScan returns a copy of the link scan record, if present.
func (s *ViewStore) LinkScan(id string) (*LinkScanView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.linkScans[id]
	if !ok {
		return nil, false
	}
	return v.clone(), true
}

// Conversation returns a copy of the conversation record, if present.
func (s *ViewStore) Conversation(id string) (*ConversationView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.conversations[id]
	if !ok {
		return nil, false
	}
	return v.clone(), true
}

// GetView returns a snapshot of the named view's full keyed collection.
func (s *ViewStore) GetView(name string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotView(name)
}

// GetAllViews returns a snapshot of every view keyed by view name.
func (s *ViewStore) GetAllViews() map[string]map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make(map[string]map[string]interface{}, len(ViewNames))
	for _, name := range ViewNames {
		snapshot, _ := s.snapshotView(name)
		all[name] = snapshot
	}
	return all
}

// GetViewStats returns the current entry count per view.
func (s *ViewStore) GetViewStats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]int{
		ViewUsers:         len(s.data.users),
		ViewPosts:         len(s.data.posts),
		ViewComments:      len(s.data.comments),
		ViewVotes:         len(s.data.votes),
		ViewLinkScans:     len(s.data.linkScans),
		ViewConversations: len(s.data.conversations),
		ViewMessages:      len(s.data.messages),
		ViewNews:          len(s.data.news),
		ViewAuditLog:      len(s.data.auditLog),
		ViewAlerts:        len(s.data.alerts),
	}
}

// snapshotView builds a cloned keyed collection for a view. Callers must
// hold at least the read lock.
func (s *ViewStore) snapshotView(name string) (map[string]interface{}, error) {
	switch name {
	case ViewUsers:
		out := make(map[string]interface{}, len(s.data.users))
		for id, v := range s.data.users {
			out[id] = v.clone()
		}
		return out, nil
	case ViewPosts:
		out := make(map[string]interface{}, len(s.data.posts))
		for id, v := range s.data.posts {
			out[id] = v.clone()
		}
		return out, nil
	case ViewComments:
		out := make(map[string]interface{}, len(s.data.comments))
		for id, v := range s.data.comments {
			out[id] = v.clone()
		}
		return out, nil
	case ViewVotes:
		out := make(map[string]interface{}, len(s.data.votes))
		for id, v := range s.data.votes {
			out[id] = v.clone()
		}
		return out, nil
	case ViewLinkScans:
		out := make(map[string]interface{}, len(s.data.linkScans))
		for id, v := range s.data.linkScans {
			out[id] = v.clone()
		}
		return out, nil
	case ViewConversations:
		out := make(map[string]interface{}, len(s.data.conversations))
		for id, v := range s.data.conversations {
			out[id] = v.clone()
		}
		return out, nil
	case ViewMessages:
		out := make(map[string]interface{}, len(s.data.messages))
		for id, v := range s.data.messages {
			out[id] = v.clone()
		}
		return out, nil
	case ViewNews:
		out := make(map[string]interface{}, len(s.data.news))
		for id, v := range s.data.news {
			out[id] = v.clone()
		}
		return out, nil
	case ViewAuditLog:
		out := make(map[string]interface{}, len(s.data.auditLog))
		for id, v := range s.data.auditLog {
			out[id] = v.clone()
		}
		return out, nil
	case ViewAlerts:
		out := make(map[string]interface{}, len(s.data.alerts))
		for id, v := range s.data.alerts {
			out[id] = v.clone()
		}
		return out, nil
	default:
		return nil, appErrors.NewNotFound("unknown view: " + name)
	}
}
