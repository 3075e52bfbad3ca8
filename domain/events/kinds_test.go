package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind_RoundTripsEveryKnownType(t *testing.T) {
	known := []string{
		TypeUserCreated,
		TypeUserProfileUpdated,
		TypePostCreated,
		TypePostUpdated,
		TypePostDeleted,
		TypePostVoted,
		TypeCommentCreated,
		TypeCommentUpdated,
		TypeCommentDeleted,
		TypeLinkScanRequested,
		TypeLinkScanCompleted,
		TypeChatMessageSent,
		TypeChatAIResponded,
		TypeNewsPublished,
		TypeAdminActionPerformed,
		TypeAlertCreated,
	}

	for _, typ := range known {
		kind := ParseKind(typ)
		assert.NotEqual(t, KindUnknown, kind, "type %q parsed to unknown", typ)
		assert.Equal(t, typ, kind.String())
	}
}

func TestParseKind_UnknownStrings(t *testing.T) {
	for _, typ := range []string{"", "reaction.added", "POST.CREATED", "post_created"} {
		assert.Equal(t, KindUnknown, ParseKind(typ), "type %q", typ)
	}
}

func TestEnvelope_KindUsesTypeString(t *testing.T) {
	env := Envelope{Type: TypePostVoted}
	assert.Equal(t, KindPostVoted, env.Kind())
}
