package projections

import (
	"time"

	"factguard-backend/domain/events"
)

func (p *Projector) handleChatMessageSent(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.ChatMessageSentPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	msg := &MessageView{
		ID:             pl.MessageID,
		ConversationID: pl.ConversationID,
		Sender:         events.SenderUser,
		Content:        pl.Content,
		Timestamp:      ev.Timestamp,
	}

	return []Delta{
		newDelta("messages.upsert", func(d *viewData) {
			d.messages[msg.ID] = msg
		}),
		appendToConversation(pl.ConversationID, pl.MessageID, pl.UserID, ev.Timestamp),
	}, nil
}

func (p *Projector) handleChatAIResponded(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.ChatAIRespondedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	msg := &MessageView{
		ID:             pl.MessageID,
		ConversationID: pl.ConversationID,
		Sender:         events.SenderAI,
		Content:        pl.Content,
		Timestamp:      ev.Timestamp,
	}

	return []Delta{
		newDelta("messages.upsert", func(d *viewData) {
			d.messages[msg.ID] = msg
		}),
		appendToConversation(pl.ConversationID, pl.MessageID, "", ev.Timestamp),
	}, nil
}

// appendToConversation appends a message id to a conversation, creating
// the conversation lazily on first reference. participant is added to the
// participant list when non-empty (AI replies carry no participant).
func appendToConversation(conversationID, messageID, participant string, at time.Time) Delta {
	return newDelta("conversations.appendMessage", func(d *viewData) {
		conv, ok := d.conversations[conversationID]
		if !ok {
			conv = &ConversationView{
				ID:           conversationID,
				Messages:     []string{},
				Participants: []string{},
			}
			d.conversations[conversationID] = conv
		}
		if !containsID(conv.Messages, messageID) {
			conv.Messages = append(conv.Messages, messageID)
		}
		if participant != "" && !containsID(conv.Participants, participant) {
			conv.Participants = append(conv.Participants, participant)
		}
		conv.LastMessageAt = at
	})
}
