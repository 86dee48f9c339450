// Package session holds the client-side chat transcript and the request
// lifecycle around the relay endpoint.
package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghstx9/geminiwrapper/internal/models"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one bubble of the transcript.
type Message struct {
	ID         string
	Text       string
	Sender     Sender
	Attachment *models.Attachment
	CreatedAt  time.Time
}

func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

func newMessage(sender Sender, text string, att *models.Attachment) Message {
	return Message{
		ID:         uuid.New().String(),
		Text:       text,
		Sender:     sender,
		Attachment: att,
		CreatedAt:  time.Now(),
	}
}

// historyText is the text a message contributes to later turns. An
// attachment-only turn is named after its file so the turn is never empty.
func (m Message) historyText() string {
	if strings.TrimSpace(m.Text) == "" && m.Attachment != nil {
		return "📎 " + m.Attachment.Name
	}
	return m.Text
}

// toHistory projects the transcript into the provider's history shape.
func toHistory(msgs []Message) []models.HistoryItem {
	history := make([]models.HistoryItem, 0, len(msgs))
	for _, m := range msgs {
		role := models.RoleModel
		if m.IsUser() {
			role = models.RoleUser
		}
		history = append(history, models.HistoryItem{
			Role:  role,
			Parts: []models.Part{{Text: m.historyText()}},
		})
	}
	return history
}
