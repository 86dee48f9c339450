package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/ghstx9/geminiwrapper/internal/catalog"
	"github.com/ghstx9/geminiwrapper/internal/models"
)

type State int

const (
	StateIdle State = iota
	StateAwaiting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrNothingToSend = errors.New("session: message is empty")
	ErrBusy          = errors.New("session: a reply is still pending")
)

// Result is what the relay answered for one turn. A transport failure is
// reported separately as an error.
type Result struct {
	StatusCode int
	Status     string // status text, e.g. "Bad Gateway"
	Response   string
	Error      string
}

// Relay sends one chat turn to the server.
type Relay interface {
	Send(ctx context.Context, req models.ChatRequest) (Result, error)
}

type chipSource interface {
	Chips() []string
}

// Pending is an in-flight turn started by Begin.
type Pending struct {
	Request    models.ChatRequest
	generation uint64
}

// Store owns the transcript. At most one turn is in flight at a time.
type Store struct {
	mu          sync.Mutex
	relay       Relay
	chips       chipSource
	messages    []Message
	state       State
	model       string
	suggestions []string
	generation  uint64
}

func NewStore(relay Relay, chips chipSource, modelID string) *Store {
	if modelID == "" {
		modelID = catalog.DefaultModelID
	}
	s := &Store{relay: relay, chips: chips, model: modelID}
	s.suggestions = chips.Chips()
	return s
}

// Submit sends text as the next user turn and waits for the reply.
func (s *Store) Submit(ctx context.Context, text string, att *models.Attachment) (Message, error) {
	p, err := s.Begin(text, att)
	if err != nil {
		return Message{}, err
	}
	res, sendErr := s.Dispatch(ctx, p)
	msg, _ := s.Resolve(p, res, sendErr)
	return msg, nil
}

// Dispatch sends a pending turn to the relay. It does not touch the
// transcript, so it may run outside the UI goroutine.
func (s *Store) Dispatch(ctx context.Context, p Pending) (Result, error) {
	return s.relay.Send(ctx, p.Request)
}

// Begin appends the user turn and moves to Awaiting. The returned request
// carries the transcript as it was before this turn.
func (s *Store) Begin(text string, att *models.Attachment) (Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(text) == "" && att == nil {
		return Pending{}, ErrNothingToSend
	}
	if s.state == StateAwaiting {
		return Pending{}, ErrBusy
	}

	history := toHistory(s.messages)
	s.suggestions = nil
	s.messages = append(s.messages, newMessage(SenderUser, text, att))
	s.state = StateAwaiting

	return Pending{
		Request: models.ChatRequest{
			Message:    text,
			History:    history,
			ModelID:    s.model,
			Attachment: att,
		},
		generation: s.generation,
	}, nil
}

// Resolve appends the assistant turn for p and returns to Idle. It reports
// false when the chat was reset while p was in flight; the reply is dropped.
func (s *Store) Resolve(p Pending, res Result, sendErr error) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.generation != s.generation || s.state != StateAwaiting {
		return Message{}, false
	}

	msg := newMessage(SenderAssistant, replyText(res, sendErr), nil)
	s.messages = append(s.messages, msg)
	s.state = StateIdle
	return msg, true
}

// replyText turns a relay outcome into the bubble text. A 429 advisory is
// shown as a normal reply.
func replyText(res Result, sendErr error) string {
	if sendErr != nil {
		return "Error: " + sendErr.Error()
	}
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return res.Response
	}
	if res.StatusCode == http.StatusTooManyRequests && res.Response != "" {
		return res.Response
	}

	switch {
	case res.Error != "":
		return "Error: " + res.Error
	case res.Response != "":
		return "Error: " + res.Response
	default:
		status := res.Status
		if status == "" {
			status = http.StatusText(res.StatusCode)
		}
		return "Error: API error: " + status
	}
}

// NewChat clears the transcript and draws fresh suggestion chips.
func (s *Store) NewChat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.state = StateIdle
	s.generation++
	s.suggestions = s.chips.Chips()
}

// SwitchModel selects id for later turns. A note is appended when the
// conversation has already started.
func (s *Store) SwitchModel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" || id == s.model {
		return
	}
	s.model = id
	if len(s.messages) > 0 {
		note := fmt.Sprintf("Switched to **%s**. Earlier messages are kept as context.", catalog.DisplayName(id))
		s.messages = append(s.messages, newMessage(SenderAssistant, note, nil))
	}
}

func (s *Store) SetSuggestions(suggestions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suggestions = append([]string(nil), suggestions...)
}

func (s *Store) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.suggestions...)
}

func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Message(nil), s.messages...)
}

func (s *Store) History() []models.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return toHistory(s.messages)
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Store) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.model
}

// LastReply returns the most recent assistant message.
func (s *Store) LastReply() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Sender == SenderAssistant {
			return s.messages[i], true
		}
	}
	return Message{}, false
}
