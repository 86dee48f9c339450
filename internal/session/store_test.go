package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghstx9/geminiwrapper/internal/models"
	"github.com/ghstx9/geminiwrapper/internal/suggest"
)

type fakeRelay struct {
	result Result
	err    error
	calls  []models.ChatRequest
}

func (f *fakeRelay) Send(ctx context.Context, req models.ChatRequest) (Result, error) {
	f.calls = append(f.calls, req)
	return f.result, f.err
}

func newTestStore(relay Relay) *Store {
	return NewStore(relay, suggest.NewPool([]string{"a", "b", "c", "d", "e"}, 1), "")
}

func ok(text string) Result {
	return Result{StatusCode: http.StatusOK, Status: "OK", Response: text}
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmit_Success(t *testing.T) {
	relay := &fakeRelay{result: ok("Hi there!")}
	s := newTestStore(relay)

	reply, err := s.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", reply.Text)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, SenderUser, msgs[0].Sender)
	assert.Equal(t, "Hello", msgs[0].Text)
	assert.Equal(t, SenderAssistant, msgs[1].Sender)
	assert.Equal(t, "Hi there!", msgs[1].Text)
	assert.Equal(t, StateIdle, s.State())

	require.Len(t, relay.calls, 1)
	assert.Empty(t, relay.calls[0].History)
	assert.Equal(t, "gemini-2.5-flash", relay.calls[0].ModelID)
}

func TestSubmit_HistoryIsPriorTranscript(t *testing.T) {
	relay := &fakeRelay{result: ok("first reply")}
	s := newTestStore(relay)

	_, err := s.Submit(context.Background(), "first", nil)
	require.NoError(t, err)

	relay.result = ok("second reply")
	_, err = s.Submit(context.Background(), "second", nil)
	require.NoError(t, err)

	require.Len(t, relay.calls, 2)
	history := relay.calls[1].History
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, "first", history[0].Text())
	assert.Equal(t, models.RoleModel, history[1].Role)
	assert.Equal(t, "first reply", history[1].Text())
	assert.Equal(t, "second", relay.calls[1].Message)
}

func TestSubmit_NothingToSend(t *testing.T) {
	relay := &fakeRelay{result: ok("unused")}
	s := newTestStore(relay)

	_, err := s.Submit(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrNothingToSend)
	assert.Empty(t, s.Messages())
	assert.Empty(t, relay.calls)
}

func TestSubmit_AttachmentWithoutText(t *testing.T) {
	relay := &fakeRelay{result: ok("nice picture")}
	s := newTestStore(relay)

	att := &models.Attachment{Name: "cat.png", Type: "image/png", Data: "aGVsbG8="}
	_, err := s.Submit(context.Background(), "", att)
	require.NoError(t, err)

	require.Len(t, relay.calls, 1)
	assert.Equal(t, att, relay.calls[0].Attachment)
	assert.Equal(t, att, s.Messages()[0].Attachment)
}

func TestSubmit_AttachmentOnlyTurnNamedInHistory(t *testing.T) {
	relay := &fakeRelay{result: ok("nice picture")}
	s := newTestStore(relay)

	att := &models.Attachment{Name: "cat.png", Type: "image/png", Data: "aGVsbG8="}
	_, err := s.Submit(context.Background(), "", att)
	require.NoError(t, err)
	_, err = s.Submit(context.Background(), "what breed?", nil)
	require.NoError(t, err)

	history := relay.calls[1].History
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, "📎 cat.png", history[0].Text())
	assert.Equal(t, "", s.Messages()[0].Text, "transcript keeps the original empty text")
}

func TestSubmit_RateLimitAdvisoryIsPlainReply(t *testing.T) {
	advisory := "You've hit the rate limit. Please wait and try again."
	relay := &fakeRelay{result: Result{StatusCode: http.StatusTooManyRequests, Status: "Too Many Requests", Response: advisory}}
	s := newTestStore(relay)

	reply, err := s.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)
	assert.Equal(t, advisory, reply.Text)
	assert.Equal(t, StateIdle, s.State())
}

func TestSubmit_FailureBubbles(t *testing.T) {
	tests := []struct {
		name    string
		result  Result
		sendErr error
		want    string
	}{
		{
			name:   "server error field",
			result: Result{StatusCode: http.StatusBadRequest, Status: "Bad Request", Error: "Message is required"},
			want:   "Error: Message is required",
		},
		{
			name:   "server response field",
			result: Result{StatusCode: http.StatusInternalServerError, Status: "Internal Server Error", Response: "Sorry, something went wrong."},
			want:   "Error: Sorry, something went wrong.",
		},
		{
			name:   "status text only",
			result: Result{StatusCode: http.StatusBadGateway, Status: "Bad Gateway"},
			want:   "Error: API error: Bad Gateway",
		},
		{
			name:   "rate limit without body",
			result: Result{StatusCode: http.StatusTooManyRequests, Status: "Too Many Requests"},
			want:   "Error: API error: Too Many Requests",
		},
		{
			name:    "transport failure",
			sendErr: errors.New("connection refused"),
			want:    "Error: connection refused",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(&fakeRelay{result: tc.result, err: tc.sendErr})

			reply, err := s.Submit(context.Background(), "Hello", nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, reply.Text)
			assert.Equal(t, SenderAssistant, reply.Sender)
			assert.Equal(t, StateIdle, s.State())
		})
	}
}

// =============================================================================
// BEGIN / RESOLVE TESTS
// =============================================================================

func TestBegin_BusyWhileAwaiting(t *testing.T) {
	s := newTestStore(&fakeRelay{})

	p, err := s.Begin("Hello", nil)
	require.NoError(t, err)
	assert.Equal(t, StateAwaiting, s.State())
	assert.Empty(t, s.Suggestions(), "chips are cleared on submit")

	_, err = s.Begin("again", nil)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, s.Messages(), 1)

	_, applied := s.Resolve(p, ok("done"), nil)
	assert.True(t, applied)
	assert.Equal(t, StateIdle, s.State())

	_, err = s.Begin("again", nil)
	assert.NoError(t, err)
}

func TestResolve_DroppedAfterNewChat(t *testing.T) {
	s := newTestStore(&fakeRelay{})

	p, err := s.Begin("Hello", nil)
	require.NoError(t, err)

	s.NewChat()
	_, applied := s.Resolve(p, ok("late reply"), nil)

	assert.False(t, applied)
	assert.Empty(t, s.Messages())
	assert.Equal(t, StateIdle, s.State())
}

// =============================================================================
// CHAT MANAGEMENT TESTS
// =============================================================================

func TestNewChat(t *testing.T) {
	s := newTestStore(&fakeRelay{result: ok("Hi")})
	_, err := s.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)

	s.NewChat()

	assert.Empty(t, s.Messages())
	assert.Equal(t, StateIdle, s.State())

	chips := s.Suggestions()
	require.Len(t, chips, suggest.ChipCount)
	seen := map[string]bool{}
	for _, c := range chips {
		assert.False(t, seen[c], "duplicate chip %q", c)
		seen[c] = true
	}
}

func TestSwitchModel(t *testing.T) {
	s := newTestStore(&fakeRelay{result: ok("Hi")})

	s.SwitchModel("gemma-3-27b-it")
	assert.Equal(t, "gemma-3-27b-it", s.Model())
	assert.Empty(t, s.Messages(), "no note on an empty chat")

	_, err := s.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)

	s.SwitchModel("qwen/qwen3-30b-a3b:free")
	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, SenderAssistant, msgs[2].Sender)
	assert.Contains(t, msgs[2].Text, "Qwen")

	s.SwitchModel("qwen/qwen3-30b-a3b:free")
	assert.Len(t, s.Messages(), 3, "same model adds no note")
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := newTestStore(&fakeRelay{result: ok("Hi")})
	_, err := s.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)

	msgs := s.Messages()
	msgs[0].Text = "mutated"

	assert.Equal(t, "Hello", s.Messages()[0].Text)
}

func TestLastReply(t *testing.T) {
	s := newTestStore(&fakeRelay{result: ok("Hi there!")})

	_, found := s.LastReply()
	assert.False(t, found)

	_, err := s.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)

	last, found := s.LastReply()
	require.True(t, found)
	assert.Equal(t, "Hi there!", last.Text)
}

func TestSetSuggestions(t *testing.T) {
	s := newTestStore(&fakeRelay{})
	s.SetSuggestions([]string{"x", "y", "z"})
	assert.Equal(t, []string{"x", "y", "z"}, s.Suggestions())
}
