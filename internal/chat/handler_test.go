package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akarpov/mentor-labs/internal/domain"
	"github.com/akarpov/mentor-labs/internal/relay"
	"github.com/akarpov/mentor-labs/internal/stream"
)

type fakeRelay struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
	lastSID    string
}

func (f *fakeRelay) Send(_ context.Context, sessionID, prompt string) (string, error) {
	f.calls++
	f.lastSID = sessionID
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestHandler(r Relay) *Handler {
	return NewHandler(r, stream.NewEmitter(time.Millisecond), 0, nil)
}

func intPtr(v int) *int { return &v }

func validRequest() Request {
	return Request{
		Messages: []domain.ConversationMessage{
			{Role: domain.RoleUser, Content: "How do I negotiate a raise?"},
		},
		Mentor: &domain.Mentor{Name: "Viktor Hale", Field: "Negotiation"},
		FineTuning: &ToneWire{
			Tone:         intPtr(50),
			Fun:          intPtr(100),
			Seriousness:  intPtr(0),
			Practicality: intPtr(75),
		},
	}
}

func postChat(t *testing.T, h *Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	rec := httptest.NewRecorder()
	h.HandleChat(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(string(body))))
	return rec
}

func TestHandleChatStreamsReply(t *testing.T) {
	t.Parallel()

	fr := &fakeRelay{reply: "lead with tactical empathy"}
	rec := postChat(t, newTestHandler(fr), validRequest())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	var (
		reassembled strings.Builder
		sawStop     bool
		sawDone     bool
		chunks      int
	)
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			sawDone = true
			continue
		}
		if sawDone {
			t.Fatal("no frames may follow the [DONE] terminator")
		}
		var chunk completionChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			t.Fatalf("bad chunk %q: %v", payload, err)
		}
		if chunk.Object != "chat.completion.chunk" {
			t.Errorf("chunk object = %q", chunk.Object)
		}
		chunks++
		reassembled.WriteString(chunk.Choices[0].Delta.Content)
		if reason := chunk.Choices[0].FinishReason; reason != nil && *reason == "stop" {
			sawStop = true
		}
	}

	if reassembled.String() != "lead with tactical empathy" {
		t.Errorf("reassembled reply = %q", reassembled.String())
	}
	if want := len(strings.Split("lead with tactical empathy", " ")); chunks != want {
		t.Errorf("chunk count = %d, want %d", chunks, want)
	}
	if !sawStop {
		t.Error("last content chunk must carry finish_reason stop")
	}
	if !sawDone {
		t.Error("stream must terminate with [DONE]")
	}
}

func TestHandleChatComposesConditionedPrompt(t *testing.T) {
	t.Parallel()

	fr := &fakeRelay{reply: "ok"}
	postChat(t, newTestHandler(fr), validRequest())

	for _, phrase := range []string{
		"You are Viktor Hale",
		"balanced",
		"very fun and entertaining",
		"very light and casual",
		"practical with theoretical backing",
		"USER QUESTION: How do I negotiate a raise?",
	} {
		if !strings.Contains(fr.lastPrompt, phrase) {
			t.Errorf("relayed prompt missing %q", phrase)
		}
	}
	if fr.lastSID == "" {
		t.Error("relay must receive a conversation-scoped session id")
	}
}

func TestHandleChatRejectsMalformedConversation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty messages", func(r *Request) { r.Messages = nil }},
		{"final message not user", func(r *Request) {
			r.Messages = append(r.Messages, domain.ConversationMessage{Role: domain.RoleAssistant, Content: "hi"})
		}},
		{"missing settings", func(r *Request) { r.FineTuning = nil }},
		{"missing slider", func(r *Request) { r.FineTuning.Fun = nil }},
		{"out of range slider", func(r *Request) { r.FineTuning.Tone = intPtr(150) }},
	}
	for _, tc := range cases {
		fr := &fakeRelay{reply: "ok"}
		req := validRequest()
		tc.mutate(&req)
		rec := postChat(t, newTestHandler(fr), req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
		if fr.calls != 0 {
			t.Errorf("%s: no upstream call may be made on malformed input", tc.name)
		}
	}
}

func TestHandleChatMirrorsUpstreamStatus(t *testing.T) {
	t.Parallel()

	fr := &fakeRelay{err: &relay.UpstreamError{StatusCode: http.StatusServiceUnavailable, Body: "overloaded"}}
	rec := postChat(t, newTestHandler(fr), validRequest())

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "overloaded") {
		t.Error("upstream error body must not reach the client")
	}
}

func TestHandleChatInternalError(t *testing.T) {
	t.Parallel()

	fr := &fakeRelay{err: context.DeadlineExceeded}
	rec := postChat(t, newTestHandler(fr), validRequest())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestHandleChatEmptyReplyYieldsOnlyTerminator(t *testing.T) {
	t.Parallel()

	fr := &fakeRelay{reply: ""}
	rec := postChat(t, newTestHandler(fr), validRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Count(body, "data: ") != 1 || !strings.Contains(body, "data: [DONE]") {
		t.Errorf("empty reply should stream only the terminator, got %q", body)
	}
}
