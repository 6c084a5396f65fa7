package gateway

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dadihq/dadi-gateway/internal/openai"
)

func doStreamChat(t *testing.T, chat *mockChat) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(chat, nil, nil, nil, nil)

	req := authedRequest("POST", "/api/chat", `{"messages":[{"role":"user","content":"hei"}]}`)
	req.Header.Set("Accept", "text/event-stream")
	w := httptest.NewRecorder()
	h.Chat(w, req)
	return w
}

func TestStreamChat_RelaysFragments(t *testing.T) {
	stream := &mockStream{fragments: []string{"He", "llo"}}
	w := doStreamChat(t, &mockChat{configured: true, stream: stream})

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %q", ct)
	}

	want := "data: {\"chunk\":\"He\"}\n\n" +
		"data: {\"chunk\":\"llo\"}\n\n" +
		"data: [DONE]\n\n"
	if got := w.Body.String(); got != want {
		t.Errorf("unexpected stream body:\ngot  %q\nwant %q", got, want)
	}
	if !stream.closed {
		t.Error("provider stream not closed after relay")
	}
}

func TestStreamChat_MidStreamErrorIsTerminal(t *testing.T) {
	stream := &mockStream{
		fragments: []string{"par"},
		err: &openai.Error{
			Category: openai.CategoryContextLengthExceeded,
			Message:  "too long",
		},
	}
	w := doStreamChat(t, &mockChat{configured: true, stream: stream})

	body := w.Body.String()
	if !strings.Contains(body, "data: {\"chunk\":\"par\"}\n\n") {
		t.Errorf("fragments before the failure must be delivered, got %q", body)
	}
	if !strings.HasSuffix(body, "data: {\"error\":\"CONTEXT_LENGTH_EXCEEDED\"}\n\n") {
		t.Errorf("expected terminal error event, got %q", body)
	}
	if strings.Contains(body, "[DONE]") {
		t.Errorf("[DONE] must not follow an error event, got %q", body)
	}
}

func TestStreamChat_PreStreamErrorStillUsesSSE(t *testing.T) {
	chat := &mockChat{
		configured: true,
		err:        &openai.Error{Category: openai.CategoryRateLimited, Message: "throttled"},
	}
	w := doStreamChat(t, chat)

	if w.Code != 200 {
		t.Fatalf("headers are committed before the provider call, got %d", w.Code)
	}
	want := "data: {\"error\":\"RATE_LIMITED\"}\n\n"
	if got := w.Body.String(); got != want {
		t.Errorf("expected lone error event, got %q", got)
	}
}

func TestStreamChat_EmptyCompletion(t *testing.T) {
	w := doStreamChat(t, &mockChat{configured: true, stream: &mockStream{}})

	if got := w.Body.String(); got != "data: [DONE]\n\n" {
		t.Errorf("empty stream must still terminate with [DONE], got %q", got)
	}
}
