package model

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopmate/assistant"
	"shopmate/audio"
	"shopmate/catalog"
	"shopmate/config"
	"shopmate/speech"
)

func newTestModel(t *testing.T, handler http.HandlerFunc) (*Model, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := assistant.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	m := NewModel(&config.Config{}, client, nil, nil, audio.NewArbiter(), "test")
	return m, srv
}

func okHandler(answer string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message": "`+answer+`"}`)
	}
}

func TestNewModelStartsWithGreeting(t *testing.T) {
	m, _ := newTestModel(t, okHandler("hi"))

	if len(m.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(m.Messages))
	}
	if m.Messages[0].Text != WelcomeText {
		t.Errorf("expected greeting, got %q", m.Messages[0].Text)
	}
	if !m.Messages[0].FromAssistant {
		t.Error("greeting should come from the assistant")
	}
	if m.Pending {
		t.Error("fresh model should not be pending")
	}
}

func TestSubmitIgnoresBlankInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   \n\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, okHandler("hi"))
			before := len(m.Messages)

			if cmd := m.Submit(tt.input); cmd != nil {
				t.Error("expected nil command for blank input")
			}
			if len(m.Messages) != before {
				t.Errorf("log grew from %d to %d on blank input", before, len(m.Messages))
			}
			if m.Pending {
				t.Error("blank input must not set pending")
			}
		})
	}
}

func TestSubmitIgnoredWhilePending(t *testing.T) {
	m, _ := newTestModel(t, okHandler("hi"))

	first := m.Submit("first question")
	if first == nil {
		t.Fatal("expected command for first submit")
	}
	if !m.Pending {
		t.Fatal("expected pending after submit")
	}
	before := len(m.Messages)

	if cmd := m.Submit("second question"); cmd != nil {
		t.Error("expected nil command while a request is in flight")
	}
	if len(m.Messages) != before {
		t.Error("log must not grow while a request is in flight")
	}
}

func TestExchangeAppendsInOrder(t *testing.T) {
	m, _ := newTestModel(t, okHandler("answer text"))

	questions := []string{"q one", "q two", "q three"}
	for _, q := range questions {
		cmd := m.Submit(q)
		if cmd == nil {
			t.Fatalf("expected command for %q", q)
		}

		msg, ok := cmd().(AssistantReplyMsg)
		if !ok {
			t.Fatalf("expected AssistantReplyMsg for %q", q)
		}
		m.HandleReply(msg)

		if m.Pending {
			t.Error("pending must clear after reply")
		}
	}

	// One greeting plus a user/assistant pair per question
	want := len(questions)*2 + 1
	if len(m.Messages) != want {
		t.Fatalf("expected %d messages, got %d", want, len(m.Messages))
	}

	for i, q := range questions {
		userIdx := 1 + i*2
		if m.Messages[userIdx].Text != q || m.Messages[userIdx].FromAssistant {
			t.Errorf("message %d: expected user question %q, got %+v", userIdx, q, m.Messages[userIdx])
		}
		if m.Messages[userIdx+1].Text != "answer text" || !m.Messages[userIdx+1].FromAssistant {
			t.Errorf("message %d: expected assistant answer, got %+v", userIdx+1, m.Messages[userIdx+1])
		}
	}
}

func TestFailedAskShowsFallback(t *testing.T) {
	m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	cmd := m.Submit("does this fail?")
	errMsg, ok := cmd().(AssistantErrorMsg)
	if !ok {
		t.Fatal("expected AssistantErrorMsg")
	}
	m.HandleAskError(errMsg)

	if m.Pending {
		t.Error("pending must clear after a failed request")
	}
	last := m.Messages[len(m.Messages)-1]
	if last.Text != FallbackText {
		t.Errorf("expected fixed fallback text, got %q", last.Text)
	}
	if !last.FromAssistant {
		t.Error("fallback must appear as an assistant message")
	}
	// Exchange shape holds even for failures: greeting + question + fallback
	if len(m.Messages) != 3 {
		t.Errorf("expected 3 messages, got %d", len(m.Messages))
	}
}

func TestReplyProductsPresentAsCards(t *testing.T) {
	m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message": "found these", "products": [{"brand_name": "Samsung", "model": "Galaxy S23", "price": 899}]}`)
	})

	cmd := m.Submit("show me phones")
	m.HandleReply(cmd().(AssistantReplyMsg))

	last := m.Messages[len(m.Messages)-1]
	if !last.PresentAsCards {
		t.Error("reply products should present as cards")
	}
	if len(last.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(last.Products))
	}
}

func TestReset(t *testing.T) {
	m, _ := newTestModel(t, okHandler("answer"))

	cmd := m.Submit("a question")
	m.HandleReply(cmd().(AssistantReplyMsg))
	m.InjectProductDetail(catalog.Product{ID: 7, BrandName: "Nokia", DisplayName: "G22"})

	m.Reset()

	if len(m.Messages) != 1 {
		t.Fatalf("expected single greeting after reset, got %d messages", len(m.Messages))
	}
	if m.Messages[0].Text != WelcomeText {
		t.Errorf("expected greeting after reset, got %q", m.Messages[0].Text)
	}
	if m.Pending {
		t.Error("reset must clear pending")
	}

	// The injection guard resets as well
	if !m.InjectProductDetail(catalog.Product{ID: 7, BrandName: "Nokia", DisplayName: "G22"}) {
		t.Error("expected detail injection to work again after reset")
	}
}

func TestReplyAfterResetIsDropped(t *testing.T) {
	m, _ := newTestModel(t, okHandler("late answer"))

	cmd := m.Submit("a question")
	lateReply := cmd().(AssistantReplyMsg)
	m.Reset()

	if audioCmd := m.HandleReply(lateReply); audioCmd != nil {
		t.Error("dropped reply must not schedule anything")
	}
	if len(m.Messages) != 1 {
		t.Fatalf("expected only the greeting after reset, got %d messages", len(m.Messages))
	}

	// A question asked after the reset is unaffected by the late reply
	cmd = m.Submit("a new question")
	m.HandleReply(lateReply)
	if !m.Pending {
		t.Error("late reply must not clear pending for the new conversation")
	}
	if len(m.Messages) != 2 {
		t.Fatalf("expected greeting plus question, got %d messages", len(m.Messages))
	}

	// The current conversation's own reply still lands
	m.HandleReply(cmd().(AssistantReplyMsg))
	if m.Pending {
		t.Error("pending must clear for the current conversation's reply")
	}
	if len(m.Messages) != 3 {
		t.Fatalf("expected a complete exchange, got %d messages", len(m.Messages))
	}
}

func TestErrorAfterResetIsDropped(t *testing.T) {
	m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	cmd := m.Submit("a question")
	lateErr := cmd().(AssistantErrorMsg)
	m.Reset()

	m.HandleAskError(lateErr)
	if len(m.Messages) != 1 {
		t.Fatalf("expected only the greeting after reset, got %d messages", len(m.Messages))
	}
	if m.LastAssistantText() != WelcomeText {
		t.Error("fallback must not appear in a conversation that was reset")
	}
}

func TestHandleTranscriptDoesNotSubmit(t *testing.T) {
	m, _ := newTestModel(t, okHandler("hi"))

	m.HandleTranscript(TranscriptMsg{Text: "show me phones"})

	if len(m.Messages) != 1 {
		t.Errorf("transcript must not enter the log, got %d messages", len(m.Messages))
	}
	if m.Pending {
		t.Error("transcript must not start a request")
	}
}

func TestCaptureHandlersTolerateMissingCapture(t *testing.T) {
	// newTestModel builds a model without a capture, like a host with no
	// recognizer configured
	m, _ := newTestModel(t, okHandler("hi"))

	m.HandleTranscript(TranscriptMsg{Text: "anything"})
	m.HandleCaptureError(CaptureErrorMsg{Err: speech.ErrStopped})
}

func TestInjectProductDetailOncePerSelection(t *testing.T) {
	m, _ := newTestModel(t, okHandler("hi"))

	p := catalog.Product{ID: 3, BrandName: "Google", DisplayName: "Pixel 8", Price: 699}

	if !m.InjectProductDetail(p) {
		t.Fatal("first injection should succeed")
	}
	before := len(m.Messages)

	if m.InjectProductDetail(p) {
		t.Error("repeat injection for the same selection must be a no-op")
	}
	if len(m.Messages) != before {
		t.Error("log must not grow on repeat injection")
	}

	// A different selection injects again
	other := catalog.Product{ID: 4, BrandName: "Apple", DisplayName: "iPhone 15", Price: 799}
	if !m.InjectProductDetail(other) {
		t.Error("new selection should inject")
	}

	detail := m.Messages[before-1]
	if detail.PresentAsCards {
		t.Error("detail messages must not present as cards")
	}
	if !detail.FromAssistant {
		t.Error("detail messages appear as assistant messages")
	}
}

func TestLastAssistantText(t *testing.T) {
	m, _ := newTestModel(t, okHandler("the latest answer"))

	if got := m.LastAssistantText(); got != WelcomeText {
		t.Errorf("expected greeting, got %q", got)
	}

	cmd := m.Submit("question")
	m.HandleReply(cmd().(AssistantReplyMsg))

	if got := m.LastAssistantText(); got != "the latest answer" {
		t.Errorf("expected latest answer, got %q", got)
	}
}

func TestConversationText(t *testing.T) {
	m, _ := newTestModel(t, okHandler("an answer"))

	cmd := m.Submit("a question")
	m.HandleReply(cmd().(AssistantReplyMsg))

	got := m.ConversationText()
	want := "Assistant: " + WelcomeText + "\n\nYou: a question\n\nAssistant: an answer"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
