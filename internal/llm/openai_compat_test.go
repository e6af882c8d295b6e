package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAICompatProviderSendsTwoMessages(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer gsk_test" {
			t.Errorf("unexpected auth header: %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Once upon a time.\n"}},{"message":{"role":"assistant","content":"ignored"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatProvider(srv.URL+"/v1/", "gsk_test", "llama-3.1-70b-versatile")
	defer p.Close()

	text, err := p.GenerateText(context.Background(), "You are an AI storytelling assistant.", "Generate a story")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "  Once upon a time.\n" {
		t.Fatalf("expected first choice verbatim, got %q", text)
	}

	if got.Model != "llama-3.1-70b-versatile" {
		t.Fatalf("unexpected model: %q", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
	if got.Messages[1].Content != "Generate a story" {
		t.Fatalf("unexpected user message: %q", got.Messages[1].Content)
	}
}

func TestOpenAICompatProviderSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatProvider(srv.URL, "bad", "llama-3.1-70b-versatile")
	_, err := p.GenerateText(context.Background(), "sys", "user")
	if err == nil || !strings.Contains(err.Error(), "Invalid API Key") {
		t.Fatalf("expected api error message, got %v", err)
	}
}

func TestOpenAICompatProviderEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatProvider(srv.URL, "", "m")
	if _, err := p.GenerateText(context.Background(), "sys", "user"); err == nil {
		t.Fatalf("expected empty choices to fail")
	}
}

func TestNewProviderRejectsUnknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), Options{Provider: "oracle"}); err == nil {
		t.Fatalf("expected unknown provider to fail")
	}
}
