package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessage_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1/messages" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Fatalf("missing api key header")
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload["max_tokens"].(float64) != 1000 {
			t.Fatalf("unexpected max_tokens %v", payload["max_tokens"])
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": "hello "},
				{"type": "text", "text": "world"},
			},
			"model": "claude-test-1",
			"usage": map[string]int{"input_tokens": 12, "output_tokens": 5},
		})
	}))
	defer ts.Close()

	client := NewClaudeClient(&ClaudeConfig{APIKey: "test-key", BaseURL: ts.URL})

	completion, err := client.SendMessage(context.Background(), []Message{{Role: "user", Content: "hi"}}, SendOptions{System: "sys", MaxTokens: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completion.Text != "hello world" {
		t.Fatalf("unexpected text %q", completion.Text)
	}
	if completion.Model != "claude-test-1" {
		t.Fatalf("unexpected model %q", completion.Model)
	}
	if completion.Usage.InputTokens != 12 || completion.Usage.OutputTokens != 5 {
		t.Fatalf("unexpected usage %+v", completion.Usage)
	}
}

func TestSendMessage_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer ts.Close()

	client := NewClaudeClient(&ClaudeConfig{APIKey: "test-key", BaseURL: ts.URL})

	_, err := client.SendMessage(context.Background(), []Message{{Role: "user", Content: "hi"}}, SendOptions{MaxTokens: 100})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected status %d", apiErr.StatusCode)
	}
}

func TestSendMessage_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewClaudeClient(&ClaudeConfig{APIKey: "test-key", BaseURL: ts.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SendMessage(ctx, []Message{{Role: "user", Content: "hi"}}, SendOptions{MaxTokens: 100})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("cancellation must surface as *APIError, got %T", err)
	}
}
