package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cognito-terminal/internal/store"
)

func newTestConfig(endpoint string) *store.Config {
	cfg := store.Default()
	cfg.Oracle.Endpoint = endpoint
	cfg.Oracle.Model = "llama3"
	return cfg
}

func TestGenerateReturnsMessageContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Stream {
			t.Error("Expected non-streaming request")
		}
		if req.Model != "llama3" {
			t.Errorf("Expected model llama3, got %s", req.Model)
		}
		if last := req.Messages[len(req.Messages)-1]; last.Role != "user" || last.Content != "score BTC" {
			t.Errorf("unexpected user message %+v", last)
		}
		json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{Role: "assistant", Content: "  72 \n"}})
	}))
	defer srv.Close()

	out, err := NewGenerator(newTestConfig(srv.URL)).Generate(context.Background(), "score BTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "72" {
		t.Errorf("Expected trimmed content 72, got %q", out)
	}
}

func TestGenerateEmptyContentIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{"role":"assistant","content":""}}`))
	}))
	defer srv.Close()

	if _, err := NewGenerator(newTestConfig(srv.URL)).Generate(context.Background(), "x"); err == nil {
		t.Error("Expected error for empty completion")
	}
}

func TestGenerateServerErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model 'llama3' not found"}`))
	}))
	defer srv.Close()

	if _, err := NewGenerator(newTestConfig(srv.URL)).Generate(context.Background(), "x"); err == nil {
		t.Error("Expected error when server reports one")
	}
}

func TestGenerateMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	if _, err := NewGenerator(newTestConfig(srv.URL)).Generate(context.Background(), "x"); err == nil {
		t.Error("Expected error for malformed response")
	}
}
