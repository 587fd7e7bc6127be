package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cognito-terminal/internal/store"
)

func TestGenerateRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewGenerator(store.Default()).Generate(context.Background(), "hi"); err == nil {
		t.Error("Expected error when OPENAI_API_KEY is missing")
	}
}

func TestGenerateReadsFirstChoice(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"Bitcoin bulls charge ahead."}}]}`))
	}))
	defer srv.Close()

	cfg := store.Default()
	cfg.Oracle.Endpoint = srv.URL
	out, err := NewGenerator(cfg).Generate(context.Background(), "headline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Bitcoin bulls charge ahead." {
		t.Errorf("unexpected output %q", out)
	}
}

func TestGenerateNoChoices(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	cfg := store.Default()
	cfg.Oracle.Endpoint = srv.URL
	if _, err := NewGenerator(cfg).Generate(context.Background(), "x"); err == nil {
		t.Error("Expected error when no choices are returned")
	}
}
