// ABOUTME: Tests for the OpenAI client against a local fake completion server
// ABOUTME: Verifies system-message grounding, retries, and learning parsing
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func fakeCompletionServer(t *testing.T, failures int32, reply string, seen *openai.ChatCompletionRequest) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		if n <= failures {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  DefaultChatModel,
			Choices: []openai.ChatCompletionChoice{{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func testClient(t *testing.T, baseURL string, maxRetries int) *OpenAIClient {
	t.Helper()
	client, err := NewOpenAIClientWithConfig(&ClientConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		MaxRetries: maxRetries,
		RetryDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewOpenAIClientWithConfig() error = %v", err)
	}
	return client
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewOpenAIClient(\"\") error = %v, want ErrMissingAPIKey", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("k")
	if cfg.ChatModel != DefaultChatModel {
		t.Errorf("ChatModel = %v, want %v", cfg.ChatModel, DefaultChatModel)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %v, want 3", cfg.MaxRetries)
	}
}

func TestGenerateSendsDocumentAsSystemMessage(t *testing.T) {
	var seen openai.ChatCompletionRequest
	server, _ := fakeCompletionServer(t, 0, "  Fresh bread, fresh start!  ", &seen)
	client := testClient(t, server.URL, 0)

	got, err := client.Generate(context.Background(), "## Business Context\nBusiness: Acme Bakery", "Write a post")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "Fresh bread, fresh start!" {
		t.Errorf("Generate() = %q", got)
	}
	if len(seen.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(seen.Messages))
	}
	if seen.Messages[0].Role != openai.ChatMessageRoleSystem || seen.Messages[0].Content != "## Business Context\nBusiness: Acme Bakery" {
		t.Errorf("system message = %+v", seen.Messages[0])
	}
	if seen.Messages[1].Content != "Write a post" {
		t.Errorf("user message = %+v", seen.Messages[1])
	}
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	client := testClient(t, "http://127.0.0.1:0", 0)
	if _, err := client.Generate(context.Background(), "doc", "   "); err == nil {
		t.Error("Generate() with empty prompt should fail")
	}
}

func TestGenerateRetries(t *testing.T) {
	server, calls := fakeCompletionServer(t, 2, "ok", nil)
	client := testClient(t, server.URL, 2)

	got, err := client.Generate(context.Background(), "doc", "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("Generate() = %q, want ok", got)
	}
	if atomic.LoadInt32(calls) != 3 {
		t.Errorf("calls = %d, want 3", atomic.LoadInt32(calls))
	}
}

func TestGenerateGivesUp(t *testing.T) {
	server, calls := fakeCompletionServer(t, 100, "never", nil)
	client := testClient(t, server.URL, 1)

	if _, err := client.Generate(context.Background(), "doc", "prompt"); err == nil {
		t.Error("Generate() should fail when every attempt fails")
	}
	if atomic.LoadInt32(calls) != 2 {
		t.Errorf("calls = %d, want 2", atomic.LoadInt32(calls))
	}
}

func TestExtractLearnings(t *testing.T) {
	reply := "```json\n[{\"category\":\"timing\",\"insight\":\"Mornings win\",\"recommendation\":\"Post early\",\"confidence\":0.7,\"data_points\":12}]\n```"
	server, _ := fakeCompletionServer(t, 0, reply, nil)
	client := testClient(t, server.URL, 0)

	got, err := client.ExtractLearnings(context.Background(), "Morning posts did well")
	if err != nil {
		t.Fatalf("ExtractLearnings() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ExtractLearnings() returned %d, want 1", len(got))
	}
	if got[0].Insight != "Mornings win" || got[0].DataPoints != 12 {
		t.Errorf("candidate = %+v", got[0])
	}
}

func TestParseLearningCandidates(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{"plain array", `[{"insight":"a"},{"insight":"b"}]`, 2, false},
		{"empty array", `[]`, 0, false},
		{"fenced", "```\n[{\"insight\":\"a\"}]\n```", 1, false},
		{"not json", "I think mornings are good", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLearningCandidates(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLearningCandidates() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
