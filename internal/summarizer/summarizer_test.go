package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLead_Summarize(t *testing.T) {
	tests := []struct {
		name string
		n    int
		text string
		want string
	}{
		{name: "empty", n: 2, text: "", want: ""},
		{name: "fewer sentences than limit", n: 3, text: "Only one.", want: "Only one."},
		{name: "truncates", n: 2, text: "First one. Second one! Third one? Fourth.", want: "First one. Second one!"},
		{name: "collapses whitespace", n: 1, text: "  spread\nover   lines.  Next.", want: "spread over lines."},
		{name: "decimal not a boundary", n: 1, text: "Pi is 3.14 roughly. Next.", want: "Pi is 3.14 roughly."},
		{name: "paragraph break", n: 1, text: "heading without stop\n\nbody text.", want: "heading without stop"},
		{name: "cjk punctuation", n: 1, text: "第一句。第二句。", want: "第一句。"},
		{name: "default count", n: 0, text: "a. b. c. d.", want: "a. b. c."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLead(tt.n).Summarize(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLead_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLead(1).Summarize(ctx, "x.")
	assert.ErrorIs(t, err, context.Canceled)
}

func fakeOpenAI(t *testing.T, handler func(w http.ResponseWriter, req openai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		handler(w, req)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeChoices(w http.ResponseWriter, contents ...string) {
	choices := make([]map[string]interface{}, 0, len(contents))
	for i, c := range contents {
		choices = append(choices, map[string]interface{}{
			"index":         i,
			"message":       map[string]string{"role": "assistant", "content": c},
			"finish_reason": "stop",
		})
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": choices,
	})
}

func TestOpenAI_Summarize(t *testing.T) {
	srv := fakeOpenAI(t, func(w http.ResponseWriter, req openai.ChatCompletionRequest) {
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 64, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "long note text", req.Messages[1].Content)
		writeChoices(w, "  short summary \n")
	})

	s, err := New(Config{Provider: "openai", Model: "test-model", BaseURL: srv.URL + "/", APIKey: "test-key", MaxTokens: 64}, nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", s.Name())

	got, err := s.Summarize(context.Background(), "long note text")
	require.NoError(t, err)
	assert.Equal(t, "short summary", got)
}

func TestOpenAI_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler func(w http.ResponseWriter, req openai.ChatCompletionRequest)
		wantIs  error
	}{
		{
			name: "upstream error",
			handler: func(w http.ResponseWriter, _ openai.ChatCompletionRequest) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			},
		},
		{
			name:    "no choices",
			handler: func(w http.ResponseWriter, _ openai.ChatCompletionRequest) { writeChoices(w) },
			wantIs:  ErrEmptySummary,
		},
		{
			name:    "blank content",
			handler: func(w http.ResponseWriter, _ openai.ChatCompletionRequest) { writeChoices(w, "   ") },
			wantIs:  ErrEmptySummary,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeOpenAI(t, tt.handler)
			s, err := NewOpenAI(Config{Model: "test-model", BaseURL: srv.URL, APIKey: "test-key"}, nil)
			require.NoError(t, err)

			_, err = s.Summarize(context.Background(), "text")
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestNew(t *testing.T) {
	s, err := New(Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "lead", s.Name())

	t.Setenv("OPENAI_API_KEY", "")
	_, err = New(Config{Provider: "openai"}, nil)
	assert.Error(t, err)

	_, err = New(Config{Provider: "bard"}, nil)
	assert.Error(t, err)
}
