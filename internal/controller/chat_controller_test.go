package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/internal/pkg/serverutils"
	"niv-scholar-be/internal/service"
	"niv-scholar-be/pkg/llm/openai"
	"niv-scholar-be/pkg/scholar/gateway"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstream struct {
	server *httptest.Server
	calls  atomic.Int32
	last   atomic.Value
}

func newUpstream(t *testing.T, status int, body string) *upstream {
	t.Helper()
	u := &upstream{}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		u.last.Store(string(raw))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(u.server.Close)
	return u
}

func newChatApp(apiKey string, u *upstream) *fiber.App {
	log := logger.NewNopLogger()
	provider := openai.NewOpenAIProvider(apiKey, u.server.URL)
	ctrl := NewChatController(service.NewChatService(gateway.New(provider, log)))

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(log)})
	ctrl.RegisterRoutes(app.Group("/api"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, body string) (int, http.Header, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, res.Header, out
}

func TestChatSuccess(t *testing.T) {
	u := newUpstream(t, 200, `{"choices":[{"message":{"content":"  Grace is unmerited favor (Ephesians 2:8-9).  "}}]}`)
	app := newChatApp("sk-test", u)

	status, _, body := doJSON(t, app, http.MethodPost, `{"prompt":"What is grace?","history":[{"role":"user","content":"hi"},{"role":"","content":"dropped"}]}`)

	assert.Equal(t, 200, status)
	assert.Equal(t, "Grace is unmerited favor (Ephesians 2:8-9).", body["message"])
	assert.NotEmpty(t, body["timestamp"])
	assert.EqualValues(t, 1, u.calls.Load())

	var sent struct {
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal([]byte(u.last.Load().(string)), &sent))
	assert.Equal(t, "gpt-4o-mini", sent.Model)
	assert.Equal(t, 800, sent.MaxTokens)
	assert.Equal(t, 0.7, sent.Temperature)
	require.Len(t, sent.Messages, 3)
	assert.Equal(t, "system", sent.Messages[0].Role)
	assert.Equal(t, "hi", sent.Messages[1].Content)
	assert.Equal(t, "What is grace?", sent.Messages[2].Content)
}

func TestChatWithVerseContext(t *testing.T) {
	u := newUpstream(t, 200, `{"choices":[{"message":{"content":"ok"}}]}`)
	app := newChatApp("sk-test", u)

	status, _, _ := doJSON(t, app, http.MethodPost, `{"prompt":"explain","verseContext":{"book":"John","chapter":3,"verse":16}}`)

	assert.Equal(t, 200, status)
	assert.Contains(t, u.last.Load().(string), "In the context of John 3:16, explain")
}

func TestChatEmptyContentUsesPlaceholder(t *testing.T) {
	u := newUpstream(t, 200, `{"choices":[]}`)
	app := newChatApp("sk-test", u)

	status, _, body := doJSON(t, app, http.MethodPost, `{"prompt":"hello"}`)

	assert.Equal(t, 200, status)
	assert.Equal(t, gateway.PlaceholderMessage, body["message"])
}

func TestChatRejections(t *testing.T) {
	tests := []struct {
		name       string
		apiKey     string
		method     string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "missing prompt", apiKey: "sk-test", method: http.MethodPost, body: `{"history":[]}`, wantStatus: 400, wantError: "Prompt is required"},
		{name: "empty prompt", apiKey: "sk-test", method: http.MethodPost, body: `{"prompt":""}`, wantStatus: 400, wantError: "Prompt is required"},
		{name: "empty body", apiKey: "sk-test", method: http.MethodPost, body: ``, wantStatus: 400, wantError: "Prompt is required"},
		{name: "invalid json", apiKey: "sk-test", method: http.MethodPost, body: `{"prompt":`, wantStatus: 400, wantError: "Invalid request body"},
		{name: "unknown book", apiKey: "sk-test", method: http.MethodPost, body: `{"prompt":"x","verseContext":{"book":"Hezekiah","chapter":1,"verse":1}}`, wantStatus: 400, wantError: `book is not in the canon: "Hezekiah"`},
		{name: "wrong method", apiKey: "sk-test", method: http.MethodGet, body: ``, wantStatus: 405, wantError: "Method Not Allowed"},
		{name: "missing credential", apiKey: "", method: http.MethodPost, body: `{"prompt":"hi"}`, wantStatus: 500, wantError: "Missing OPENAI_API_KEY environment variable"},
		{name: "credential checked before prompt", apiKey: "", method: http.MethodPost, body: `{}`, wantStatus: 500, wantError: "Missing OPENAI_API_KEY environment variable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUpstream(t, 200, `{"choices":[{"message":{"content":"never"}}]}`)
			app := newChatApp(tt.apiKey, u)

			status, header, body := doJSON(t, app, tt.method, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantError, body["error"])
			assert.EqualValues(t, 0, u.calls.Load())
			if tt.wantStatus == 405 {
				assert.Equal(t, "POST", header.Get("Allow"))
			}
		})
	}
}

func TestChatUpstreamErrorPassesThrough(t *testing.T) {
	raw := `{"error":{"message":"Rate limit reached","type":"requests"}}`
	u := newUpstream(t, 429, raw)
	app := newChatApp("sk-test", u)

	status, _, body := doJSON(t, app, http.MethodPost, `{"prompt":"hi"}`)

	assert.Equal(t, 429, status)
	assert.Equal(t, "OpenAI error: Too Many Requests", body["error"])
	assert.Equal(t, raw, body["details"])
	assert.EqualValues(t, 1, u.calls.Load())
}
