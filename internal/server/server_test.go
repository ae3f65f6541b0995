package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/mock-interview/internal/config"
	"alfredoptarigan/mock-interview/internal/handlers"
	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/services"
)

type fakeGemini struct {
	mu      sync.Mutex
	replies map[string]string
	prompts []string
	called  []string
	catalog []models.ModelInfo
	listErr error
}

func (f *fakeGemini) GenerateText(_ context.Context, _, model, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.called = append(f.called, model)
	f.prompts = append(f.prompts, prompt)
	if text, ok := f.replies[model]; ok {
		return text, nil
	}
	return "", fmt.Errorf("%s unavailable", model)
}

func (f *fakeGemini) ListModels(_ context.Context, _ string) ([]models.ModelInfo, error) {
	return f.catalog, f.listErr
}

type fakeParser struct {
	text   string
	err    error
	called bool
}

func (p *fakeParser) ExtractText(data []byte) (string, error) {
	p.called = true
	return p.text, p.err
}

func (p *fakeParser) ExtractTextWithMetaData(data []byte) (*services.PDFContent, error) {
	text, err := p.ExtractText(data)
	if err != nil {
		return nil, err
	}
	return &services.PDFContent{Text: text, PageCount: 1}, nil
}

type testEnv struct {
	app    *fiber.App
	gemini *fakeGemini
	parser *fakeParser
}

func newTestEnv(t *testing.T, envKey string) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Server:  config.ServerConfig{StaticDir: t.TempDir()},
		Gemini:  config.GeminiConfig{APIKey: envKey, ChatModels: config.DefaultChatModels, FeedbackModel: config.DefaultFeedbackModel},
		Storage: config.StorageConfig{MaxFileSize: 1 << 20},
	}

	gemini := &fakeGemini{replies: map[string]string{}}
	parser := &fakeParser{}
	interview := services.NewInterviewService(gemini, cfg.Gemini.ChatModels, cfg.Gemini.FeedbackModel, cfg.Gemini.APIKey, nil)

	app := New(cfg, Handlers{
		Upload:    handlers.NewUploadHandler(parser),
		Interview: handlers.NewInterviewHandler(interview),
		System:    handlers.NewSystemHandler(gemini, interview),
	})

	return &testEnv{app: app, gemini: gemini, parser: parser}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func jsonRequest(t *testing.T, path string, payload any) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func detail(t *testing.T, body []byte) string {
	t.Helper()

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp), string(body))
	return resp.Detail
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t, "")

	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"AI Mock Interview System API"}`, string(body))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "")

	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"status":"healthy"`)
}

func TestUploadRejectsNonPDFName(t *testing.T) {
	for _, name := range []string{"resume.txt", "resume.PDF", "resume.pdf.docx", "resume"} {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, "")

			status, body := env.do(t, uploadRequest(t, name, []byte("%PDF-1.4 real pdf bytes"), map[string]string{"job_role": "SRE"}))

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "Only PDF files are supported", detail(t, body))
			assert.False(t, env.parser.called)
		})
	}
}

func TestUploadReturnsExtractedText(t *testing.T) {
	env := newTestEnv(t, "")
	env.parser.text = "Résumé ✓"

	status, body := env.do(t, uploadRequest(t, "cv.pdf", []byte("%PDF"), map[string]string{"job_role": "Go developer"}))

	require.Equal(t, http.StatusOK, status, string(body))
	var resp models.UploadResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Résumé ✓", resp.ExtractedText)
	assert.Equal(t, 8, resp.TextLength)
}

func TestUploadExtractionFailureIs500(t *testing.T) {
	env := newTestEnv(t, "")
	env.parser.err = errors.New("failed to open PDF: malformed PDF")

	status, body := env.do(t, uploadRequest(t, "cv.pdf", []byte("junk"), map[string]string{"job_role": "SRE"}))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "failed to open PDF: malformed PDF", detail(t, body))
}

func TestUploadMissingFields(t *testing.T) {
	env := newTestEnv(t, "")

	status, body := env.do(t, uploadRequest(t, "cv.pdf", []byte("%PDF"), nil))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(body), `"loc":["body","job_role"]`)

	status, body = env.do(t, uploadRequest(t, "", nil, map[string]string{"job_role": "SRE"}))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(body), `"loc":["body","file"]`)
}

func TestChatWithoutCredentialIs401(t *testing.T) {
	env := newTestEnv(t, "")

	status, body := env.do(t, jsonRequest(t, "/api/chat", map[string]any{
		"history": "",
		"message": "hello",
		"context": "Backend Engineer",
	}))

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "API Key not provided", detail(t, body))
	assert.Empty(t, env.gemini.called)
}

func TestChatFlattensStructuredHistory(t *testing.T) {
	env := newTestEnv(t, "env-key")
	env.gemini.replies["models/gemini-flash-latest"] = "What is a goroutine?"

	status, body := env.do(t, jsonRequest(t, "/api/chat", map[string]any{
		"history": []map[string]any{{"role": "user", "parts": []string{"hi"}}},
		"message": "ready",
		"context": "Go developer",
	}))

	require.Equal(t, http.StatusOK, status, string(body))
	assert.JSONEq(t, `{"response":"What is a goroutine?"}`, string(body))
	require.Len(t, env.gemini.prompts, 1)
	assert.Contains(t, env.gemini.prompts[0], "user: hi\n")
}

func TestChatFirstModelSuccessSkipsTheRest(t *testing.T) {
	env := newTestEnv(t, "")
	for _, m := range config.DefaultChatModels {
		env.gemini.replies[m] = "reply from " + m
	}

	status, body := env.do(t, jsonRequest(t, "/api/chat", map[string]any{
		"history": "model: Tell me about yourself\n",
		"message": "I build APIs",
		"context": "Backend",
		"apiKey":  "request-key",
	}))

	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"response":"reply from models/gemini-flash-latest"}`, string(body))
	assert.Equal(t, []string{"models/gemini-flash-latest"}, env.gemini.called)
}

func TestChatAllModelsFailIs500WithLastError(t *testing.T) {
	env := newTestEnv(t, "env-key")

	status, body := env.do(t, jsonRequest(t, "/api/chat", map[string]any{
		"history": "",
		"message": "hello",
		"context": "c",
	}))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "All models failed. Last error: models/gemini-2.5-flash-lite unavailable", detail(t, body))
	assert.Equal(t, config.DefaultChatModels, env.gemini.called)
}

func TestChatValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		loc     string
	}{
		{name: "missing message", payload: `{"history":"","context":"c"}`, loc: `["body","message"]`},
		{name: "missing history", payload: `{"message":"m","context":"c"}`, loc: `["body","history"]`},
		{name: "null history", payload: `{"history":null,"message":"m","context":"c"}`, loc: `["body","history"]`},
		{name: "numeric history", payload: `{"history":3,"message":"m","context":"c"}`, loc: `["body"]`},
		{name: "malformed json", payload: `{"history":`, loc: `["body"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "env-key")
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")

			status, body := env.do(t, req)

			assert.Equal(t, http.StatusUnprocessableEntity, status)
			assert.Contains(t, string(body), `"loc":`+tt.loc)
			assert.Empty(t, env.gemini.called)
		})
	}
}

func TestFeedbackReturnsMarkdownUnmodified(t *testing.T) {
	env := newTestEnv(t, "env-key")
	env.gemini.replies[config.DefaultFeedbackModel] = "# Score: 7/10\n\n- Clear answers\n"

	status, body := env.do(t, jsonRequest(t, "/api/feedback", map[string]any{
		"history": "model: Q1\nuser: A1\n",
		"context": "SRE",
	}))

	require.Equal(t, http.StatusOK, status)
	var resp models.FeedbackResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "# Score: 7/10\n\n- Clear answers\n", resp.Feedback)
	assert.Equal(t, []string{config.DefaultFeedbackModel}, env.gemini.called)
}

func TestFeedbackFailureIsSingleAttempt(t *testing.T) {
	env := newTestEnv(t, "env-key")
	env.gemini.replies["models/gemini-pro-latest"] = "never used"

	status, body := env.do(t, jsonRequest(t, "/api/feedback", map[string]any{
		"history": "t",
		"context": "c",
	}))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, detail(t, body), "models/gemini-flash-latest unavailable")
	assert.Equal(t, []string{config.DefaultFeedbackModel}, env.gemini.called)
}

func TestFeedbackWithoutCredentialIs401(t *testing.T) {
	env := newTestEnv(t, "")

	status, _ := env.do(t, jsonRequest(t, "/api/feedback", map[string]any{"history": "t", "context": "c"}))

	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestFeedbackRejectsStructuredHistory(t *testing.T) {
	env := newTestEnv(t, "env-key")

	status, _ := env.do(t, jsonRequest(t, "/api/feedback", map[string]any{
		"history": []map[string]string{{"role": "user"}},
		"context": "c",
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestListModels(t *testing.T) {
	env := newTestEnv(t, "")
	env.gemini.catalog = []models.ModelInfo{{Name: "models/gemini-flash-latest", DisplayName: "Gemini Flash", SupportedActions: []string{"generateContent"}}}

	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	req.Header.Set("X-API-Key", "header-key")
	status, body := env.do(t, req)

	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"models":[{"name":"models/gemini-flash-latest","display_name":"Gemini Flash","supported_actions":["generateContent"]}]}`, string(body))
}

func TestListModelsErrors(t *testing.T) {
	env := newTestEnv(t, "")
	status, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/api/models", nil))
	assert.Equal(t, http.StatusUnauthorized, status)

	env = newTestEnv(t, "env-key")
	env.gemini.listErr = errors.New("permission denied")
	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/models", nil))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "permission denied", detail(t, body))
}

func TestCORSPreflightAllowsAnyOrigin(t *testing.T) {
	env := newTestEnv(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-Custom-Header")

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Custom-Header", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestStaticFiles(t *testing.T) {
	cfg := &config.Config{
		Server:  config.ServerConfig{StaticDir: t.TempDir()},
		Storage: config.StorageConfig{MaxFileSize: 1 << 20},
	}
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Server.StaticDir, "app.js"), []byte("console.log('ok')"), 0644))

	interview := services.NewInterviewService(&fakeGemini{}, nil, "", "", nil)
	app := New(cfg, Handlers{
		Upload:    handlers.NewUploadHandler(&fakeParser{}),
		Interview: handlers.NewInterviewHandler(interview),
		System:    handlers.NewSystemHandler(&fakeGemini{}, interview),
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/static/app.js", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "console.log('ok')", string(body))
}

func TestResponsesCarryRequestID(t *testing.T) {
	env := newTestEnv(t, "")

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}
