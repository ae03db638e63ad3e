package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"

	"hookgenie-api/internal/application/genie"
	"hookgenie-api/internal/application/history"
	"hookgenie-api/internal/application/quota"
	"hookgenie-api/internal/config"
	"hookgenie-api/internal/domain/entity"
	"hookgenie-api/internal/infrastructure/persistence/memory"
	"hookgenie-api/internal/interfaces/http/handler"
	"hookgenie-api/internal/interfaces/http/middleware"
	"hookgenie-api/internal/workflow/prompt"
)

type echoModel struct{}

func (echoModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	p := input[len(input)-1].Content
	switch {
	case strings.HasPrefix(p, "Rewrite this script"):
		return schema.AssistantMessage("polished", nil), nil
	case strings.HasPrefix(p, "Take this script"), strings.HasPrefix(p, "Trim this content"):
		return schema.AssistantMessage(`{"formatted":"F","hashtags":["#a","#b","#c","#d","#e"]}`, nil), nil
	default:
		return schema.AssistantMessage(`{"hooks":["h1","h2","h3"]}`, nil), nil
	}
}

func (echoModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

type stubFactory struct{ credential bool }

func (f stubFactory) Get(context.Context, string) (model.BaseChatModel, error) { return echoModel{}, nil }
func (f stubFactory) HasCredential(string) bool                                { return f.credential }

func newTestEngine(t *testing.T, credential bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.LLM.DefaultProvider = "stub"

	catalog, err := prompt.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	factory := stubFactory{credential: credential}
	governor := quota.NewUsageGovernor(memory.NewUsageCounterRepository(), cfg)
	store := history.NewStore(memory.NewHistoryRepository(), cfg)
	svc := genie.NewService(prompt.NewBuilder(prompt.NewRegistry(), catalog), genie.NewGateway(factory, cfg), governor, cfg)

	r := New(cfg, &Handlers{
		Health:  handler.NewHealthHandler(cfg, nil, nil, factory),
		Genie:   handler.NewGenieHandler(svc, governor, store, catalog),
		History: handler.NewHistoryHandler(store),
	}, nil, nil)
	return r.Engine()
}

func do(t *testing.T, e *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionIDHeader, "session-1")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Code int `json:"code"`
	Data T   `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return env.Data
}

func TestGenerateRecordsHistory(t *testing.T) {
	e := newTestEngine(t, true)

	w := do(t, e, http.MethodPost, "/v1/genie/generate", map[string]string{"script": "my draft", "platform": "TikTok"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	gen := decode[struct {
		Hooks     []string `json:"hooks"`
		Polished  string   `json:"polished_script"`
		HistoryID string   `json:"history_id"`
	}](t, w)
	if strings.Join(gen.Hooks, ",") != "h1,h2,h3" || gen.Polished != "polished" || gen.HistoryID == "" {
		t.Fatalf("unexpected response: %+v", gen)
	}

	w = do(t, e, http.MethodGet, "/v1/genie/history", nil)
	list := decode[struct {
		Items []struct {
			ID       string `json:"id"`
			Script   string `json:"script"`
			Platform string `json:"platform"`
			TimeAgo  string `json:"time_ago"`
		} `json:"items"`
	}](t, w)
	if len(list.Items) != 1 || list.Items[0].ID != gen.HistoryID || list.Items[0].TimeAgo != "Just now" || list.Items[0].Platform != "TikTok" {
		t.Fatalf("history = %+v", list.Items)
	}

	w = do(t, e, http.MethodGet, "/v1/genie/history/"+gen.HistoryID+"/reload", nil)
	reload := decode[struct {
		Script string                  `json:"script"`
		Result entity.GenerationResult `json:"result"`
	}](t, w)
	if reload.Script != "my draft" || reload.Result.PolishedScript != history.ReloadPolishedScript {
		t.Errorf("reload = %+v", reload)
	}

	if w = do(t, e, http.MethodDelete, "/v1/genie/history/"+gen.HistoryID, nil); w.Code != http.StatusNoContent {
		t.Errorf("remove status = %d", w.Code)
	}
	if w = do(t, e, http.MethodDelete, "/v1/genie/history/"+gen.HistoryID, nil); w.Code != http.StatusNotFound {
		t.Errorf("second remove status = %d", w.Code)
	}

	w = do(t, e, http.MethodGet, "/v1/genie/usage", nil)
	usage := decode[quota.Snapshot](t, w)
	if usage.Count != 1 || usage.Remaining != quota.DefaultNominalLimit-1 {
		t.Errorf("usage = %+v", usage)
	}
}

func TestGenerateWithoutCredential(t *testing.T) {
	e := newTestEngine(t, false)

	w := do(t, e, http.MethodPost, "/v1/genie/generate", map[string]string{"script": "draft"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	gen := decode[entity.GenerationResult](t, w)
	if gen.Degraded != entity.DegradedCredentialMissing {
		t.Errorf("degraded = %q", gen.Degraded)
	}

	w = do(t, e, http.MethodGet, "/ready", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"degraded"`) {
		t.Errorf("ready = %d %s", w.Code, w.Body.String())
	}
}

func TestGenerateValidation(t *testing.T) {
	e := newTestEngine(t, true)

	if w := do(t, e, http.MethodPost, "/v1/genie/generate", map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("missing script status = %d", w.Code)
	}
	if w := do(t, e, http.MethodPost, "/v1/genie/generate", map[string]string{"script": "   "}); w.Code != http.StatusBadRequest {
		t.Errorf("blank script status = %d", w.Code)
	}
	if w := do(t, e, http.MethodPost, "/v1/genie/trim", map[string]string{"content": "x", "duration": "45s"}); w.Code != http.StatusBadRequest {
		t.Errorf("bad duration status = %d", w.Code)
	}
}

func TestTrimExportAndStyles(t *testing.T) {
	e := newTestEngine(t, true)

	w := do(t, e, http.MethodPost, "/v1/genie/trim", map[string]string{"content": "long content", "duration": "15s"})
	trimmed := decode[entity.PlatformContent](t, w)
	if trimmed.Formatted != "F" || len(trimmed.Hashtags) != 5 {
		t.Errorf("trim = %+v", trimmed)
	}

	w = do(t, e, http.MethodPost, "/v1/genie/export", map[string]any{
		"hooks":           []string{"a"},
		"polished_script": "One. Two",
		"hashtags":        []string{"#x"},
	})
	export := decode[struct {
		Caption      string `json:"caption"`
		Teleprompter string `json:"teleprompter"`
	}](t, w)
	if export.Teleprompter != "ONE.\n\nTWO" || !strings.HasPrefix(export.Caption, "🔥 One") {
		t.Errorf("export = %+v", export)
	}

	w = do(t, e, http.MethodGet, "/v1/genie/styles", nil)
	styles := decode[struct {
		Styles []string `json:"styles"`
	}](t, w)
	if len(styles.Styles) != 4 {
		t.Errorf("styles = %v", styles.Styles)
	}
}

func TestSessionIDEchoed(t *testing.T) {
	e := newTestEngine(t, true)
	req := httptest.NewRequest(http.MethodGet, "/v1/genie/usage", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Header().Get(middleware.SessionIDHeader) == "" {
		t.Error("session id header missing")
	}
}
