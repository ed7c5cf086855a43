package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/llm/deepseek"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeCompletionServer echoes a canned reply and records the message
// history it received on each call.
type fakeCompletionServer struct {
	srv   *httptest.Server
	reply string
	calls [][]deepseek.Message
}

func newFakeCompletionServer(t *testing.T, reply string) *fakeCompletionServer {
	t.Helper()
	f := &fakeCompletionServer{reply: reply}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []deepseek.Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request failed: %v", err)
		}
		f.calls = append(f.calls, req.Messages)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": f.reply}},
			},
		})
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func setupChatbotServiceTest(t *testing.T, baseURL string) (*ChatbotService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:chatbot_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	db.Create(&models.Product{
		ModelRef: "LP-4310",
		Name:     "Portatil UltraSlim 14",
		Price:    models.NewMoneyFromDecimal(decimal.RequireFromString("899.99")),
		Stock:    25,
		IsActive: true,
	})
	cfg := config.ChatbotConfig{
		Enabled: true,
		APIKey:  "sk-test",
		BaseURL: baseURL,
		Model:   "deepseek-chat",
	}
	return NewChatbotService(cfg, repository.NewProductRepository(db)), db
}

func TestChatbotDisabledWithoutKey(t *testing.T) {
	svc := NewChatbotService(config.ChatbotConfig{Enabled: true, APIKey: "mal-formada"}, nil)
	if svc.Enabled() {
		t.Fatalf("malformed key should leave the assistant disabled")
	}
	if health := svc.Health(); health.Enabled || health.Model != "" {
		t.Fatalf("unexpected health: %+v", health)
	}
	if _, err := svc.Chat(context.Background(), "s1", "hola"); err != ErrChatbotDisabled {
		t.Fatalf("want ErrChatbotDisabled got %v", err)
	}
	if err := svc.Prime(context.Background(), "s1"); err != ErrChatbotDisabled {
		t.Fatalf("want ErrChatbotDisabled got %v", err)
	}
}

func TestChatGroundsSessionOnCatalog(t *testing.T) {
	fake := newFakeCompletionServer(t, "El portatil cuesta 899.99.")
	svc, _ := setupChatbotServiceTest(t, fake.srv.URL)

	reply, err := svc.Chat(context.Background(), "sesion-1", "cuanto cuesta el portatil?")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	var payload struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(reply, &payload); err != nil {
		t.Fatalf("reply is not the expected envelope: %v", err)
	}
	if payload.Reply != "El portatil cuesta 899.99." {
		t.Fatalf("unexpected reply %q", payload.Reply)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("want 1 upstream call got %d", len(fake.calls))
	}
	sent := fake.calls[0]
	if len(sent) != 2 || sent[0].Role != "system" {
		t.Fatalf("first call should carry system prompt plus user turn, got %+v", sent)
	}
	if !strings.Contains(sent[0].Content, "LP-4310") || !strings.Contains(sent[0].Content, "899.99") {
		t.Fatalf("system prompt should include the catalog, got %q", sent[0].Content)
	}
}

func TestChatKeepsSessionHistory(t *testing.T) {
	fake := newFakeCompletionServer(t, "claro")
	svc, _ := setupChatbotServiceTest(t, fake.srv.URL)

	if _, err := svc.Chat(context.Background(), "sesion-2", "primera"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if _, err := svc.Chat(context.Background(), "sesion-2", "segunda"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	// second call carries system + first turn pair + new user message
	sent := fake.calls[1]
	if len(sent) != 4 {
		t.Fatalf("second call want 4 messages got %d", len(sent))
	}
	if sent[1].Content != "primera" || sent[2].Content != "claro" || sent[3].Content != "segunda" {
		t.Fatalf("unexpected history %+v", sent)
	}

	// sessions do not leak into each other
	if _, err := svc.Chat(context.Background(), "sesion-otra", "hola"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if len(fake.calls[2]) != 2 {
		t.Fatalf("new session should start fresh, got %d messages", len(fake.calls[2]))
	}
}

func TestAppendContextGroundsNextChat(t *testing.T) {
	fake := newFakeCompletionServer(t, "tu orden ya fue enviada")
	svc, _ := setupChatbotServiceTest(t, fake.srv.URL)

	snapshot := "Orden ORD-2026-01-15#00000042: enviada, tracking TRK-9"
	if err := svc.AppendContext(context.Background(), "sesion-ctx", snapshot); err != nil {
		t.Fatalf("append context failed: %v", err)
	}
	if _, err := svc.Chat(context.Background(), "sesion-ctx", "donde esta mi orden?"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	sent := fake.calls[0]
	if len(sent) != 3 {
		t.Fatalf("want catalog prompt, snapshot and user turn, got %d messages", len(sent))
	}
	if sent[1].Role != "system" || !strings.Contains(sent[1].Content, "TRK-9") {
		t.Fatalf("snapshot should ride as a system message, got %+v", sent[1])
	}

	if err := svc.AppendContext(context.Background(), "sesion-ctx", "   "); err == nil {
		t.Fatalf("blank context should fail")
	}
}

func TestChatPassesThroughJSONReplies(t *testing.T) {
	fake := newFakeCompletionServer(t, `{"productos":[{"model_ref":"LP-4310"}]}`)
	svc, _ := setupChatbotServiceTest(t, fake.srv.URL)

	reply, err := svc.Chat(context.Background(), "sesion-3", "lista el catalogo")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if string(reply) != `{"productos":[{"model_ref":"LP-4310"}]}` {
		t.Fatalf("JSON replies should pass through verbatim, got %s", reply)
	}
}

func TestChatEmptyReplyFallsBack(t *testing.T) {
	fake := newFakeCompletionServer(t, "   ")
	svc, _ := setupChatbotServiceTest(t, fake.srv.URL)

	reply, err := svc.Chat(context.Background(), "sesion-4", "hola")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	var payload struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(reply, &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Reply != chatbotFallbackReply {
		t.Fatalf("empty completion want fallback got %q", payload.Reply)
	}
}

func TestChatValidatesInputAndClear(t *testing.T) {
	fake := newFakeCompletionServer(t, "hola")
	svc, _ := setupChatbotServiceTest(t, fake.srv.URL)

	if _, err := svc.Chat(context.Background(), "", "hola"); err == nil {
		t.Fatalf("blank session id should fail")
	}
	if _, err := svc.Chat(context.Background(), "sesion-5", "   "); err == nil {
		t.Fatalf("blank message should fail")
	}

	if _, err := svc.Chat(context.Background(), "sesion-5", "hola"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if err := svc.Clear(context.Background(), "sesion-5"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := svc.Chat(context.Background(), "sesion-5", "otra vez"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	// after clear the session starts from the system prompt again
	last := fake.calls[len(fake.calls)-1]
	if len(last) != 2 {
		t.Fatalf("cleared session should start fresh, got %d messages", len(last))
	}
}
