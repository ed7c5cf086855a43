package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tienda-next/internal/cache"
	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/llm/deepseek"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/repository"
)

const chatbotFallbackReply = "No tengo esa informacion"

// chatbot sessions keep at most this many turns besides the system
// prompt, trimming oldest first.
const chatbotMaxTurns = 20

// ChatbotHealth is the health endpoint payload.
type ChatbotHealth struct {
	Enabled bool   `json:"enabled"`
	Model   string `json:"model,omitempty"`
}

// ChatbotService answers storefront questions with an LLM, grounding
// each session on a catalog snapshot. Context is per session, stored
// in Redis when available and in memory otherwise.
type ChatbotService struct {
	cfg         config.ChatbotConfig
	client      *deepseek.Client
	productRepo repository.ProductRepository

	mu       sync.Mutex
	sessions map[string][]deepseek.Message
}

// NewChatbotService creates a chatbot service. A missing or malformed
// API key leaves the service disabled rather than failing startup.
func NewChatbotService(cfg config.ChatbotConfig, productRepo repository.ProductRepository) *ChatbotService {
	s := &ChatbotService{
		cfg:         cfg,
		productRepo: productRepo,
		sessions:    make(map[string][]deepseek.Message),
	}
	if !cfg.Enabled {
		return s
	}
	client, err := deepseek.NewClient(deepseek.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Warnw("chatbot_client_init_failed", "error", err)
		return s
	}
	s.client = client
	return s
}

// Enabled reports whether chat requests can be served.
func (s *ChatbotService) Enabled() bool {
	return s != nil && s.client != nil
}

// Health reports the assistant status.
func (s *ChatbotService) Health() ChatbotHealth {
	health := ChatbotHealth{Enabled: s.Enabled()}
	if health.Enabled {
		health.Model = s.cfg.Model
	}
	return health
}

// Prime rebuilds the session's system context from the live catalog.
func (s *ChatbotService) Prime(ctx context.Context, sessionID string) error {
	if !s.Enabled() {
		return ErrChatbotDisabled
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrInvalidOrderItem
	}
	system, err := s.buildSystemMessage()
	if err != nil {
		return err
	}
	return s.storeSession(ctx, sessionID, []deepseek.Message{system})
}

// AppendContext attaches caller-supplied context (an order or product
// snapshot) to the session, on top of the catalog prompt.
func (s *ChatbotService) AppendContext(ctx context.Context, sessionID, extra string) error {
	if !s.Enabled() {
		return ErrChatbotDisabled
	}
	sessionID = strings.TrimSpace(sessionID)
	extra = strings.TrimSpace(extra)
	if sessionID == "" || extra == "" {
		return ErrInvalidOrderItem
	}
	history, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		system, err := s.buildSystemMessage()
		if err != nil {
			return err
		}
		history = []deepseek.Message{system}
	}
	history = append(history, deepseek.Message{Role: constants.ChatRoleSystem, Content: extra})
	return s.storeSession(ctx, sessionID, history)
}

// Clear drops the session's context.
func (s *ChatbotService) Clear(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrInvalidOrderItem
	}
	if cache.Enabled() {
		return cache.Del(ctx, chatbotSessionKey(sessionID))
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// Chat answers one user message within a session. The reply is passed
// through verbatim when the model returns a JSON object; otherwise it
// is wrapped as {"reply": ...}. An empty completion yields the fixed
// fallback answer.
func (s *ChatbotService) Chat(ctx context.Context, sessionID, message string) (json.RawMessage, error) {
	if !s.Enabled() {
		return nil, ErrChatbotDisabled
	}
	sessionID = strings.TrimSpace(sessionID)
	message = strings.TrimSpace(message)
	if sessionID == "" || message == "" {
		return nil, ErrInvalidOrderItem
	}

	history, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		system, err := s.buildSystemMessage()
		if err != nil {
			return nil, err
		}
		history = []deepseek.Message{system}
	}

	history = append(history, deepseek.Message{Role: constants.ChatRoleUser, Content: message})

	reply, err := s.client.Chat(ctx, history)
	if err != nil {
		return nil, err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = chatbotFallbackReply
	}

	history = append(history, deepseek.Message{Role: constants.ChatRoleAssistant, Content: reply})
	history = trimSession(history)
	if err := s.storeSession(ctx, sessionID, history); err != nil {
		logger.Warnw("chatbot_session_store_failed", "session_id", sessionID, "error", err)
	}

	if json.Valid([]byte(reply)) && strings.HasPrefix(reply, "{") {
		return json.RawMessage(reply), nil
	}
	out, err := json.Marshal(map[string]string{"reply": reply})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ChatbotService) buildSystemMessage() (deepseek.Message, error) {
	products, _, err := s.productRepo.List(repository.ProductListFilter{
		Page:       1,
		PageSize:   200,
		OnlyActive: true,
	})
	if err != nil {
		return deepseek.Message{}, err
	}

	var b strings.Builder
	b.WriteString("Eres el asistente de una tienda en linea. ")
	b.WriteString("Responde solo con informacion del catalogo siguiente. ")
	b.WriteString("Si no sabes la respuesta di exactamente: ")
	b.WriteString(chatbotFallbackReply)
	b.WriteString("\n\nCatalogo:\n")
	for _, product := range products {
		fmt.Fprintf(&b, "- [%s] %s | precio %s | stock %d\n",
			product.ModelRef, product.Name, product.Price.String(), product.Stock)
	}
	return deepseek.Message{Role: constants.ChatRoleSystem, Content: b.String()}, nil
}

func (s *ChatbotService) loadSession(ctx context.Context, sessionID string) ([]deepseek.Message, error) {
	if cache.Enabled() {
		var history []deepseek.Message
		found, err := cache.GetJSON(ctx, chatbotSessionKey(sessionID), &history)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, nil
		}
		return history, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sessionID], nil
}

func (s *ChatbotService) storeSession(ctx context.Context, sessionID string, history []deepseek.Message) error {
	if cache.Enabled() {
		return cache.SetJSON(ctx, chatbotSessionKey(sessionID), history, s.sessionTTL())
	}
	s.mu.Lock()
	s.sessions[sessionID] = history
	s.mu.Unlock()
	return nil
}

func (s *ChatbotService) sessionTTL() time.Duration {
	if s.cfg.SessionTTLMinutes > 0 {
		return time.Duration(s.cfg.SessionTTLMinutes) * time.Minute
	}
	return 2 * time.Hour
}

// trimSession keeps the system prompt plus the most recent turns.
func trimSession(history []deepseek.Message) []deepseek.Message {
	if len(history) <= chatbotMaxTurns+1 {
		return history
	}
	trimmed := make([]deepseek.Message, 0, chatbotMaxTurns+1)
	trimmed = append(trimmed, history[0])
	trimmed = append(trimmed, history[len(history)-chatbotMaxTurns:]...)
	return trimmed
}

func chatbotSessionKey(sessionID string) string {
	return "chatbot:session:" + sessionID
}
