package public

import (
	"context"
	"errors"
	"strings"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
	Context   string `json:"context"`
}

type ChatSessionRequest struct {
	SessionID string `json:"session_id"`
	Context   string `json:"context"`
}

// ChatbotHealth reports whether the assistant is configured.
func (h *Handler) ChatbotHealth(c *gin.Context) {
	response.Success(c, h.ChatbotService.Health())
}

// ChatbotPrime preloads the catalog context for a session.
func (h *Handler) ChatbotPrime(c *gin.Context) {
	var req ChatSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}
	sessionID := chatSessionID(c, req.SessionID)
	if err := h.ChatbotService.Prime(c.Request.Context(), sessionID); err != nil {
		h.respondChatbotError(c, err)
		return
	}
	if strings.TrimSpace(req.Context) != "" {
		if err := h.ChatbotService.AppendContext(c.Request.Context(), sessionID, req.Context); err != nil {
			h.respondChatbotError(c, err)
			return
		}
	}
	response.Success(c, nil)
}

// ChatbotClear drops a session's conversation history.
func (h *Handler) ChatbotClear(c *gin.Context) {
	var req ChatSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}
	if err := h.ChatbotService.Clear(c.Request.Context(), chatSessionID(c, req.SessionID)); err != nil {
		h.respondChatbotError(c, err)
		return
	}
	response.Success(c, nil)
}

// Chat forwards one user message and returns the assistant reply.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}
	sessionID := chatSessionID(c, req.SessionID)
	if strings.TrimSpace(req.Context) != "" {
		if err := h.ChatbotService.AppendContext(c.Request.Context(), sessionID, req.Context); err != nil {
			h.respondChatbotError(c, err)
			return
		}
	}
	reply, err := h.ChatbotService.Chat(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		h.respondChatbotError(c, err)
		return
	}
	response.Success(c, reply)
}

func (h *Handler) respondChatbotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(c.Request.Context().Err(), context.Canceled):
		response.Error(c, response.CodeClientClosedRequest, "client_closed_request")
	case errors.Is(err, service.ErrChatbotDisabled):
		response.Error(c, response.CodeBadRequest, service.ErrChatbotDisabled.Error())
	default:
		respondError(c, response.CodeInternal, "el asistente no esta disponible", err)
	}
}

// chatSessionID falls back to the caller identity when the client
// does not supply an explicit session id.
func chatSessionID(c *gin.Context, supplied string) string {
	if s := strings.TrimSpace(supplied); s != "" {
		return s
	}
	if id := c.GetHeader(customerIDHeader); id != "" {
		return "cliente:" + id
	}
	return c.ClientIP()
}
