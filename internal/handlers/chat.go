package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"instructchat/internal/contextutil"
	"instructchat/internal/render"
	"instructchat/internal/service"
)

// ChatHandler handles the JSON chat API.
type ChatHandler struct {
	controller          service.ChatController
	defaultMaxNewTokens int
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(controller service.ChatController, defaultMaxNewTokens int) *ChatHandler {
	return &ChatHandler{
		controller:          controller,
		defaultMaxNewTokens: defaultMaxNewTokens,
	}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Message string `json:"message"`
	// MaxNewTokens defaults to the configured value when omitted.
	MaxNewTokens *int `json:"max_new_tokens,omitempty"`
}

// TurnResponse is one chat turn as returned by the API.
type TurnResponse struct {
	ID        string        `json:"id"`
	Role      string        `json:"role"`
	Text      string        `json:"text"`
	HTML      template.HTML `json:"html"`
	CreatedAt string        `json:"created_at"`
}

// ChatResponse represents the HTTP response payload for chat and history.
type ChatResponse struct {
	Turns []TurnResponse `json:"turns"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles POST /api/chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	maxNewTokens := h.defaultMaxNewTokens
	if req.MaxNewTokens != nil {
		maxNewTokens = *req.MaxNewTokens
	}

	svcResp, err := h.controller.Submit(ctx, service.ChatRequest{
		Message:      req.Message,
		MaxNewTokens: maxNewTokens,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process chat request")
		return
	}

	writeJSON(w, ctx, http.StatusOK, newChatResponse(svcResp.Turns))
}

// History handles GET and DELETE /api/history.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		turns, err := h.controller.History(ctx)
		if err != nil {
			handleServiceError(w, ctx, err, "Failed to load history")
			return
		}
		writeJSON(w, ctx, http.StatusOK, newChatResponse(turns))
	case http.MethodDelete:
		if err := h.controller.Clear(ctx); err != nil {
			handleServiceError(w, ctx, err, "Failed to clear history")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func newChatResponse(turns []service.Turn) ChatResponse {
	resp := ChatResponse{Turns: make([]TurnResponse, 0, len(turns))}
	for _, t := range turns {
		resp.Turns = append(resp.Turns, TurnResponse{
			ID:        t.ID.String(),
			Role:      string(t.Role),
			Text:      t.Text,
			HTML:      render.Turn(t).HTML,
			CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return resp
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if errors.Is(err, service.ErrModelUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "Model unavailable")
		return
	}

	if errors.Is(err, service.ErrHistory) {
		writeError(w, http.StatusInternalServerError, "History store error")
		return
	}

	writeError(w, http.StatusInternalServerError, defaultMsg)
}

func writeJSON(w http.ResponseWriter, ctx context.Context, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
