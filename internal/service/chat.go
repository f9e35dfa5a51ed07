package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_model_session.go -package=mocks instructchat/internal/service ModelSession
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_history.go -package=mocks instructchat/internal/service History
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_controller.go -package=mocks -mock_names=ChatController=MockChatController instructchat/internal/service ChatController

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"instructchat/internal/contextutil"
	"instructchat/internal/metrics"
	"instructchat/internal/model"
)

// ModelSession generates replies. It is defined from the controller's perspective (consumer-first).
type ModelSession interface {
	// Available reports whether the session initialized successfully.
	Available() bool
	// Err returns the initialization failure, or nil.
	Err() error
	// Generate returns the model's reply to prompt.
	Generate(ctx context.Context, prompt string, maxNewTokens int) (string, error)
}

// History stores the ordered turns of one conversation.
type History interface {
	// Append adds turns at the end, all or none.
	Append(ctx context.Context, turns ...Turn) error
	// List returns every turn, oldest first.
	List(ctx context.Context) ([]Turn, error)
	// Clear removes every turn.
	Clear(ctx context.Context) error
}

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleError marks a failed generation. It takes the place of the assistant reply.
	RoleError Role = "error"
)

// Turn is one immutable entry in the chat history.
type Turn struct {
	ID        uuid.UUID
	Role      Role
	Text      string
	CreatedAt time.Time
}

// NewTurn creates a turn stamped with a fresh id and the current time.
func NewTurn(role Role, text string) Turn {
	return Turn{
		ID:        uuid.New(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

// ChatRequest represents a chat submission in the domain layer.
type ChatRequest struct {
	Message      string
	MaxNewTokens int
}

// ChatResponse holds the turns a submission appended, if any.
type ChatResponse struct {
	Turns []Turn
}

// ChatController owns the chat history and sequences one submission at a time.
type ChatController interface {
	// Submit appends the user turn and the reply (or error) turn.
	Submit(ctx context.Context, req ChatRequest) (ChatResponse, error)
	// Clear empties the history.
	Clear(ctx context.Context) error
	// History returns the turns oldest first.
	History(ctx context.Context) ([]Turn, error)
	// Available reports whether the model session can serve requests.
	Available() bool
	// Status returns nil when available, otherwise the reason it is not.
	Status() error
}

// chatController implements ChatController.
type chatController struct {
	session ModelSession
	history History

	// Held for the whole submission so turns from different requests never interleave.
	mu sync.Mutex
}

// NewChatController creates a new ChatController.
func NewChatController(session ModelSession, history History) ChatController {
	return &chatController{
		session: session,
		history: history,
	}
}

// Submit sends req.Message to the model session and records both sides of the exchange.
// Empty messages are ignored. A generation failure is recorded as a RoleError turn and
// is not returned as an error.
func (c *chatController) Submit(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Message) == "" {
		logger.DebugContext(ctx, "ignoring empty chat submission")
		return ChatResponse{}, nil
	}

	if err := c.Status(); err != nil {
		logger.WarnContext(ctx, "chat submission refused", "error", err)
		return ChatResponse{}, err
	}

	if req.MaxNewTokens < model.MinNewTokens || req.MaxNewTokens > model.MaxNewTokens {
		return ChatResponse{}, &ValidationError{
			Field:   "max_new_tokens",
			Message: fmt.Sprintf("must be between %d and %d", model.MinNewTokens, model.MaxNewTokens),
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	user := NewTurn(RoleUser, req.Message)

	var reply Turn
	text, err := c.session.Generate(ctx, req.Message, req.MaxNewTokens)
	if err != nil {
		logger.WarnContext(ctx, "generation failed; recording error turn", "error", err)
		reply = NewTurn(RoleError, err.Error())
	} else {
		reply = NewTurn(RoleAssistant, text)
	}

	if err := c.history.Append(ctx, user, reply); err != nil {
		logger.ErrorContext(ctx, "failed to append turns", "error", err)
		return ChatResponse{}, historyError(err, "failed to append turns")
	}
	metrics.HistoryTurns.Add(2)

	logger.InfoContext(ctx, "chat submission processed",
		"message_length", len(req.Message),
		"reply_length", len(reply.Text),
		"reply_role", string(reply.Role),
		"max_new_tokens", req.MaxNewTokens)

	return ChatResponse{Turns: []Turn{user, reply}}, nil
}

// Clear empties the history. The model session is untouched.
func (c *chatController) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.history.Clear(ctx); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to clear history", "error", err)
		return historyError(err, "failed to clear history")
	}
	metrics.HistoryTurns.Set(0)
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "chat history cleared")
	return nil
}

// History returns a snapshot of the turns, oldest first.
func (c *chatController) History(ctx context.Context) ([]Turn, error) {
	turns, err := c.history.List(ctx)
	if err != nil {
		return nil, historyError(err, "failed to list turns")
	}
	return turns, nil
}

// Available reports whether the session initialized successfully.
func (c *chatController) Available() bool {
	return c.session.Available()
}

// Status returns nil when the session is available, otherwise ErrModelUnavailable wrapping the cause.
func (c *chatController) Status() error {
	if c.session.Available() {
		return nil
	}
	if cause := c.session.Err(); cause != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, cause)
	}
	return ErrModelUnavailable
}
