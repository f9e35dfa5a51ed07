package model

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_backend.go -package=mocks instructchat/internal/model Backend

import (
	"context"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"instructchat/internal/contextutil"
	"instructchat/internal/device"
	"instructchat/internal/llm"
	"instructchat/internal/metrics"
)

// Backend is the model runtime the session drives.
type Backend interface {
	LoadModel(ctx context.Context, modelName string, extraArgs []string) error
	Props(ctx context.Context) (llm.Props, error)
	Tokenize(ctx context.Context, text string, parseSpecial bool) ([]int, error)
	Detokenize(ctx context.Context, tokens []int) (string, error)
	Complete(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error)
}

// DeviceResolver picks the compute device for a DEVICE mode.
type DeviceResolver interface {
	Resolve(ctx context.Context, mode string) device.Info
}

// Options configures NewSession.
type Options struct {
	ModelID        string
	DeviceMode     string
	GPULayers      int
	MaxInputTokens int
}

// Session owns the loaded model and its tokenizer for the process lifetime.
// It is read-only after NewSession returns.
type Session struct {
	backend   Backend
	tokenizer *Tokenizer
	device    device.Info
	modelID   string
	initErr   error

	// The runtime is not safe for concurrent generation on one model.
	sem *semaphore.Weighted
}

// FormatPrompt wraps a user prompt in the instruction template.
func FormatPrompt(prompt string) string {
	return "Instruct: " + prompt + "\nOutput:"
}

// NewSession places and loads the model, then reads its tokenizer configuration.
// It never fails: on error the session is returned unavailable and Err reports why.
func NewSession(ctx context.Context, backend Backend, resolver DeviceResolver, opts Options) *Session {
	logger := contextutil.LoggerFromContext(ctx)

	if opts.MaxInputTokens <= 0 {
		opts.MaxInputTokens = MaxInputTokens
	}

	s := &Session{
		backend: backend,
		modelID: opts.ModelID,
		sem:     semaphore.NewWeighted(1),
	}

	s.device = resolver.Resolve(ctx, opts.DeviceMode)
	logger.InfoContext(ctx, "compute device selected", "device", s.device.String(), "mode", opts.DeviceMode)

	if err := backend.LoadModel(ctx, opts.ModelID, s.device.LoadArgs(opts.GPULayers)); err != nil {
		s.initErr = err
		logger.ErrorContext(ctx, "failed to load model", "model", opts.ModelID, "error", err)
		metrics.SetSessionAvailable(false)
		return s
	}

	tok, err := loadTokenizer(ctx, backend, opts.MaxInputTokens)
	if err != nil {
		s.initErr = err
		logger.ErrorContext(ctx, "failed to load tokenizer", "model", opts.ModelID, "error", err)
		metrics.SetSessionAvailable(false)
		return s
	}
	s.tokenizer = tok

	if tok.PadToken == tok.EOSToken {
		logger.DebugContext(ctx, "pad token aliased to eos", "eos", tok.EOSToken, "id", tok.EOSID)
	}
	logger.InfoContext(ctx, "model session ready", "model", opts.ModelID, "device", s.device.Kind.String())
	metrics.SetSessionAvailable(true)
	return s
}

// Available reports whether the session can serve generation requests.
func (s *Session) Available() bool {
	return s.initErr == nil && s.tokenizer != nil
}

// Err returns the initialization failure, or nil.
func (s *Session) Err() error {
	if s.initErr == nil && s.tokenizer == nil {
		return ErrUnavailable
	}
	return s.initErr
}

// Device returns the device the model was placed on.
func (s *Session) Device() device.Info {
	return s.device
}

// ModelID returns the identifier of the loaded model.
func (s *Session) ModelID() string {
	return s.modelID
}

// Generate formats prompt, generates up to maxNewTokens new tokens and returns only the
// decoded continuation, trimmed of surrounding whitespace.
func (s *Session) Generate(ctx context.Context, prompt string, maxNewTokens int) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}

	params := NewGenerationParams(maxNewTokens)
	if err := params.Validate(); err != nil {
		metrics.RecordGeneration(metrics.OutcomeRejected, 0, 0, 0)
		return "", err
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.sem.Release(1)

	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()

	reply, promptTokens, newTokens, err := s.generate(ctx, FormatPrompt(prompt), params)
	if err != nil {
		metrics.RecordGeneration(metrics.OutcomeError, time.Since(start), promptTokens, 0)
		logger.ErrorContext(ctx, "generation failed", "error", err)
		return "", err
	}

	metrics.RecordGeneration(metrics.OutcomeOK, time.Since(start), promptTokens, newTokens)
	logger.DebugContext(ctx, "generation complete",
		"prompt_tokens", promptTokens,
		"new_tokens", newTokens,
		"duration", time.Since(start))
	return reply, nil
}

func (s *Session) generate(ctx context.Context, formatted string, params GenerationParams) (string, int, int, error) {
	batch, err := s.tokenizer.Encode(ctx, s.backend, []string{formatted})
	if err != nil {
		return "", 0, 0, &GenerationError{Stage: StageTokenize, Err: err}
	}
	input := batch.Unpadded(0)

	resp, err := s.backend.Complete(ctx, llm.CompletionRequest{
		Prompt:        input,
		NPredict:      params.MaxNewTokens,
		Temperature:   params.Temperature,
		TopP:          params.TopP,
		RepeatPenalty: params.RepetitionPenalty,
		ReturnTokens:  true,
	})
	if err != nil {
		return "", len(input), 0, &GenerationError{Stage: StageGenerate, Err: err}
	}

	newTokens := continuation(input, resp.Tokens)

	var text string
	if len(newTokens) > 0 {
		text, err = s.backend.Detokenize(ctx, s.tokenizer.SkipSpecial(newTokens))
		if err != nil {
			return "", len(input), 0, &GenerationError{Stage: StageDecode, Err: err}
		}
	} else {
		// Runtimes that do not return token ids send the text only.
		text = strings.TrimPrefix(resp.Content, formatted)
		text = strings.ReplaceAll(text, s.tokenizer.EOSToken, "")
	}

	return strings.TrimSpace(CleanUpTokenizationSpaces(text)), len(input), len(newTokens), nil
}

// continuation returns the ids generated after the input span. Some runtimes echo
// the prompt ids ahead of the output; those are cut off.
func continuation(input, output []int) []int {
	if len(output) >= len(input) && len(input) > 0 && slices.Equal(output[:len(input)], input) {
		return output[len(input):]
	}
	return output
}
