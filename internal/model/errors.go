package model

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned by Generate when the session failed to initialize.
var ErrUnavailable = errors.New("model session unavailable")

// Generation stages reported in GenerationError.
const (
	StageTokenize = "tokenize"
	StageGenerate = "generate"
	StageDecode   = "decode"
)

// GenerationError wraps a failure in one stage of a single generation request.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed during %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
