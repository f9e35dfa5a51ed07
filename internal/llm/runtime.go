package llm

import "time"

// Runtime is the llama.cpp server seen as one model backend: loading plus tokenizer and completion calls.
type Runtime struct {
	*Client
	*ModelLoader
}

// NewRuntime creates a Runtime for the server at baseURL.
func NewRuntime(baseURL, apiKey, model string, timeout, loadTimeout time.Duration) *Runtime {
	return &Runtime{
		Client:      NewClient(baseURL, apiKey, model, timeout),
		ModelLoader: NewModelLoader(baseURL, loadTimeout),
	}
}
