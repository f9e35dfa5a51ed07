package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ModelLoader loads models into llama.cpp server via the /models/load endpoint.
type ModelLoader struct {
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
	loadTimeout  time.Duration
}

// NewModelLoader creates a new model loader that waits up to loadTimeout for a model to load.
func NewModelLoader(baseURL string, loadTimeout time.Duration) *ModelLoader {
	return &ModelLoader{
		baseURL:      baseURL,
		client:       newHTTPClient(),
		pollInterval: time.Second,
		loadTimeout:  loadTimeout,
	}
}

// LoadModelRequest represents the request payload for loading a model.
type LoadModelRequest struct {
	Model     string   `json:"model"`
	ExtraArgs []string `json:"extra_args,omitempty"`
}

// LoadModelResponse represents the response from the load model endpoint.
type LoadModelResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ModelStatus represents the status of a model from the /models endpoint.
type ModelStatus struct {
	ID      string `json:"id"`
	InCache bool   `json:"in_cache"`
	Status  struct {
		Value    string `json:"value"`
		ExitCode *int   `json:"exit_code,omitempty"`
		Failed   *bool  `json:"failed,omitempty"`
	} `json:"status"`
}

// ModelsResponse represents the response from the /models endpoint.
type ModelsResponse struct {
	Data []ModelStatus `json:"data"`
}

// IsModelLoaded checks if a model is already loaded (in cache) in the llama.cpp server.
func (ml *ModelLoader) IsModelLoaded(ctx context.Context, modelName string) (bool, error) {
	status, err := ml.status(ctx, modelName)
	if err != nil {
		return false, err
	}
	return status != nil && status.InCache, nil
}

// LoadModel loads a model into the llama.cpp server with optional extra arguments.
// It returns early if the model is already cached, and otherwise polls /models
// until the model is in cache, reports failure, or the load timeout elapses.
func (ml *ModelLoader) LoadModel(ctx context.Context, modelName string, extraArgs []string) error {
	// A failed status check is not fatal; the load request below reports real errors.
	if loaded, err := ml.IsModelLoaded(ctx, modelName); err == nil && loaded {
		return nil
	}

	var loadResp LoadModelResponse
	payload := LoadModelRequest{
		Model:     modelName,
		ExtraArgs: extraArgs,
	}
	client := &Client{BaseURL: ml.baseURL, client: ml.client}
	if err := client.do(ctx, http.MethodPost, "/models/load", payload, &loadResp); err != nil {
		return err
	}

	if !loadResp.Success {
		return fmt.Errorf("model load failed: %s", loadResp.Error)
	}

	// /models/load returns before the model is resident, so poll until it is.
	waitCtx, cancel := context.WithTimeout(ctx, ml.loadTimeout)
	defer cancel()

	ticker := time.NewTicker(ml.pollInterval)
	defer ticker.Stop()

	for {
		status, err := ml.status(waitCtx, modelName)
		if err == nil && status != nil {
			if status.InCache {
				return nil
			}
			if status.Status.Failed != nil && *status.Status.Failed {
				exitCode := 0
				if status.Status.ExitCode != nil {
					exitCode = *status.Status.ExitCode
				}
				return fmt.Errorf("model load failed with exit code %d", exitCode)
			}
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("model did not load within %s", ml.loadTimeout)
		case <-ticker.C:
		}
	}
}

// status returns the /models entry for modelName, or nil if the server does not list it.
func (ml *ModelLoader) status(ctx context.Context, modelName string) (*ModelStatus, error) {
	modelsURL := fmt.Sprintf("%s/models", ml.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modelsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %w", err)
	}

	resp, err := ml.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check model status: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var modelsResp ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("failed to decode models response: %w", err)
	}

	for i := range modelsResp.Data {
		if modelsResp.Data[i].ID == modelName {
			return &modelsResp.Data[i], nil
		}
	}
	return nil, nil
}
