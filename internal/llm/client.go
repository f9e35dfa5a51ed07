package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a client for the llama.cpp server tokenizer and completion endpoints.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewClient creates a new LLM client. A zero timeout leaves generation unbounded.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	c := newHTTPClient()
	c.Timeout = timeout
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  c,
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: http.DefaultTransport,
	}
}

// Props fetches server properties, including the special tokens of the loaded model.
func (c *Client) Props(ctx context.Context) (Props, error) {
	var props Props
	path := "/props"
	if c.Model != "" {
		path += "?" + url.Values{"model": {c.Model}}.Encode()
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &props); err != nil {
		return Props{}, err
	}
	return props, nil
}

// Tokenize converts text into token ids. With parseSpecial, special token text such as
// "<|endoftext|>" maps to its id instead of being split into pieces.
func (c *Client) Tokenize(ctx context.Context, text string, parseSpecial bool) ([]int, error) {
	var resp TokenizeResponse
	req := TokenizeRequest{
		Model:        c.Model,
		Content:      text,
		AddSpecial:   false,
		ParseSpecial: parseSpecial,
	}
	if err := c.do(ctx, http.MethodPost, "/tokenize", req, &resp); err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

// Detokenize converts token ids back into text.
func (c *Client) Detokenize(ctx context.Context, tokens []int) (string, error) {
	if len(tokens) == 0 {
		return "", nil
	}
	var resp DetokenizeResponse
	if err := c.do(ctx, http.MethodPost, "/detokenize", DetokenizeRequest{Model: c.Model, Tokens: tokens}, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Complete runs a single non-streaming generation.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	req.Stream = false
	if req.Model == "" {
		req.Model = c.Model
	}
	var resp CompletionResponse
	if err := c.do(ctx, http.MethodPost, "/completion", req, &resp); err != nil {
		return CompletionResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	endpoint := fmt.Sprintf("%s%s", c.BaseURL, path)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
