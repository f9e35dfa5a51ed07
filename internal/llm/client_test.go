package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8081", "test-key", "test-model", 30*time.Second)
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.BaseURL != "http://localhost:8081" {
		t.Errorf("NewClient() BaseURL = %v, want http://localhost:8081", client.BaseURL)
	}
	if client.APIKey != "test-key" {
		t.Errorf("NewClient() APIKey = %v, want test-key", client.APIKey)
	}
	if client.Model != "test-model" {
		t.Errorf("NewClient() Model = %v, want test-model", client.Model)
	}
	if client.client == nil {
		t.Fatal("NewClient() client should not be nil")
	}
	if client.client.Timeout != 30*time.Second {
		t.Errorf("NewClient() timeout = %v, want 30s", client.client.Timeout)
	}
}

func TestClient_Tokenize(t *testing.T) {
	tests := []struct {
		name       string
		serverResp func(w http.ResponseWriter, r *http.Request)
		want       []int
		wantErr    bool
	}{
		{
			name: "successful tokenize",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/tokenize" {
					t.Errorf("expected /tokenize, got %s", r.URL.Path)
				}
				if !strings.Contains(r.Header.Get("Authorization"), "Bearer") {
					t.Error("missing Authorization header")
				}
				var req TokenizeRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("decode request: %v", err)
				}
				if req.Content != "Instruct: hi\nOutput:" {
					t.Errorf("content = %q", req.Content)
				}
				if req.AddSpecial {
					t.Error("add_special should be false")
				}
				_ = json.NewEncoder(w).Encode(TokenizeResponse{Tokens: []int{1, 2, 3}})
			},
			want: []int{1, 2, 3},
		},
		{
			name: "server error",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("boom"))
			},
			wantErr: true,
		},
		{
			name: "malformed body",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := NewClient(server.URL, "test-key", "test-model", 0)
			got, err := client.Tokenize(context.Background(), "Instruct: hi\nOutput:", false)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Tokenize() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Tokenize() unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tokenize()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestClient_Detokenize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detokenize" {
			t.Errorf("expected /detokenize, got %s", r.URL.Path)
		}
		var req DetokenizeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Tokens) != 2 {
			t.Errorf("tokens = %v", req.Tokens)
		}
		_ = json.NewEncoder(w).Encode(DetokenizeResponse{Content: " 4."})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", 0)

	got, err := client.Detokenize(context.Background(), []int{604, 13})
	if err != nil {
		t.Fatalf("Detokenize() error = %v", err)
	}
	if got != " 4." {
		t.Errorf("Detokenize() = %q, want %q", got, " 4.")
	}

	empty, err := client.Detokenize(context.Background(), nil)
	if err != nil || empty != "" {
		t.Errorf("Detokenize(nil) = %q, %v; want empty, nil", empty, err)
	}
}

func TestClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/completion" {
			t.Errorf("expected /completion, got %s", r.URL.Path)
		}
		var req CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("stream must be false")
		}
		if req.NPredict != 20 || req.Temperature != 0.7 || req.TopP != 0.9 || req.RepeatPenalty != 1.2 {
			t.Errorf("unexpected sampling params: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(CompletionResponse{
			Content:         " 4.",
			Tokens:          []int{604, 13},
			TokensPredicted: 2,
			StoppedEOS:      true,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", 0)
	resp, err := client.Complete(context.Background(), CompletionRequest{
		Prompt:        []int{1, 2},
		NPredict:      20,
		Temperature:   0.7,
		TopP:          0.9,
		RepeatPenalty: 1.2,
		Stream:        true,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != " 4." || len(resp.Tokens) != 2 || !resp.StoppedEOS {
		t.Errorf("Complete() = %+v", resp)
	}
}

func TestClient_Props(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"model_path":"phi-1_5.gguf","bos_token":"<|endoftext|>","eos_token":"<|endoftext|>","total_slots":1}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", 0)
	props, err := client.Props(context.Background())
	if err != nil {
		t.Fatalf("Props() error = %v", err)
	}
	if props.EOSToken != "<|endoftext|>" || props.PadToken != "" || props.TotalSlots != 1 {
		t.Errorf("Props() = %+v", props)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", 0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Complete(ctx, CompletionRequest{Prompt: []int{1}}); err == nil {
		t.Error("Complete() expected error for canceled context")
	}
}

func TestClient_SendsModel(t *testing.T) {
	const model = "microsoft/phi-1_5"
	seen := make(map[string]string)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			seen[r.URL.Path] = r.URL.Query().Get("model")
			_, _ = w.Write([]byte(`{"eos_token":"<|endoftext|>"}`))
			return
		}

		var body struct {
			Model string `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode %s request: %v", r.URL.Path, err)
		}
		seen[r.URL.Path] = body.Model

		switch r.URL.Path {
		case "/tokenize":
			_, _ = w.Write([]byte(`{"tokens":[1]}`))
		case "/detokenize":
			_, _ = w.Write([]byte(`{"content":"hi"}`))
		default:
			_, _ = w.Write([]byte(`{"content":"ok","tokens":[2]}`))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", model, 0)
	ctx := context.Background()

	if _, err := client.Props(ctx); err != nil {
		t.Fatalf("Props() error = %v", err)
	}
	if _, err := client.Tokenize(ctx, "hi", false); err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if _, err := client.Detokenize(ctx, []int{1}); err != nil {
		t.Fatalf("Detokenize() error = %v", err)
	}
	if _, err := client.Complete(ctx, CompletionRequest{Prompt: []int{1}, NPredict: 20}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	for _, path := range []string{"/props", "/tokenize", "/detokenize", "/completion"} {
		if got := seen[path]; got != model {
			t.Errorf("%s model = %q, want %q", path, got, model)
		}
	}
}

func TestClient_Complete_KeepsExplicitModel(t *testing.T) {
	var got CompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"content":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "default-model", 0)
	if _, err := client.Complete(context.Background(), CompletionRequest{Model: "other", Prompt: []int{1}}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got.Model != "other" {
		t.Errorf("Complete() model = %q, want other", got.Model)
	}
}
