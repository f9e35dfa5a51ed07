package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestModelLoader_IsModelLoaded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("expected /models, got %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"microsoft/phi-1_5","in_cache":true},{"id":"other","in_cache":false}]}`))
	}))
	defer server.Close()

	ml := NewModelLoader(server.URL, time.Second)

	tests := []struct {
		model string
		want  bool
	}{
		{model: "microsoft/phi-1_5", want: true},
		{model: "other", want: false},
		{model: "missing", want: false},
	}

	for _, tt := range tests {
		got, err := ml.IsModelLoaded(context.Background(), tt.model)
		if err != nil {
			t.Fatalf("IsModelLoaded(%q) error = %v", tt.model, err)
		}
		if got != tt.want {
			t.Errorf("IsModelLoaded(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}

func TestModelLoader_LoadModel(t *testing.T) {
	tests := []struct {
		name    string
		handler func(loads *atomic.Int32) http.HandlerFunc
		wantErr bool
		loads   int32
	}{
		{
			name: "already loaded skips load",
			handler: func(loads *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					if r.URL.Path == "/models/load" {
						loads.Add(1)
					}
					_, _ = w.Write([]byte(`{"data":[{"id":"m","in_cache":true}]}`))
				}
			},
			loads: 0,
		},
		{
			name: "loads then becomes cached",
			handler: func(loads *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					switch r.URL.Path {
					case "/models/load":
						var req LoadModelRequest
						_ = json.NewDecoder(r.Body).Decode(&req)
						if req.Model != "m" || len(req.ExtraArgs) != 2 {
							t.Errorf("unexpected load request: %+v", req)
						}
						loads.Add(1)
						_ = json.NewEncoder(w).Encode(LoadModelResponse{Success: true})
					case "/models":
						inCache := loads.Load() > 0
						_ = json.NewEncoder(w).Encode(ModelsResponse{Data: []ModelStatus{{ID: "m", InCache: inCache}}})
					}
				}
			},
			loads: 1,
		},
		{
			name: "load rejected",
			handler: func(loads *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					switch r.URL.Path {
					case "/models/load":
						loads.Add(1)
						_ = json.NewEncoder(w).Encode(LoadModelResponse{Success: false, Error: "no such model"})
					case "/models":
						_, _ = w.Write([]byte(`{"data":[]}`))
					}
				}
			},
			wantErr: true,
			loads:   1,
		},
		{
			name: "load fails while polling",
			handler: func(loads *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					switch r.URL.Path {
					case "/models/load":
						loads.Add(1)
						_ = json.NewEncoder(w).Encode(LoadModelResponse{Success: true})
					case "/models":
						if loads.Load() == 0 {
							_, _ = w.Write([]byte(`{"data":[]}`))
							return
						}
						_, _ = w.Write([]byte(`{"data":[{"id":"m","in_cache":false,"status":{"value":"unloaded","failed":true,"exit_code":137}}]}`))
					}
				}
			},
			wantErr: true,
			loads:   1,
		},
		{
			name: "never loads within timeout",
			handler: func(loads *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					switch r.URL.Path {
					case "/models/load":
						loads.Add(1)
						_ = json.NewEncoder(w).Encode(LoadModelResponse{Success: true})
					case "/models":
						_, _ = w.Write([]byte(`{"data":[{"id":"m","in_cache":false}]}`))
					}
				}
			},
			wantErr: true,
			loads:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var loads atomic.Int32
			server := httptest.NewServer(tt.handler(&loads))
			defer server.Close()

			ml := NewModelLoader(server.URL, 100*time.Millisecond)
			ml.pollInterval = 10 * time.Millisecond

			err := ml.LoadModel(context.Background(), "m", []string{"--n-gpu-layers", "0"})
			if tt.wantErr && err == nil {
				t.Error("LoadModel() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("LoadModel() unexpected error: %v", err)
			}
			if got := loads.Load(); got != tt.loads {
				t.Errorf("LoadModel() load calls = %d, want %d", got, tt.loads)
			}
		})
	}
}
