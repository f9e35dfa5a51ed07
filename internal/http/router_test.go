package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"instructchat/internal/device"
	"instructchat/internal/service"
	"instructchat/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

type stubSession struct{}

func (stubSession) Available() bool     { return true }
func (stubSession) Err() error          { return nil }
func (stubSession) Device() device.Info { return device.Info{Kind: device.KindCPU} }
func (stubSession) ModelID() string     { return "microsoft/phi-1_5" }

func newTestDeps(controller service.ChatController) *Deps {
	return &Deps{
		Controller:          controller,
		Session:             stubSession{},
		AppTitle:            "Phi-1.5 Assistant",
		AppFooter:           "footer",
		DefaultMaxNewTokens: 100,
		RateLimitRPS:        0,
	}
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)

	router := NewRouter(newTestDeps(mocks.NewMockChatController(ctrl)))
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		formBody   bool
		mockSetup  func(*mocks.MockChatController)
		wantStatus int
	}{
		{
			name:   "GET root serves page",
			method: http.MethodGet,
			path:   "/",
			mockSetup: func(m *mocks.MockChatController) {
				m.EXPECT().Status().Return(nil)
				m.EXPECT().History(gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "POST /chat redirects",
			method:   http.MethodPost,
			path:     "/chat",
			body:     "message=hi",
			formBody: true,
			mockSetup: func(m *mocks.MockChatController) {
				m.EXPECT().Submit(gomock.Any(), service.ChatRequest{Message: "hi", MaxNewTokens: 100}).Return(service.ChatResponse{}, nil)
			},
			wantStatus: http.StatusSeeOther,
		},
		{
			name:   "POST /clear redirects",
			method: http.MethodPost,
			path:   "/clear",
			mockSetup: func(m *mocks.MockChatController) {
				m.EXPECT().Clear(gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusSeeOther,
		},
		{
			name:       "POST /api/chat exists",
			method:     http.MethodPost,
			path:       "/api/chat",
			mockSetup:  func(m *mocks.MockChatController) {},
			wantStatus: http.StatusBadRequest, // Bad request due to empty body, but route exists
		},
		{
			name:       "GET /api/chat method not allowed",
			method:     http.MethodGet,
			path:       "/api/chat",
			mockSetup:  func(m *mocks.MockChatController) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "GET /api/history",
			method: http.MethodGet,
			path:   "/api/history",
			mockSetup: func(m *mocks.MockChatController) {
				m.EXPECT().History(gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "DELETE /api/history",
			method: http.MethodDelete,
			path:   "/api/history",
			mockSetup: func(m *mocks.MockChatController) {
				m.EXPECT().Clear(gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "GET /api/health",
			method:     http.MethodGet,
			path:       "/api/health",
			mockSetup:  func(m *mocks.MockChatController) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /metrics",
			method:     http.MethodGet,
			path:       "/metrics",
			mockSetup:  func(m *mocks.MockChatController) {},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockChatController(ctrl)
			tt.mockSetup(m)
			router := NewRouter(newTestDeps(m))

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.formBody {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_RateLimitsSubmissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockChatController(ctrl)
	m.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(service.ChatResponse{}, nil).Times(1)

	deps := newTestDeps(m)
	deps.RateLimitRPS = 0.001
	deps.RateLimitBurst = 1
	router := NewRouter(deps)

	var codes []int
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 429]", codes)
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := NewRouter(newTestDeps(mocks.NewMockChatController(ctrl)))

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}
