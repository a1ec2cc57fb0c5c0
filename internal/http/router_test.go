package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"insig8-ai/internal/agent"
	"insig8-ai/internal/commitment"
	"insig8-ai/internal/handlers/mocks"
	"insig8-ai/internal/indexer"
	"insig8-ai/internal/intelligence"
	"insig8-ai/internal/models"
	"insig8-ai/internal/screen"
)

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(&Deps{Agent: mocks.NewMockAgent(ctrl)})

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAgent := mocks.NewMockAgent(ctrl)
	mockAgent.EXPECT().Initialize(gomock.Any()).Return(nil).AnyTimes()
	mockAgent.EXPECT().Status(gomock.Any()).Return(agent.Status{}).AnyTimes()
	mockAgent.EXPECT().Health(gomock.Any()).Return(agent.Health{}).AnyTimes()
	mockAgent.EXPECT().ActiveCommitments(gomock.Any()).Return(nil, nil).AnyTimes()
	mockAgent.EXPECT().CheckProgress(gomock.Any()).Return(commitment.ProgressReport{}, nil).AnyTimes()
	mockAgent.EXPECT().MeetingHistory(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mockAgent.EXPECT().StopMeetingRecording(gomock.Any()).Return(&models.MeetingSession{ID: "m-1"}, nil).AnyTimes()
	mockAgent.EXPECT().SemanticSearch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mockAgent.EXPECT().HybridSearch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mockAgent.EXPECT().GlobalSearch(gomock.Any(), gomock.Any(), gomock.Any()).Return(intelligence.GlobalResult{}, nil).AnyTimes()
	mockAgent.EXPECT().EnhancedSearch(gomock.Any(), gomock.Any(), gomock.Any()).Return(intelligence.EnhancedResult{}, nil).AnyTimes()
	mockAgent.EXPECT().SearchByType(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mockAgent.EXPECT().SearchCommitments(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mockAgent.EXPECT().SearchMeetings(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mockAgent.EXPECT().SearchClipboard(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mockAgent.EXPECT().StopScreenMonitoring(gomock.Any()).AnyTimes()
	mockAgent.EXPECT().UnrespondedMessages(gomock.Any()).Return(nil, nil).AnyTimes()
	mockAgent.EXPECT().ReindexItems(gomock.Any(), gomock.Any()).Return(indexer.Report{}, nil).AnyTimes()
	mockAgent.EXPECT().IndexCoverage(gomock.Any()).Return(&indexer.Coverage{}, nil).AnyTimes()

	router := NewRouter(&Deps{Agent: mockAgent})

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "initialize", method: http.MethodPost, path: "/api/initialize", wantStatus: http.StatusOK},
		{name: "status", method: http.MethodGet, path: "/api/status", wantStatus: http.StatusOK},
		{name: "analyze requires body", method: http.MethodPost, path: "/api/messages/analyze", wantStatus: http.StatusBadRequest},
		{name: "list commitments", method: http.MethodGet, path: "/api/commitments", wantStatus: http.StatusOK},
		{name: "check progress", method: http.MethodPost, path: "/api/commitments/progress", wantStatus: http.StatusOK},
		{name: "status requires body", method: http.MethodPost, path: "/api/commitments/c-1/status", wantStatus: http.StatusBadRequest},
		{name: "snooze requires body", method: http.MethodPost, path: "/api/commitments/c-1/snooze", wantStatus: http.StatusBadRequest},
		{name: "meeting history", method: http.MethodGet, path: "/api/meetings?limit=5", wantStatus: http.StatusOK},
		{name: "stop meeting", method: http.MethodPost, path: "/api/meetings/stop", wantStatus: http.StatusOK},
		{name: "transcript requires text", method: http.MethodPost, path: "/api/meetings/transcript", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "enhanced search", method: http.MethodGet, path: "/api/search?q=deck", wantStatus: http.StatusOK},
		{name: "semantic search", method: http.MethodGet, path: "/api/search/semantic?q=deck", wantStatus: http.StatusOK},
		{name: "hybrid search", method: http.MethodGet, path: "/api/search/hybrid?q=deck", wantStatus: http.StatusOK},
		{name: "global search", method: http.MethodGet, path: "/api/search/global?q=deck", wantStatus: http.StatusOK},
		{name: "search by type", method: http.MethodGet, path: "/api/search/type?q=deck&type=meeting", wantStatus: http.StatusOK},
		{name: "search commitments", method: http.MethodGet, path: "/api/search/commitments?q=deck", wantStatus: http.StatusOK},
		{name: "search meetings", method: http.MethodGet, path: "/api/search/meetings?q=deck", wantStatus: http.StatusOK},
		{name: "search clipboard", method: http.MethodGet, path: "/api/search/clipboard?q=deck", wantStatus: http.StatusOK},
		{name: "stop screen", method: http.MethodPost, path: "/api/screen/stop", wantStatus: http.StatusOK},
		{name: "unresponded", method: http.MethodGet, path: "/api/screen/unresponded", wantStatus: http.StatusOK},
		{name: "reindex", method: http.MethodPost, path: "/api/index/reindex?full=1", wantStatus: http.StatusOK},
		{name: "index coverage", method: http.MethodGet, path: "/api/index/coverage", wantStatus: http.StatusOK},
		{name: "GET initialize not allowed", method: http.MethodGet, path: "/api/initialize", wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown route", method: http.MethodGet, path: "/api/chat", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v (body %s)", tt.method, tt.path, w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAgent := mocks.NewMockAgent(ctrl)
	mockAgent.EXPECT().Status(gomock.Any()).Return(agent.Status{})

	router := NewRouter(&Deps{Agent: mockAgent})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("Router should apply CORS middleware")
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Router GET /api/status Content-Type = %v, want application/json", got)
	}
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAgent := mocks.NewMockAgent(ctrl)
	mockAgent.EXPECT().UnrespondedMessages(gomock.Any()).DoAndReturn(func(context.Context) ([]screen.UnrespondedMessage, error) {
		panic("boom")
	})

	router := NewRouter(&Deps{Agent: mockAgent})

	req := httptest.NewRequest(http.MethodGet, "/api/screen/unresponded", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Router panic status = %v, want %v", w.Code, http.StatusInternalServerError)
	}
}
