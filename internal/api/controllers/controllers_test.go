package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meetup/internal/config"
	"meetup/internal/models/request_models"
	"meetup/internal/models/response_models"
	"meetup/internal/services"
	mem "meetup/pkg/memcache"
	"meetup/pkg/middleware"
	"meetup/pkg/utils"
)

type stubRecommender struct {
	err error
}

func (s *stubRecommender) Recommend(_ context.Context, req request_models.MeetingRequest) (*response_models.RecommendationResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := services.ValidateMeetingRequest(req); err != nil {
		return nil, err
	}
	return &response_models.RecommendationResult{
		Meeting: response_models.MeetingSummary{Locations: req.Locations, Activity: req.Activity, Mood: "Any"},
		Recommendations: []response_models.RankedRecommendation{
			{Venue: response_models.VenueCandidate{Name: "Beta Coffee", Address: "2 Market Row"}, Score: 1050},
		},
		Document: "# 🎯 Venue Recommendations\n\n## 📍 Beta Coffee",
	}, nil
}

func (s *stubRecommender) RecommendDocument(ctx context.Context, req request_models.MeetingRequest) string {
	res, err := s.Recommend(ctx, req)
	if err != nil {
		return utils.UserMessage(err)
	}
	return res.Document
}

type recordingFollowup struct {
	contexts []string
}

func (r *recordingFollowup) Answer(_ context.Context, question, priorContext string) string {
	r.contexts = append(r.contexts, priorContext)
	if priorContext == "" {
		return "ask for recommendations first"
	}
	return "Beta Coffee, for: " + question
}

type testEnv struct {
	router   *gin.Engine
	followup *recordingFollowup
}

func newTestEnv(t *testing.T, rec services.RecommendServiceInterface) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	sessions := services.NewSessionService(mem.NewSessions[response_models.ConversationTurn](), []byte("secret"), time.Hour, log)
	geocoder := services.NewGoogleGeocodeClient(services.GeocodeConfig{}, log)
	followup := &recordingFollowup{}

	rc := NewRecommendController(rec, followup, sessions, log)
	sc := NewSessionController(sessions, geocoder, log)
	hc := NewHealthController(&config.Config{LLM: config.LLMConfig{Provider: "openai", OpenAIAPIKey: "sk-0123456789abcdefghij"}})

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.GET("/health/config", hc.ConfigHandler)
	r.POST("/sessions", sc.StartHandler)
	authed := r.Group("/", middleware.SessionMiddleware(sessions))
	authed.DELETE("/sessions/current", sc.EndHandler)
	authed.GET("/sessions/current/history", sc.HistoryHandler)
	authed.GET("/sessions/current/map", sc.MapHandler)
	authed.GET("/sessions/current/calendar", sc.CalendarHandler)
	authed.POST("/recommendations", rc.RecommendHandler)
	authed.POST("/followups", rc.FollowupHandler)

	return &testEnv{router: r, followup: followup}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func decodeData[T any](t *testing.T, resp utils.APIResponse) T {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func startSession(t *testing.T, e *testEnv) string {
	t.Helper()
	w, resp := e.do(t, http.MethodPost, "/sessions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decodeData[response_models.SessionInfo](t, resp)
	require.NotEmpty(t, info.Token)
	return info.Token
}

func TestSessionFlow(t *testing.T) {
	e := newTestEnv(t, &stubRecommender{})
	token := startSession(t, e)

	// follow-up before any recommendation gets empty context
	w, resp := e.do(t, http.MethodPost, "/followups", token, request_models.FollowupRequest{Question: "Any good for a date?"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ask for recommendations first", decodeData[response_models.FollowupAnswer](t, resp).Answer)

	w, _ = e.do(t, http.MethodGet, "/sessions/current/map", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp = e.do(t, http.MethodPost, "/recommendations", token, request_models.MeetingRequest{
		Locations: []string{"Camden", "Brixton"},
		Activity:  "Coffee/Cafe",
	})
	require.Equal(t, http.StatusOK, w.Code, resp.Message)
	result := decodeData[response_models.RecommendationResult](t, resp)
	assert.Equal(t, "Beta Coffee", result.Recommendations[0].Venue.Name)

	w, resp = e.do(t, http.MethodPost, "/followups", token, request_models.FollowupRequest{Question: "Which is quiet?"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Beta Coffee, for: Which is quiet?", decodeData[response_models.FollowupAnswer](t, resp).Answer)
	require.Len(t, e.followup.contexts, 2)
	assert.Contains(t, e.followup.contexts[1], "## 📍 Beta Coffee")

	w, resp = e.do(t, http.MethodGet, "/sessions/current/map", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	pins := decodeData[[]response_models.VenuePin](t, resp)
	require.Len(t, pins, 1)
	assert.True(t, pins[0].Approximate)

	req := httptest.NewRequest(http.MethodGet, "/sessions/current/calendar?rank=1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	cw := httptest.NewRecorder()
	e.router.ServeHTTP(cw, req)
	require.Equal(t, http.StatusOK, cw.Code)
	assert.Contains(t, cw.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, cw.Body.String(), "SUMMARY:Meetup at Beta Coffee")

	w, _ = e.do(t, http.MethodGet, "/sessions/current/calendar?rank=9", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = e.do(t, http.MethodGet, "/sessions/current/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	turns := decodeData[[]response_models.ConversationTurn](t, resp)
	require.Len(t, turns, 3)
	assert.Equal(t, []response_models.TurnKind{
		response_models.TurnKindFollowup,
		response_models.TurnKindQuery,
		response_models.TurnKindFollowup,
	}, []response_models.TurnKind{turns[0].Kind, turns[1].Kind, turns[2].Kind})

	w, _ = e.do(t, http.MethodDelete, "/sessions/current", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(t, http.MethodGet, "/sessions/current/history", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		rec  *stubRecommender
		body any
		code int
	}{
		{
			name: "bad json",
			rec:  &stubRecommender{},
			body: "not an object",
			code: http.StatusBadRequest,
		},
		{
			name: "too many locations",
			rec:  &stubRecommender{},
			body: request_models.MeetingRequest{Locations: []string{"a", "b", "c", "d", "e"}, Activity: "Any"},
			code: http.StatusBadRequest,
		},
		{
			name: "blank location",
			rec:  &stubRecommender{},
			body: request_models.MeetingRequest{Locations: []string{"a", " "}, Activity: "Any"},
			code: http.StatusBadRequest,
		},
		{
			name: "missing credential",
			rec:  &stubRecommender{err: utils.ErrLLMCredentialMissing},
			body: request_models.MeetingRequest{Locations: []string{"a"}, Activity: "Any"},
			code: http.StatusServiceUnavailable,
		},
		{
			name: "suggestion failed",
			rec:  &stubRecommender{err: fmt.Errorf("%w: 500", utils.ErrSuggestionFailed)},
			body: request_models.MeetingRequest{Locations: []string{"a"}, Activity: "Any"},
			code: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t, tt.rec)
			token := startSession(t, e)

			w, resp := e.do(t, http.MethodPost, "/recommendations", token, tt.body)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "error", resp.Status)
			assert.Contains(t, resp.Message, utils.ErrorPrefix)
		})
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	e := newTestEnv(t, &stubRecommender{})

	w, _ := e.do(t, http.MethodPost, "/recommendations", "", request_models.MeetingRequest{Locations: []string{"a"}, Activity: "Any"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthConfigHandler(t *testing.T) {
	e := newTestEnv(t, &stubRecommender{})

	w, resp := e.do(t, http.MethodGet, "/health/config", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	statuses := decodeData[[]response_models.CredentialStatus](t, resp)
	require.Len(t, statuses, 2)
	assert.Equal(t, "ok", statuses[0].Status)
	assert.Equal(t, "missing", statuses[1].Status)
	assert.NotEmpty(t, statuses[1].Remediation)
	assert.Equal(t, "Some features are disabled until credentials are fixed", resp.Message)
}
