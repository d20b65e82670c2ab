package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sportsync/refassign/pkg/core/scheduling"
	"github.com/sportsync/refassign/pkg/core/scoring"
	"github.com/sportsync/refassign/pkg/core/suggest"
	"github.com/sportsync/refassign/pkg/db"
)

// fakeStore is a minimal db.Database backing the handler tests
type fakeStore struct {
	games       map[string]*db.Game
	referees    map[string]*db.Referee
	suggestions map[string]*db.Suggestion
	assignments []db.Assignment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		games:       make(map[string]*db.Game),
		referees:    make(map[string]*db.Referee),
		suggestions: make(map[string]*db.Suggestion),
	}
}

func (f *fakeStore) GetGame(ctx context.Context, id string) (*db.Game, error) {
	game, ok := f.games[id]
	if !ok {
		return nil, fmt.Errorf("game %s: %w", id, db.ErrNotFound)
	}
	return game, nil
}

func (f *fakeStore) GetUnassignedGames(ctx context.Context) ([]db.Game, error) {
	return nil, nil
}

func (f *fakeStore) GetReferee(ctx context.Context, id string) (*db.Referee, error) {
	referee, ok := f.referees[id]
	if !ok {
		return nil, fmt.Errorf("referee %s: %w", id, db.ErrNotFound)
	}
	return referee, nil
}

func (f *fakeStore) GetAvailableReferees(ctx context.Context) ([]db.Referee, error) {
	var out []db.Referee
	for _, r := range f.referees {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeStore) GetGameAssignments(ctx context.Context, gameID string) ([]db.Assignment, error) {
	return nil, nil
}

func (f *fakeStore) GetRefereeAssignments(ctx context.Context, refereeID, fromDate, toDate string) ([]db.RefereeAssignment, error) {
	return nil, nil
}

func (f *fakeStore) GetAvailabilityWindows(ctx context.Context, refereeID, fromDate, toDate string) ([]db.AvailabilityWindow, error) {
	return nil, nil
}

func (f *fakeStore) InsertSuggestions(ctx context.Context, suggestions []db.Suggestion) error {
	for i := range suggestions {
		copied := suggestions[i]
		f.suggestions[copied.ID] = &copied
	}
	return nil
}

func (f *fakeStore) GetSuggestion(ctx context.Context, id string) (*db.Suggestion, error) {
	suggestion, ok := f.suggestions[id]
	if !ok {
		return nil, fmt.Errorf("suggestion %s: %w", id, db.ErrNotFound)
	}
	return suggestion, nil
}

func (f *fakeStore) AcceptSuggestion(ctx context.Context, id, processedBy string, assignment *db.Assignment) error {
	suggestion, ok := f.suggestions[id]
	if !ok {
		return db.ErrNotFound
	}
	if suggestion.Status != db.SuggestionStatusPending {
		return db.ErrConflict
	}
	suggestion.Status = db.SuggestionStatusAccepted
	f.assignments = append(f.assignments, *assignment)
	return nil
}

func (f *fakeStore) RejectSuggestion(ctx context.Context, id, processedBy, reason string) error {
	suggestion, ok := f.suggestions[id]
	if !ok {
		return db.ErrNotFound
	}
	suggestion.Status = db.SuggestionStatusRejected
	return nil
}

func (f *fakeStore) ExpireSuggestions(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func newTestHandler(store *fakeStore) http.Handler {
	logger := zap.NewNop()
	service := suggest.NewService(suggest.ServiceConfig{
		Store:      store,
		Detector:   scheduling.NewDetector(store, scheduling.DefaultRules(), logger),
		Scorer:     scoring.NewScorer(store, scoring.DefaultDefaults(), logger),
		Weights:    suggest.DefaultWeights(),
		Thresholds: suggest.DefaultThresholds(),
		Logger:     logger,
	})
	return NewServer(service, logger).Handler()
}

func seedAcceptable(store *fakeStore) {
	store.games["g1"] = &db.Game{
		ID: "g1", Date: "2024-06-20", StartTime: "10:00",
		Level: db.GameLevelCompetitive, RefsNeeded: 1,
		Status: db.GameStatusUnassigned,
	}
	store.referees["r1"] = &db.Referee{
		ID: "r1", Name: "Dana", Email: "dana@example.com",
		Level: db.RefereeLevelSenior, IsAvailable: true,
	}
	store.suggestions["s1"] = &db.Suggestion{
		ID: "s1", GameID: "g1", RefereeID: "r1", Position: "referee_1",
		Status: db.SuggestionStatusPending, CreatedAt: time.Now(),
	}
}

func errorKind(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Kind
}

func TestHandler_Health(t *testing.T) {
	handler := newTestHandler(newFakeStore())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestHandler_GenerateValidation(t *testing.T) {
	handler := newTestHandler(newFakeStore())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/suggestions/generate", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", errorKind(t, rec))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/suggestions/generate", strings.NewReader(`{"gameIds": []}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", errorKind(t, rec))
}

func TestHandler_Accept(t *testing.T) {
	store := newFakeStore()
	seedAcceptable(store)
	handler := newTestHandler(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions/s1/accept", strings.NewReader(`{"processedBy": "coordinator"}`))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, db.SuggestionStatusAccepted, store.suggestions["s1"].Status)
	require.Len(t, store.assignments, 1)
	assert.Equal(t, "r1", store.assignments[0].RefereeID)
}

func TestHandler_AcceptUnknownSuggestion(t *testing.T) {
	handler := newTestHandler(newFakeStore())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions/nope/accept", strings.NewReader(`{"processedBy": "coordinator"}`))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorKind(t, rec))
}

func TestHandler_AcceptAlreadyProcessed(t *testing.T) {
	store := newFakeStore()
	seedAcceptable(store)
	store.suggestions["s1"].Status = db.SuggestionStatusAccepted
	handler := newTestHandler(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions/s1/accept", strings.NewReader(`{"processedBy": "coordinator"}`))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", errorKind(t, rec))
}

func TestHandler_Reject(t *testing.T) {
	store := newFakeStore()
	seedAcceptable(store)
	handler := newTestHandler(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions/s1/reject", strings.NewReader(`{"processedBy": "coordinator", "reason": "venue too far"}`))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, db.SuggestionStatusRejected, store.suggestions["s1"].Status)
}

func TestHandler_ConflictsValidation(t *testing.T) {
	handler := newTestHandler(newFakeStore())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/conflicts?gameId=g1", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", errorKind(t, rec))
}

func TestHandler_Conflicts(t *testing.T) {
	store := newFakeStore()
	seedAcceptable(store)
	handler := newTestHandler(store)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/conflicts?gameId=g1&refereeId=r1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hasConflict":false`)
}
