package suggest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sportsync/refassign/pkg/core/scheduling"
	"github.com/sportsync/refassign/pkg/core/scoring"
	"github.com/sportsync/refassign/pkg/db"
	"github.com/sportsync/refassign/pkg/metrics"
)

// Notifier sends a referee notice that one of their suggestions was
// accepted into an assignment. Implementations must be safe to skip:
// notification failures never fail the acceptance.
type Notifier interface {
	NotifyAssignment(ctx context.Context, referee *db.Referee, game *db.Game, assignment *db.Assignment) error
}

// ServiceConfig contains the dependencies and tuning for a Service
type ServiceConfig struct {
	Store      db.Database
	Detector   *scheduling.Detector
	Scorer     *scoring.Scorer
	Weights    Weights
	Thresholds Thresholds

	// Wages maps game level to the calculated wage for an assignment
	Wages map[string]float64

	// Notifier is optional; nil disables acceptance notifications
	Notifier Notifier

	Logger *zap.Logger
}

// DefaultWages returns the league's standard per-game wages by game level
func DefaultWages() map[string]float64 {
	return map[string]float64{
		db.GameLevelRecreational: 35,
		db.GameLevelCompetitive:  50,
		db.GameLevelElite:        75,
	}
}

// Service implements the suggestion workflow: generation, acceptance,
// rejection, standalone conflict checks and expiry sweeps
type Service struct {
	store      db.Database
	detector   *scheduling.Detector
	scorer     *scoring.Scorer
	weights    Weights
	thresholds Thresholds
	wages      map[string]float64
	notifier   Notifier
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a Service from the given configuration
func NewService(cfg ServiceConfig) *Service {
	wages := cfg.Wages
	if wages == nil {
		wages = DefaultWages()
	}
	return &Service{
		store:      cfg.Store,
		detector:   cfg.Detector,
		scorer:     cfg.Scorer,
		weights:    cfg.Weights,
		thresholds: cfg.Thresholds,
		wages:      wages,
		notifier:   cfg.Notifier,
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// GenerateSuggestions builds ranked, persisted suggestions for each of the
// given games. Weight overrides apply to the whole batch when provided.
//
// Generation is best-effort per game: a failure for one game is logged and
// yields no suggestions for it, without aborting the rest of the batch.
func (s *Service) GenerateSuggestions(ctx context.Context, gameIDs []string, overrides *Weights, createdBy string) ([]db.Suggestion, error) {
	if len(gameIDs) == 0 {
		return nil, fmt.Errorf("%w: no game ids given", ErrValidation)
	}

	weights := s.weights
	if overrides != nil {
		if err := overrides.Validate(); err != nil {
			return nil, err
		}
		weights = *overrides
	}

	var all []db.Suggestion
	for _, gameID := range gameIDs {
		suggestions, err := s.generateForGame(ctx, gameID, weights, createdBy)
		if err != nil {
			metrics.RecordGenerationFailure()
			s.logger.Warn("Skipping game in suggestion batch",
				zap.String("game_id", gameID),
				zap.Error(err))
			continue
		}
		all = append(all, suggestions...)
	}

	return all, nil
}

// generateForGame runs the full pipeline for one game: candidate pool via
// the conflict detector, sub-scores, ranking, then persistence
func (s *Service) generateForGame(ctx context.Context, gameID string, weights Weights, createdBy string) ([]db.Suggestion, error) {
	start := s.now()
	defer func() {
		metrics.RecordGenerationDuration(time.Since(start).Seconds())
	}()

	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, s.storeErr("fetch game", err)
	}

	position, err := s.nextOpenPosition(ctx, game)
	if err != nil {
		return nil, err
	}

	referees, err := s.store.GetAvailableReferees(ctx)
	if err != nil {
		return nil, s.storeErr("fetch referees", err)
	}

	var candidates []Candidate
	for i := range referees {
		referee := &referees[i]

		result, err := s.detector.Check(ctx, game, referee, position)
		if err != nil {
			// One referee's check failing should not sink the game
			s.logger.Warn("Conflict check failed, excluding referee from pool",
				zap.String("game_id", game.ID),
				zap.String("referee_id", referee.ID),
				zap.Error(err))
			continue
		}
		if result.HasConflict {
			continue
		}

		candidates = append(candidates, Candidate{
			Game:      game,
			Referee:   referee,
			Breakdown: s.scorer.Score(ctx, game, referee),
			Warnings:  result.Warnings,
		})
	}

	ranked := Rank(candidates, weights, s.thresholds)
	if len(ranked) == 0 {
		s.logger.Info("No suitable referees found for game", zap.String("game_id", game.ID))
		return nil, nil
	}

	now := s.now()
	suggestions := make([]db.Suggestion, 0, len(ranked))
	for _, c := range ranked {
		suggestions = append(suggestions, db.Suggestion{
			ID:                uuid.New().String(),
			GameID:            c.Game.ID,
			RefereeID:         c.Referee.ID,
			Position:          position,
			Confidence:        c.Confidence,
			ProximityScore:    c.Breakdown.Proximity,
			AvailabilityScore: c.Breakdown.Availability,
			ExperienceScore:   c.Breakdown.Experience,
			PerformanceScore:  c.Breakdown.Performance,
			HistoricalBonus:   c.Breakdown.HistoricalBonus,
			Warnings:          c.Warnings,
			Reasoning:         Reasoning(c.Breakdown, len(c.Warnings)),
			Status:            db.SuggestionStatusPending,
			CreatedBy:         createdBy,
			CreatedAt:         now,
		})
	}

	if err := s.store.InsertSuggestions(ctx, suggestions); err != nil {
		return nil, s.storeErr("insert suggestions", err)
	}

	metrics.RecordSuggestionsGenerated(len(suggestions))
	s.logger.Info("Generated suggestions",
		zap.String("game_id", game.ID),
		zap.Int("count", len(suggestions)),
		zap.Float64("top_confidence", suggestions[0].Confidence))

	return suggestions, nil
}

// nextOpenPosition returns the first unfilled referee position for the
// game, or ErrConflict if the game already has its full crew
func (s *Service) nextOpenPosition(ctx context.Context, game *db.Game) (string, error) {
	assignments, err := s.store.GetGameAssignments(ctx, game.ID)
	if err != nil {
		return "", s.storeErr("fetch game assignments", err)
	}

	taken := make(map[string]bool)
	active := 0
	for _, a := range assignments {
		if a.Status == db.AssignmentStatusPending || a.Status == db.AssignmentStatusAccepted {
			taken[a.Position] = true
			active++
		}
	}

	refsNeeded := game.RefsNeeded
	if refsNeeded <= 0 {
		refsNeeded = 1
	}
	if active >= refsNeeded {
		return "", fmt.Errorf("%w: game %s already has its required referees", ErrConflict, game.ID)
	}

	for i := 1; i <= refsNeeded; i++ {
		position := fmt.Sprintf("referee_%d", i)
		if !taken[position] {
			return position, nil
		}
	}
	return "", fmt.Errorf("%w: game %s has no open position", ErrConflict, game.ID)
}

// AcceptSuggestion turns a pending, unexpired suggestion into an
// assignment. The capacity re-check happens atomically in the store, so a
// competing assignment created since generation makes this fail with
// ErrConflict rather than double-booking the game.
func (s *Service) AcceptSuggestion(ctx context.Context, id, processedBy string) (*db.Assignment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: suggestion id is required", ErrValidation)
	}

	suggestion, err := s.store.GetSuggestion(ctx, id)
	if err != nil {
		return nil, s.storeErr("fetch suggestion", err)
	}

	if suggestion.Status != db.SuggestionStatusPending {
		return nil, fmt.Errorf("%w: suggestion is %s, not pending", ErrConflict, suggestion.Status)
	}

	now := s.now()
	if now.Sub(suggestion.CreatedAt) > s.thresholds.TTL {
		// Sweep stale suggestions while we are here; acceptance still fails
		if count, sweepErr := s.store.ExpireSuggestions(ctx, now.Add(-s.thresholds.TTL)); sweepErr == nil {
			metrics.RecordSuggestionsExpired(count)
		}
		return nil, fmt.Errorf("%w: suggestion expired", ErrConflict)
	}

	game, err := s.store.GetGame(ctx, suggestion.GameID)
	if err != nil {
		return nil, s.storeErr("fetch game", err)
	}

	assignment := &db.Assignment{
		ID:             uuid.New().String(),
		GameID:         suggestion.GameID,
		RefereeID:      suggestion.RefereeID,
		Position:       suggestion.Position,
		Status:         db.AssignmentStatusPending,
		CalculatedWage: s.wages[game.Level],
		CreatedBy:      processedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.AcceptSuggestion(ctx, id, processedBy, assignment); err != nil {
		return nil, s.storeErr("accept suggestion", err)
	}

	metrics.RecordSuggestionAccepted()
	s.logger.Info("Suggestion accepted",
		zap.String("suggestion_id", id),
		zap.String("game_id", suggestion.GameID),
		zap.String("referee_id", suggestion.RefereeID),
		zap.String("position", suggestion.Position))

	s.notifyAccepted(ctx, suggestion.RefereeID, game, assignment)

	return assignment, nil
}

// notifyAccepted sends the acceptance notification when a notifier is
// configured. Failures are logged only.
func (s *Service) notifyAccepted(ctx context.Context, refereeID string, game *db.Game, assignment *db.Assignment) {
	if s.notifier == nil {
		return
	}

	referee, err := s.store.GetReferee(ctx, refereeID)
	if err != nil {
		s.logger.Warn("Skipping assignment notification, referee lookup failed",
			zap.String("referee_id", refereeID),
			zap.Error(err))
		return
	}

	if err := s.notifier.NotifyAssignment(ctx, referee, game, assignment); err != nil {
		s.logger.Warn("Assignment notification failed",
			zap.String("referee_id", refereeID),
			zap.String("assignment_id", assignment.ID),
			zap.Error(err))
	}
}

// RejectSuggestion marks a pending suggestion rejected with an optional
// free-text reason. No game-state recheck is needed to reject.
func (s *Service) RejectSuggestion(ctx context.Context, id, processedBy, reason string) error {
	if id == "" {
		return fmt.Errorf("%w: suggestion id is required", ErrValidation)
	}

	if err := s.store.RejectSuggestion(ctx, id, processedBy, reason); err != nil {
		return s.storeErr("reject suggestion", err)
	}

	metrics.RecordSuggestionRejected()
	s.logger.Info("Suggestion rejected",
		zap.String("suggestion_id", id),
		zap.String("reason", reason))
	return nil
}

// CheckConflicts runs the conflict detector for a single (game, referee)
// pair, usable standalone before any suggestion flow
func (s *Service) CheckConflicts(ctx context.Context, gameID, refereeID string) (*scheduling.Result, error) {
	if gameID == "" || refereeID == "" {
		return nil, fmt.Errorf("%w: game id and referee id are required", ErrValidation)
	}

	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, s.storeErr("fetch game", err)
	}
	referee, err := s.store.GetReferee(ctx, refereeID)
	if err != nil {
		return nil, s.storeErr("fetch referee", err)
	}

	result, err := s.detector.Check(ctx, game, referee, "")
	if err != nil {
		return nil, s.storeErr("check conflicts", err)
	}

	metrics.RecordConflictCheck(result.HasConflict)
	return result, nil
}

// CleanupExpired marks pending suggestions older than the TTL as expired
// and returns how many were swept
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	count, err := s.store.ExpireSuggestions(ctx, s.now().Add(-s.thresholds.TTL))
	if err != nil {
		return 0, s.storeErr("expire suggestions", err)
	}

	metrics.RecordSuggestionsExpired(count)
	if count > 0 {
		s.logger.Info("Expired stale suggestions", zap.Int64("count", count))
	}
	return count, nil
}

// storeErr maps store failures onto the error taxonomy. Internal detail is
// logged, not surfaced.
func (s *Service) storeErr(operation string, err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("%w: %s: %v", ErrNotFound, operation, err)
	case errors.Is(err, db.ErrConflict):
		return fmt.Errorf("%w: %s: %v", ErrConflict, operation, err)
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict), errors.Is(err, ErrNotFound):
		return err
	default:
		s.logger.Error("Store operation failed",
			zap.String("operation", operation),
			zap.Error(err))
		return fmt.Errorf("%w: %s", ErrInternal, operation)
	}
}
