package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tkarvinen/liftpulse/internal/sqlite"
)

// Service handles workout logging and progress analytics.
type Service struct {
	repo   *sqliteRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		logger: logger,
		now:    time.Now,
	}
}

// EnsureUser resolves a display name to a user id, creating the user on
// first login.
func (s *Service) EnsureUser(ctx context.Context, displayName string) (int64, error) {
	id, err := s.repo.ensureUser(ctx, displayName)
	if err != nil {
		return 0, fmt.Errorf("ensure user: %w", err)
	}
	return id, nil
}

// LogSession validates and persists a workout session. Exercises are
// normalized on the way in so that stored records carry their canonical
// name and muscle group.
func (s *Service) LogSession(ctx context.Context, session WorkoutSession) (int64, error) {
	if len(session.Exercises) == 0 {
		return 0, fmt.Errorf("log session: %w", ErrEmptySession)
	}

	for i := range session.Exercises {
		exercise := &session.Exercises[i]
		if exercise.CanonicalName == "" || exercise.Group == "" {
			normalized := Normalize(exercise.RawName)
			exercise.CanonicalName = normalized.CanonicalName
			exercise.Group = normalized.Group
		}
	}

	id, err := s.repo.insertSession(ctx, session)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "workout session logged",
		slog.Int64("session_id", id),
		slog.Int64("user_id", session.UserID),
		slog.Int("exercises", len(session.Exercises)))

	return id, nil
}

// ComputeStats aggregates all of the user's sessions into a fresh snapshot
// and persists it as the user's latest.
func (s *Service) ComputeStats(ctx context.Context, userID int64) (UserStatsSnapshot, error) {
	sessions, err := s.repo.listSessions(ctx, userID)
	if err != nil {
		return UserStatsSnapshot{}, fmt.Errorf("list sessions: %w", err)
	}

	snapshot := ComputeStats(userID, sessions, s.now())

	if err = s.repo.saveSnapshot(ctx, snapshot); err != nil {
		return UserStatsSnapshot{}, fmt.Errorf("save snapshot: %w", err)
	}

	return snapshot, nil
}

// Advise recomputes stats and derives advisory lines from the snapshot.
// The run is recorded in the advice history and becomes the user's latest
// advice.
func (s *Service) Advise(ctx context.Context, userID int64) (AdviceItem, error) {
	snapshot, err := s.ComputeStats(ctx, userID)
	if err != nil {
		return AdviceItem{}, fmt.Errorf("compute stats: %w", err)
	}

	item := AdviceItem{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Lines:     GenerateAdvice(snapshot),
	}

	if err = s.repo.appendAdvice(ctx, userID, item); err != nil {
		return AdviceItem{}, fmt.Errorf("append advice: %w", err)
	}

	return item, nil
}

// Report recomputes stats and renders them as a report table. Advice lines
// included in the report are derived from the same snapshot but not
// recorded in the advice history.
func (s *Service) Report(ctx context.Context, userID int64) (ReportTable, error) {
	snapshot, err := s.ComputeStats(ctx, userID)
	if err != nil {
		return ReportTable{}, fmt.Errorf("compute stats: %w", err)
	}
	return FormatReport(snapshot, GenerateAdvice(snapshot)), nil
}

// LatestSnapshot returns the most recently persisted snapshot without
// recomputing. Returns ErrNotFound when stats have never been computed.
func (s *Service) LatestSnapshot(ctx context.Context, userID int64) (UserStatsSnapshot, error) {
	return s.repo.latestSnapshot(ctx, userID)
}

// AdviceHistory returns all advisory runs for the user, oldest first.
func (s *Service) AdviceHistory(ctx context.Context, userID int64) ([]AdviceItem, error) {
	return s.repo.adviceHistory(ctx, userID)
}

// LatestAdvice returns the most recent advisory run for the user. Returns
// ErrNotFound when no advice has been generated.
func (s *Service) LatestAdvice(ctx context.Context, userID int64) (AdviceItem, error) {
	return s.repo.latestAdvice(ctx, userID)
}
