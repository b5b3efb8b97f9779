package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tkarvinen/liftpulse/internal/errors"
	"github.com/tkarvinen/liftpulse/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.NewSentinel("not found")

// ErrEmptySession is returned when a session to be logged has no exercises.
var ErrEmptySession = errors.NewSentinel("session has no exercises")

// sqliteRepository handles database operations for the progress engine.
//
// Session records are read-only from the engine's point of view apart from
// LogSession: aggregation re-reads them on every run and never mutates
// them. Snapshots and latest advice live in single keyed rows with
// overwrite semantics and no locking; concurrent writers race and the last
// write wins, which is accepted.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{
		db:     db,
		logger: logger,
	}
}

// ensureUser returns the id for a display name, creating the user if needed.
func (r *sqliteRepository) ensureUser(ctx context.Context, displayName string) (int64, error) {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (display_name) VALUES (?)
		ON CONFLICT (display_name) DO NOTHING`, displayName)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	var id int64
	err = r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT id FROM users WHERE display_name = ?`, displayName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("query user id: %w", err)
	}
	return id, nil
}

// insertSession persists a raw session with its exercises and sets.
func (r *sqliteRepository) insertSession(ctx context.Context, session WorkoutSession) (int64, error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		err = tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", err))
		}
	}(tx)

	var performedAt any
	if session.PerformedAt != nil {
		performedAt = session.PerformedAt.UTC().Format(timestampFormat)
	}
	var createdAtMs any
	if session.CreatedAtMs != nil {
		createdAtMs = *session.CreatedAtMs
	}
	var workoutDate any
	if session.WorkoutDate != "" {
		workoutDate = session.WorkoutDate
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO workout_sessions (user_id, performed_at, created_at_ms, workout_date)
		VALUES (?, ?, ?, ?)`,
		session.UserID, performedAt, createdAtMs, workoutDate)
	if err != nil {
		return 0, fmt.Errorf("insert workout session: %w", err)
	}
	sessionID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session last insert id: %w", err)
	}

	for position, exercise := range session.Exercises {
		var canonicalName, muscleGroup any
		if exercise.CanonicalName != "" {
			canonicalName = exercise.CanonicalName
		}
		if exercise.Group != "" {
			muscleGroup = string(exercise.Group)
		}

		res, err = tx.ExecContext(ctx, `
			INSERT INTO logged_exercises (session_id, position, raw_name, canonical_name, muscle_group)
			VALUES (?, ?, ?, ?, ?)`,
			sessionID, position, exercise.RawName, canonicalName, muscleGroup)
		if err != nil {
			return 0, fmt.Errorf("insert logged exercise: %w", err)
		}
		var exerciseID int64
		if exerciseID, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("exercise last insert id: %w", err)
		}

		for i, set := range exercise.Sets {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO logged_sets (exercise_id, set_number, reps, weight_kg, done)
				VALUES (?, ?, ?, ?, ?)`,
				exerciseID, i+1, set.Reps, set.WeightKg, set.Done)
			if err != nil {
				return 0, fmt.Errorf("insert logged set: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return sessionID, nil
}

// listSessions reads all of a user's session records with their exercises
// and sets.
func (r *sqliteRepository) listSessions(ctx context.Context, userID int64) ([]WorkoutSession, error) {
	sessions, order, err := r.querySessionRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query session records: %w", err)
	}

	exercises, err := r.queryExerciseRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query exercise records: %w", err)
	}

	for sessionID, sessionExercises := range exercises {
		if session, ok := sessions[sessionID]; ok {
			session.Exercises = sessionExercises
		}
	}

	result := make([]WorkoutSession, 0, len(order))
	for _, id := range order {
		result = append(result, *sessions[id])
	}
	return result, nil
}

func (r *sqliteRepository) querySessionRecords(
	ctx context.Context,
	userID int64,
) (map[int64]*WorkoutSession, []int64, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, performed_at, created_at_ms, workout_date
		FROM workout_sessions
		WHERE user_id = ?
		ORDER BY id`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("query workout sessions: %w", err)
	}
	defer rows.Close()

	sessions := make(map[int64]*WorkoutSession)
	var order []int64
	for rows.Next() {
		var (
			session     WorkoutSession
			performedAt sql.NullString
			createdAtMs sql.NullInt64
			workoutDate sql.NullString
		)
		if err = rows.Scan(&session.ID, &performedAt, &createdAtMs, &workoutDate); err != nil {
			return nil, nil, fmt.Errorf("scan workout session: %w", err)
		}
		session.UserID = userID
		if performedAt.Valid {
			var ts time.Time
			if ts, err = time.Parse(timestampFormat, performedAt.String); err != nil {
				return nil, nil, fmt.Errorf("parse performed_at: %w", err)
			}
			session.PerformedAt = &ts
		}
		if createdAtMs.Valid {
			ms := createdAtMs.Int64
			session.CreatedAtMs = &ms
		}
		if workoutDate.Valid {
			session.WorkoutDate = workoutDate.String
		}
		sessions[session.ID] = &session
		order = append(order, session.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows error: %w", err)
	}
	return sessions, order, nil
}

func (r *sqliteRepository) queryExerciseRecords(
	ctx context.Context,
	userID int64,
) (map[int64][]LoggedExercise, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT e.id, e.session_id, e.raw_name, e.canonical_name, e.muscle_group,
		       ls.reps, ls.weight_kg, ls.done
		FROM logged_exercises e
		JOIN workout_sessions s ON s.id = e.session_id
		LEFT JOIN logged_sets ls ON ls.exercise_id = e.id
		WHERE s.user_id = ?
		ORDER BY e.session_id, e.position, ls.set_number`, userID)
	if err != nil {
		return nil, fmt.Errorf("query logged exercises: %w", err)
	}
	defer rows.Close()

	exercises := make(map[int64][]LoggedExercise)
	var (
		currentExerciseID int64
		currentSessionID  int64
		current           *LoggedExercise
	)
	flush := func() {
		if current != nil {
			exercises[currentSessionID] = append(exercises[currentSessionID], *current)
			current = nil
		}
	}

	for rows.Next() {
		var (
			exerciseID    int64
			sessionID     int64
			rawName       string
			canonicalName sql.NullString
			muscleGroup   sql.NullString
			reps          sql.NullInt64
			weightKg      sql.NullFloat64
			done          sql.NullBool
		)
		if err = rows.Scan(&exerciseID, &sessionID, &rawName, &canonicalName, &muscleGroup,
			&reps, &weightKg, &done); err != nil {
			return nil, fmt.Errorf("scan logged exercise: %w", err)
		}

		// Rows arrive ordered by session and position with one row per set.
		if current == nil || currentExerciseID != exerciseID {
			flush()
			currentExerciseID = exerciseID
			currentSessionID = sessionID
			exercise := LoggedExercise{RawName: rawName}
			if canonicalName.Valid {
				exercise.CanonicalName = canonicalName.String
			}
			if muscleGroup.Valid {
				if group, ok := ParseMuscleGroup(muscleGroup.String); ok {
					exercise.Group = group
				}
			}
			current = &exercise
		}

		if reps.Valid || weightKg.Valid || done.Valid {
			current.Sets = append(current.Sets, LoggedSet{
				Reps:     int(reps.Int64),
				WeightKg: weightKg.Float64,
				Done:     done.Bool,
			})
		}
	}
	flush()

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return exercises, nil
}

// saveSnapshot overwrites the user's latest stats snapshot.
func (r *sqliteRepository) saveSnapshot(ctx context.Context, snapshot UserStatsSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO stats_snapshots (user_id, computed_at, payload)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			computed_at = excluded.computed_at,
			payload = excluded.payload`,
		snapshot.UserID, snapshot.ComputedAt.UTC().Format(timestampFormat), string(payload))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// latestSnapshot reads back the user's latest persisted snapshot.
func (r *sqliteRepository) latestSnapshot(ctx context.Context, userID int64) (UserStatsSnapshot, error) {
	var payload string
	err := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT payload FROM stats_snapshots WHERE user_id = ?`, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return UserStatsSnapshot{}, ErrNotFound
	}
	if err != nil {
		return UserStatsSnapshot{}, fmt.Errorf("query snapshot: %w", err)
	}

	var snapshot UserStatsSnapshot
	if err = json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return UserStatsSnapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snapshot, nil
}

// appendAdvice adds an item to the append-only advice history and
// overwrites the latest-advice slot.
func (r *sqliteRepository) appendAdvice(ctx context.Context, userID int64, item AdviceItem) error {
	lines, err := json.Marshal(item.Lines)
	if err != nil {
		return fmt.Errorf("marshal advice lines: %w", err)
	}
	createdAt := item.CreatedAt.UTC().Format(timestampFormat)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		err = tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", err))
		}
	}(tx)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO advice_history (id, user_id, created_at, lines)
		VALUES (?, ?, ?, ?)`,
		item.ID, userID, createdAt, string(lines))
	if err != nil {
		return fmt.Errorf("insert advice history: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO advice_latest (user_id, created_at, lines)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			created_at = excluded.created_at,
			lines = excluded.lines`,
		userID, createdAt, string(lines))
	if err != nil {
		return fmt.Errorf("upsert latest advice: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// adviceHistory returns all advisory runs for a user, oldest first.
func (r *sqliteRepository) adviceHistory(ctx context.Context, userID int64) ([]AdviceItem, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, created_at, lines
		FROM advice_history
		WHERE user_id = ?
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query advice history: %w", err)
	}
	defer rows.Close()

	var items []AdviceItem
	for rows.Next() {
		var (
			item         AdviceItem
			createdAtStr string
			linesJSON    string
		)
		if err = rows.Scan(&item.ID, &createdAtStr, &linesJSON); err != nil {
			return nil, fmt.Errorf("scan advice item: %w", err)
		}
		if item.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
			return nil, fmt.Errorf("parse advice created_at: %w", err)
		}
		if err = json.Unmarshal([]byte(linesJSON), &item.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal advice lines: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

// latestAdvice returns the most recent advisory run for a user.
func (r *sqliteRepository) latestAdvice(ctx context.Context, userID int64) (AdviceItem, error) {
	var (
		item         AdviceItem
		createdAtStr string
		linesJSON    string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT created_at, lines FROM advice_latest WHERE user_id = ?`, userID).
		Scan(&createdAtStr, &linesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return AdviceItem{}, ErrNotFound
	}
	if err != nil {
		return AdviceItem{}, fmt.Errorf("query latest advice: %w", err)
	}
	if item.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
		return AdviceItem{}, fmt.Errorf("parse latest advice created_at: %w", err)
	}
	if err = json.Unmarshal([]byte(linesJSON), &item.Lines); err != nil {
		return AdviceItem{}, fmt.Errorf("unmarshal latest advice lines: %w", err)
	}
	return item, nil
}
