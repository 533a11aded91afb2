package sets

import (
	"context"
	"errors"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var (
	ErrSetNotFound             = errors.New("exercise set not found")
	ErrWorkoutExerciseNotFound = errors.New("workout exercise not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Upsert writes a batch of sets for one workout exercise in a single
// transaction. Sets with a positive ID are updated, the rest are created.
// All values are clamped before hitting the database.
func (r *Repo) Upsert(ctx context.Context, workoutExerciseID int, ss []Set) (upserted []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "setsRepo.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				log.Errorf("upsert sets: rollback: %s", rollbackErr)
			}
		}
	}()

	upserted = make([]Set, 0, len(ss))
	for _, s := range ss {
		s.Clamp()
		s.WorkoutExerciseID = &workoutExerciseID

		if s.ID > 0 {
			err = tx.QueryRow(ctx,
				`UPDATE exercise_set
					SET reps = $1, weight = $2, rest_seconds = $3
					WHERE id = $4 AND workout_exercise_id = $5
					RETURNING created_at`,
				s.Reps, s.Weight, s.RestSeconds, s.ID, workoutExerciseID,
			).Scan(&s.CreatedAt)
			if err != nil {
				if pkg.IsNoRowsError(err) {
					err = ErrSetNotFound
				}
				return nil, err
			}
		} else {
			err = tx.QueryRow(ctx,
				`INSERT INTO exercise_set (reps, weight, rest_seconds, workout_exercise_id)
					VALUES ($1, $2, $3, $4)
					RETURNING id, created_at`,
				s.Reps, s.Weight, s.RestSeconds, workoutExerciseID,
			).Scan(&s.ID, &s.CreatedAt)
			if err != nil {
				return nil, err
			}
		}

		upserted = append(upserted, s)
	}

	return upserted, tx.Commit(ctx)
}

// RemoveMany deletes the given sets, but only those attached to a workout
// exercise owned by the given user. Returns the number of deleted rows.
func (r *Repo) RemoveMany(ctx context.Context, userID int, ids []int) (deleted int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "setsRepo.removeMany")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`DELETE FROM exercise_set es
			USING workout_exercise we, workout w
			WHERE es.workout_exercise_id = we.id
			AND we.workout_id = w.id
			AND w.user_id = $1
			AND es.id = ANY($2)`,
		userID, ids,
	)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// WorkoutExerciseOwner returns the id of the user owning the workout the
// given workout exercise belongs to.
func (r *Repo) WorkoutExerciseOwner(ctx context.Context, workoutExerciseID int) (ownerID int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "setsRepo.workoutExerciseOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`SELECT w.user_id
			FROM workout_exercise we
			JOIN workout w ON we.workout_id = w.id
			WHERE we.id = $1`,
		workoutExerciseID,
	).Scan(&ownerID)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return 0, ErrWorkoutExerciseNotFound
		}
		return 0, err
	}

	return ownerID, nil
}

func (r *Repo) ListForWorkoutExercise(ctx context.Context, workoutExerciseID int) (ss []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "setsRepo.listForWorkoutExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, reps, weight, rest_seconds, workout_exercise_id, exercise_log_id, created_at
			FROM exercise_set
			WHERE workout_exercise_id = $1
			ORDER BY id`,
		workoutExerciseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return Rows2Sets(rows)
}
