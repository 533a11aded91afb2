package workouts

import (
	"context"
	"errors"

	"github.com/2beens/liftlog/internal/sets"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("workout exercise not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, w Workout) (created *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutsRepo.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`INSERT INTO workout (name, description, user_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`,
		w.Name, w.Description, w.UserID,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &w, nil
}

func (r *Repo) Get(ctx context.Context, id int) (w *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutsRepo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	w = &Workout{}
	err = r.db.QueryRow(ctx,
		`SELECT id, name, description, user_id, created_at
			FROM workout
			WHERE id = $1`,
		id,
	).Scan(&w.ID, &w.Name, &w.Description, &w.UserID, &w.CreatedAt)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	return w, nil
}

func (r *Repo) ListAll(ctx context.Context, userID int) (workouts []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutsRepo.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, user_id, created_at
			FROM workout
			WHERE user_id = $1
			ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts = make([]Workout, 0)
	for rows.Next() {
		var w Workout
		if err = rows.Scan(&w.ID, &w.Name, &w.Description, &w.UserID, &w.CreatedAt); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

// Delete removes the workout, its exercise attachments and their sets in a
// single transaction. The child rows are looked up inside the transaction,
// callers never pass them in. Log entries referencing the workout are kept
// and only detached from it.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutsRepo.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				log.Errorf("delete workout %d: rollback: %s", id, rollbackErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx,
		`DELETE FROM exercise_set
			WHERE workout_exercise_id IN (
				SELECT id FROM workout_exercise WHERE workout_id = $1
			)`,
		id,
	); err != nil {
		return err
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM workout_exercise WHERE workout_id = $1`, id,
	); err != nil {
		return err
	}

	if _, err = tx.Exec(ctx,
		`UPDATE exercise_log SET workout_id = NULL WHERE workout_id = $1`, id,
	); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM workout WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = ErrWorkoutNotFound
		return err
	}

	return tx.Commit(ctx)
}

// AttachExercise links a template to a workout and creates one empty
// starter set for it, so the client has a row to edit right away.
func (r *Repo) AttachExercise(ctx context.Context, workoutID, templateID int) (exercise *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutsRepo.attachExercise")
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
				log.Errorf("attach exercise: rollback: %s", rollbackErr)
			}
		}
	}()

	exercise = &Exercise{
		WorkoutID: workoutID,
		Sets:      make([]sets.Set, 0, 1),
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO workout_exercise (workout_id, template_id)
			VALUES ($1, $2)
			RETURNING id, created_at`,
		workoutID, templateID,
	).Scan(&exercise.ID, &exercise.CreatedAt)
	if err != nil {
		return nil, err
	}

	starter := sets.Set{WorkoutExerciseID: &exercise.ID}
	err = tx.QueryRow(ctx,
		`INSERT INTO exercise_set (reps, weight, rest_seconds, workout_exercise_id)
			VALUES (0, 0, 0, $1)
			RETURNING id, created_at`,
		exercise.ID,
	).Scan(&starter.ID, &starter.CreatedAt)
	if err != nil {
		return nil, err
	}
	exercise.Sets = append(exercise.Sets, starter)

	err = tx.QueryRow(ctx,
		`SELECT id, name, description, user_id, created_at
			FROM exercise_template
			WHERE id = $1`,
		templateID,
	).Scan(
		&exercise.Template.ID, &exercise.Template.Name, &exercise.Template.Description,
		&exercise.Template.UserID, &exercise.Template.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return exercise, tx.Commit(ctx)
}

func (r *Repo) GetExercise(ctx context.Context, exerciseID int) (exercise *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutsRepo.getExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise = &Exercise{}
	err = r.db.QueryRow(ctx,
		`SELECT we.id, we.workout_id, we.created_at,
				et.id, et.name, et.description, et.user_id, et.created_at
			FROM workout_exercise we
			JOIN exercise_template et ON we.template_id = et.id
			WHERE we.id = $1`,
		exerciseID,
	).Scan(
		&exercise.ID, &exercise.WorkoutID, &exercise.CreatedAt,
		&exercise.Template.ID, &exercise.Template.Name, &exercise.Template.Description,
		&exercise.Template.UserID, &exercise.Template.CreatedAt,
	)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, reps, weight, rest_seconds, workout_exercise_id, exercise_log_id, created_at
			FROM exercise_set
			WHERE workout_exercise_id = $1
			ORDER BY id`,
		exerciseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercise.Sets, err = sets.Rows2Sets(rows)
	if err != nil {
		return nil, err
	}

	return exercise, nil
}

// ListExercises returns the workout's exercises with templates and sets
// eagerly loaded, in attachment order.
func (r *Repo) ListExercises(ctx context.Context, workoutID int) (exercises []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutsRepo.listExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT we.id, we.workout_id, we.created_at,
				et.id, et.name, et.description, et.user_id, et.created_at
			FROM workout_exercise we
			JOIN exercise_template et ON we.template_id = et.id
			WHERE we.workout_id = $1
			ORDER BY we.created_at, we.id`,
		workoutID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises = make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err = rows.Scan(
			&e.ID, &e.WorkoutID, &e.CreatedAt,
			&e.Template.ID, &e.Template.Name, &e.Template.Description,
			&e.Template.UserID, &e.Template.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Sets = make([]sets.Set, 0)
		exercises = append(exercises, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(exercises) == 0 {
		return exercises, nil
	}

	exerciseIDs := make([]int, 0, len(exercises))
	exerciseIdx := make(map[int]int, len(exercises))
	for i := range exercises {
		exerciseIDs = append(exerciseIDs, exercises[i].ID)
		exerciseIdx[exercises[i].ID] = i
	}

	setRows, err := r.db.Query(ctx,
		`SELECT id, reps, weight, rest_seconds, workout_exercise_id, exercise_log_id, created_at
			FROM exercise_set
			WHERE workout_exercise_id = ANY($1)
			ORDER BY id`,
		exerciseIDs,
	)
	if err != nil {
		return nil, err
	}
	defer setRows.Close()

	ss, err := sets.Rows2Sets(setRows)
	if err != nil {
		return nil, err
	}
	for _, s := range ss {
		if s.WorkoutExerciseID == nil {
			continue
		}
		if i, ok := exerciseIdx[*s.WorkoutExerciseID]; ok {
			exercises[i].Sets = append(exercises[i].Sets, s)
		}
	}

	return exercises, nil
}

// DetachExercise removes the attachment and its sets, in one transaction.
func (r *Repo) DetachExercise(ctx context.Context, exerciseID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutsRepo.detachExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				log.Errorf("detach exercise %d: rollback: %s", exerciseID, rollbackErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx,
		`DELETE FROM exercise_set WHERE workout_exercise_id = $1`, exerciseID,
	); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM workout_exercise WHERE id = $1`, exerciseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = ErrExerciseNotFound
		return err
	}

	return tx.Commit(ctx)
}

// ReplaceSets swaps all sets of the exercise for the given batch.
func (r *Repo) ReplaceSets(ctx context.Context, exerciseID int, ss []sets.Set) (replaced []sets.Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutsRepo.replaceSets")
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
				log.Errorf("replace sets of exercise %d: rollback: %s", exerciseID, rollbackErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx,
		`DELETE FROM exercise_set WHERE workout_exercise_id = $1`, exerciseID,
	); err != nil {
		return nil, err
	}

	replaced = make([]sets.Set, 0, len(ss))
	for _, s := range ss {
		s.Clamp()
		s.WorkoutExerciseID = &exerciseID
		s.ExerciseLogID = nil
		err = tx.QueryRow(ctx,
			`INSERT INTO exercise_set (reps, weight, rest_seconds, workout_exercise_id)
				VALUES ($1, $2, $3, $4)
				RETURNING id, created_at`,
			s.Reps, s.Weight, s.RestSeconds, exerciseID,
		).Scan(&s.ID, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		replaced = append(replaced, s)
	}

	return replaced, tx.Commit(ctx)
}
