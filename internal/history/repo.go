package history

import (
	"context"
	"errors"

	"github.com/2beens/liftlog/internal/sets"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var (
	ErrTemplateNotFound = errors.New("exercise template not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Add appends one log entry together with its sets, in a single transaction.
// Log entries are never updated afterwards.
func (r *Repo) Add(ctx context.Context, templateID int, workoutID *int, ss []sets.Set) (entry *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "historyRepo.add")
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
				log.Errorf("add log entry: rollback: %s", rollbackErr)
			}
		}
	}()

	entry = &Entry{
		TemplateID: templateID,
		WorkoutID:  workoutID,
		Sets:       make([]sets.Set, 0, len(ss)),
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO exercise_log (template_id, workout_id)
			VALUES ($1, $2)
			RETURNING id, created_at`,
		templateID, workoutID,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, s := range ss {
		s.Clamp()
		s.ExerciseLogID = &entry.ID
		s.WorkoutExerciseID = nil
		err = tx.QueryRow(ctx,
			`INSERT INTO exercise_set (reps, weight, rest_seconds, exercise_log_id)
				VALUES ($1, $2, $3, $4)
				RETURNING id, created_at`,
			s.Reps, s.Weight, s.RestSeconds, entry.ID,
		).Scan(&s.ID, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		entry.Sets = append(entry.Sets, s)
	}

	return entry, tx.Commit(ctx)
}

// ListForUser returns all log entries across the user's templates,
// oldest first, with their sets attached.
func (r *Repo) ListForUser(ctx context.Context, userID int) (entries []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "historyRepo.listForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT el.id, el.template_id, et.name, el.workout_id, COALESCE(w.name, ''), el.created_at
			FROM exercise_log el
			JOIN exercise_template et ON el.template_id = et.id
			LEFT JOIN workout w ON el.workout_id = w.id
			WHERE et.user_id = $1
			ORDER BY el.created_at, el.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err = rows2entries(rows)
	if err != nil {
		return nil, err
	}

	return r.attachSets(ctx, entries)
}

// ListForTemplate returns all log entries of one template, oldest first.
func (r *Repo) ListForTemplate(ctx context.Context, templateID int) (entries []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "historyRepo.listForTemplate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT el.id, el.template_id, et.name, el.workout_id, COALESCE(w.name, ''), el.created_at
			FROM exercise_log el
			JOIN exercise_template et ON el.template_id = et.id
			LEFT JOIN workout w ON el.workout_id = w.id
			WHERE el.template_id = $1
			ORDER BY el.created_at, el.id`,
		templateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err = rows2entries(rows)
	if err != nil {
		return nil, err
	}

	return r.attachSets(ctx, entries)
}

func (r *Repo) TemplateOwner(ctx context.Context, templateID int) (ownerID int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "historyRepo.templateOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`SELECT user_id FROM exercise_template WHERE id = $1`,
		templateID,
	).Scan(&ownerID)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return 0, ErrTemplateNotFound
		}
		return 0, err
	}

	return ownerID, nil
}

func (r *Repo) WorkoutOwner(ctx context.Context, workoutID int) (ownerID int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "historyRepo.workoutOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`SELECT user_id FROM workout WHERE id = $1`,
		workoutID,
	).Scan(&ownerID)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return 0, ErrWorkoutNotFound
		}
		return 0, err
	}

	return ownerID, nil
}

func (r *Repo) attachSets(ctx context.Context, entries []Entry) ([]Entry, error) {
	if len(entries) == 0 {
		return entries, nil
	}

	logIDs := make([]int, 0, len(entries))
	for i := range entries {
		entries[i].Sets = make([]sets.Set, 0)
		logIDs = append(logIDs, entries[i].ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, reps, weight, rest_seconds, workout_exercise_id, exercise_log_id, created_at
			FROM exercise_set
			WHERE exercise_log_id = ANY($1)
			ORDER BY id`,
		logIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ss, err := sets.Rows2Sets(rows)
	if err != nil {
		return nil, err
	}

	entryIdx := make(map[int]int, len(entries))
	for i := range entries {
		entryIdx[entries[i].ID] = i
	}
	for _, s := range ss {
		if s.ExerciseLogID == nil {
			continue
		}
		if i, ok := entryIdx[*s.ExerciseLogID]; ok {
			entries[i].Sets = append(entries[i].Sets, s)
		}
	}

	return entries, nil
}

func rows2entries(rows pgx.Rows) ([]Entry, error) {
	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.TemplateID, &e.TemplateName,
			&e.WorkoutID, &e.WorkoutName, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
