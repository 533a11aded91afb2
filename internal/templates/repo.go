package templates

import (
	"context"
	"errors"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrTemplateNotFound = errors.New("exercise template not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, t Template) (created *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "templatesRepo.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`INSERT INTO exercise_template (name, description, user_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`,
		t.Name, t.Description, t.UserID,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *Repo) Get(ctx context.Context, id int) (t *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "templatesRepo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	t = &Template{}
	err = r.db.QueryRow(ctx,
		`SELECT id, name, description, user_id, created_at
			FROM exercise_template
			WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.UserID, &t.CreatedAt)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	return t, nil
}

func (r *Repo) GetAll(ctx context.Context, userID int) (templates []Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "templatesRepo.getAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, user_id, created_at
			FROM exercise_template
			WHERE user_id = $1
			ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates = make([]Template, 0)
	for rows.Next() {
		var t Template
		if err = rows.Scan(&t.ID, &t.Name, &t.Description, &t.UserID, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// Delete removes the template together with everything hanging off of it:
// workout attachments and their sets, log entries and their sets. One
// transaction, so a failing step leaves everything in place.
func (r *Repo) Delete(ctx context.Context, id int) (ownerID int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "templatesRepo.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				log.Errorf("delete template %d: rollback: %s", id, rollbackErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx,
		`DELETE FROM exercise_set
			WHERE workout_exercise_id IN (
				SELECT id FROM workout_exercise WHERE template_id = $1
			)`,
		id,
	); err != nil {
		return 0, err
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM workout_exercise WHERE template_id = $1`, id,
	); err != nil {
		return 0, err
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM exercise_set
			WHERE exercise_log_id IN (
				SELECT id FROM exercise_log WHERE template_id = $1
			)`,
		id,
	); err != nil {
		return 0, err
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM exercise_log WHERE template_id = $1`, id,
	); err != nil {
		return 0, err
	}

	err = tx.QueryRow(ctx,
		`DELETE FROM exercise_template WHERE id = $1 RETURNING user_id`, id,
	).Scan(&ownerID)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			err = ErrTemplateNotFound
		}
		return 0, err
	}

	return ownerID, tx.Commit(ctx)
}
