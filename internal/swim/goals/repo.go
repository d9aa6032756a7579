package goals

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/swimstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", goal.UserID))

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO goal
				(user_id, title, description, type, target_value, current_value,
				 unit, start_date, end_date, status, is_completed, completed_at,
				 progress, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
			RETURNING id, created_at, updated_at;`,
		goal.UserID, goal.Title, goal.Description, goal.Type, goal.TargetValue,
		goal.CurrentValue, goal.Unit, goal.StartDate, goal.EndDate, goal.Status,
		goal.IsCompleted, goal.CompletedAt, goal.Progress,
	)

	if err := row.Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt); err != nil {
		return nil, fmt.Errorf("row scan: %w", err)
	}

	span.SetAttributes(attribute.Int("goal.id", goal.ID))
	return &goal, nil
}

func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	row := r.db.QueryRow(
		ctx,
		`SELECT
				id, user_id, title, description, type, target_value, current_value,
				unit, start_date, end_date, status, is_completed, completed_at,
				progress, created_at, updated_at
			FROM goal
			WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)

	var goal Goal
	if err := scanGoal(row, &goal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// ListByUser returns all goals of a user, most recently created first.
func (r *Repo) ListByUser(ctx context.Context, userID int) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, user_id, title, description, type, target_value, current_value,
				unit, start_date, end_date, status, is_completed, completed_at,
				progress, created_at, updated_at
			FROM goal
			WHERE user_id = $1
			ORDER BY created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2goals(rows)
}

func (r *Repo) ListActive(ctx context.Context, userID int) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.listactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, user_id, title, description, type, target_value, current_value,
				unit, start_date, end_date, status, is_completed, completed_at,
				progress, created_at, updated_at
			FROM goal
			WHERE user_id = $1 AND status = $2
			ORDER BY created_at DESC;`,
		userID, StatusActive,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2goals(rows)
}

func (r *Repo) Update(ctx context.Context, goal *Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", goal.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE goal SET
				title = $1, description = $2, type = $3, target_value = $4,
				current_value = $5, unit = $6, start_date = $7, end_date = $8,
				status = $9, is_completed = $10, completed_at = $11,
				progress = $12, updated_at = NOW()
			WHERE id = $13 AND user_id = $14;`,
		goal.Title, goal.Description, goal.Type, goal.TargetValue,
		goal.CurrentValue, goal.Unit, goal.StartDate, goal.EndDate,
		goal.Status, goal.IsCompleted, goal.CompletedAt, goal.Progress,
		goal.ID, goal.UserID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM goal WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func scanGoal(row pgx.Row, goal *Goal) error {
	return row.Scan(
		&goal.ID, &goal.UserID, &goal.Title, &goal.Description, &goal.Type,
		&goal.TargetValue, &goal.CurrentValue, &goal.Unit, &goal.StartDate,
		&goal.EndDate, &goal.Status, &goal.IsCompleted, &goal.CompletedAt,
		&goal.Progress, &goal.CreatedAt, &goal.UpdatedAt,
	)
}

func rows2goals(rows pgx.Rows) ([]Goal, error) {
	var goals []Goal
	for rows.Next() {
		var goal Goal
		if err := scanGoal(rows, &goal); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		goals = append(goals, goal)
	}
	return goals, nil
}
