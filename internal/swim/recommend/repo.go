package recommend

import (
	"context"
	"fmt"

	"github.com/2beens/swimstats/internal/telemetry/tracing"

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

func (r *Repo) Add(ctx context.Context, plan TrainingPlan) (_ *TrainingPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommend.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", plan.UserID))

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO training_plan
				(user_id, goal, difficulty, focus, intensity, swim_training,
				 dryland_training, target_heart_rate, duration, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
			RETURNING id, created_at;`,
		plan.UserID, plan.Goal, plan.Difficulty, plan.Focus, plan.Intensity,
		plan.SwimTraining, plan.DrylandTraining, plan.TargetHeartRate,
		plan.Duration,
	)
	if err := row.Scan(&plan.ID, &plan.CreatedAt); err != nil {
		return nil, fmt.Errorf("row scan: %w", err)
	}

	span.SetAttributes(attribute.Int("plan.id", plan.ID))
	return &plan, nil
}

// ListByUser returns a user's plan history, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID int) (_ []TrainingPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommend.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, goal, difficulty, focus, intensity,
				swim_training, dryland_training, target_heart_rate, duration,
				created_at
			FROM training_plan
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

	var plans []TrainingPlan
	for rows.Next() {
		var plan TrainingPlan
		if err := rows.Scan(
			&plan.ID, &plan.UserID, &plan.Goal, &plan.Difficulty, &plan.Focus,
			&plan.Intensity, &plan.SwimTraining, &plan.DrylandTraining,
			&plan.TargetHeartRate, &plan.Duration, &plan.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
