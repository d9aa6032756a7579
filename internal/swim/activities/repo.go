package activities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/swimstats/internal/swim"
	"github.com/2beens/swimstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type ListAllParams struct {
	UserID int
	From   *time.Time
	To     *time.Time
}

type ListParams struct {
	UserID int
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, activity swim.Activity) (_ *swim.Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	segmentsJson, err := json.Marshal(activity.Segments)
	if err != nil {
		return nil, fmt.Errorf("marshal segments: %w", err)
	}

	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO swim_activity
				(user_id, date, distance, duration, style, average_pace,
				 avg_heart_rate, stroke_rate, calories, goal_tag, source,
				 segments, notes, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id;`,
		activity.UserID, activity.Date, activity.Distance, activity.Duration,
		activity.Style, activity.AveragePace, activity.AvgHeartRate,
		activity.StrokeRate, activity.Calories, activity.GoalTag,
		activity.Source, segmentsJson, activity.Notes, activity.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("activity.id", id))

	activity.ID = id
	return &activity, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *swim.Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, user_id, date, distance, duration, style, average_pace,
				avg_heart_rate, stroke_rate, calories, goal_tag, source,
				segments, notes, created_at
			FROM swim_activity
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	activities, err := r.rows2activities(rows)
	if err != nil {
		return nil, err
	}

	if len(activities) != 1 {
		return nil, swim.ErrActivityNotFound
	}

	return &activities[0], nil
}

// ListAll returns all activities of a user ordered by creation time ascending.
func (r *Repo) ListAll(ctx context.Context, params ListAllParams) (_ []swim.Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", params.UserID))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, user_id, date, distance, duration, style, average_pace,
				avg_heart_rate, stroke_rate, calories, goal_tag, source,
				segments, notes, created_at
			FROM swim_activity
			WHERE user_id = $1
				AND ($2::timestamp IS NULL OR date >= $2)
				AND ($3::timestamp IS NULL OR date <= $3)
			ORDER BY created_at ASC;`,
		params.UserID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	activities, err := r.rows2activities(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2activities: %w", err)
	}
	return activities, nil
}

// ListUserActivities returns the full activity history of a user. It is what
// the achievements, goals and recommend services consume.
func (r *Repo) ListUserActivities(ctx context.Context, userID int) ([]swim.Activity, error) {
	return r.ListAll(ctx, ListAllParams{UserID: userID})
}

// List returns one page of a user's activities, most recent first.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []swim.Activity, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", params.UserID))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM swim_activity WHERE user_id = $1;`,
		params.UserID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, user_id, date, distance, duration, style, average_pace,
				avg_heart_rate, stroke_rate, calories, goal_tag, source,
				segments, notes, created_at
			FROM swim_activity
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3;`,
		params.UserID, params.Size, (params.Page-1)*params.Size,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows: %w", err)
	}

	activities, err := r.rows2activities(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("rows2activities: %w", err)
	}
	return activities, total, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM swim_activity WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return swim.ErrActivityNotFound
	}
	return nil
}

func (r *Repo) rows2activities(rows pgx.Rows) ([]swim.Activity, error) {
	var activities []swim.Activity
	for rows.Next() {
		var a swim.Activity
		var segmentsJson []byte
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Date, &a.Distance, &a.Duration, &a.Style,
			&a.AveragePace, &a.AvgHeartRate, &a.StrokeRate, &a.Calories,
			&a.GoalTag, &a.Source, &segmentsJson, &a.Notes, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if len(segmentsJson) > 0 {
			if err := json.Unmarshal(segmentsJson, &a.Segments); err != nil {
				return nil, fmt.Errorf("unmarshal segments: %w", err)
			}
		}
		activities = append(activities, a)
	}
	return activities, nil
}
