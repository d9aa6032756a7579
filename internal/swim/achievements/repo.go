package achievements

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

func (r *Repo) Get(ctx context.Context, userID int, achievementType Type, level Level) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))
	span.SetAttributes(attribute.String("type", string(achievementType)))
	span.SetAttributes(attribute.String("level", string(level)))

	row := r.db.QueryRow(
		ctx,
		`SELECT
				id, user_id, type, level, title, description, icon,
				progress, target, is_unlocked, unlocked_at, created_at
			FROM achievement
			WHERE user_id = $1 AND type = $2 AND level = $3;`,
		userID, achievementType, level,
	)

	var rec Record
	if err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Type, &rec.Level, &rec.Title,
		&rec.Description, &rec.Icon, &rec.Progress, &rec.Target,
		&rec.IsUnlocked, &rec.UnlockedAt, &rec.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAchievementNotFound
		}
		return nil, fmt.Errorf("row scan: %w", err)
	}

	return &rec, nil
}

// Upsert writes the record keyed by (user_id, type, level).
func (r *Repo) Upsert(ctx context.Context, rec Record) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", rec.UserID))
	span.SetAttributes(attribute.String("type", string(rec.Type)))

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO achievement
				(user_id, type, level, title, description, icon,
				 progress, target, is_unlocked, unlocked_at, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
			ON CONFLICT (user_id, type, level) DO UPDATE SET
				progress = EXCLUDED.progress,
				is_unlocked = achievement.is_unlocked OR EXCLUDED.is_unlocked,
				unlocked_at = COALESCE(achievement.unlocked_at, EXCLUDED.unlocked_at)
			RETURNING id, created_at;`,
		rec.UserID, rec.Type, rec.Level, rec.Title, rec.Description, rec.Icon,
		rec.Progress, rec.Target, rec.IsUnlocked, rec.UnlockedAt,
	)

	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("row scan: %w", err)
	}
	return &rec, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID int) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, user_id, type, level, title, description, icon,
				progress, target, is_unlocked, unlocked_at, created_at
			FROM achievement
			WHERE user_id = $1
			ORDER BY created_at ASC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2records(rows)
}

func (r *Repo) ListUnlocked(ctx context.Context, userID int) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.listunlocked")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, user_id, type, level, title, description, icon,
				progress, target, is_unlocked, unlocked_at, created_at
			FROM achievement
			WHERE user_id = $1 AND is_unlocked = TRUE
			ORDER BY unlocked_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2records(rows)
}

func (r *Repo) rows2records(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Type, &rec.Level, &rec.Title,
			&rec.Description, &rec.Icon, &rec.Progress, &rec.Target,
			&rec.IsUnlocked, &rec.UnlockedAt, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
