package wearable

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/swimstats/internal/telemetry/tracing"
	"github.com/2beens/swimstats/pkg"

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

// UpsertConnection creates the connection or refreshes its status and last
// sync time. One connection per (user, provider).
func (r *Repo) UpsertConnection(ctx context.Context, conn Connection) (_ *Connection, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.wearable.upsertconnection")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", conn.UserID))
	span.SetAttributes(attribute.String("provider", string(conn.Provider)))

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO wearable_connection
				(user_id, provider, status, last_sync_at, created_at)
				VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (user_id, provider) DO UPDATE SET
				status = EXCLUDED.status,
				last_sync_at = EXCLUDED.last_sync_at
			RETURNING id, created_at;`,
		conn.UserID, conn.Provider, conn.Status, conn.LastSyncAt,
	)
	if err := row.Scan(&conn.ID, &conn.CreatedAt); err != nil {
		return nil, fmt.Errorf("row scan: %w", err)
	}
	return &conn, nil
}

func (r *Repo) GetConnection(ctx context.Context, userID int, provider Provider) (_ *Connection, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.wearable.getconnection")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))
	span.SetAttributes(attribute.String("provider", string(provider)))

	row := r.db.QueryRow(
		ctx,
		`SELECT id, user_id, provider, status, last_sync_at, created_at
			FROM wearable_connection
			WHERE user_id = $1 AND provider = $2;`,
		userID, provider,
	)

	var conn Connection
	if err := row.Scan(
		&conn.ID, &conn.UserID, &conn.Provider, &conn.Status,
		&conn.LastSyncAt, &conn.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *Repo) ListConnections(ctx context.Context, userID int) (_ []Connection, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.wearable.listconnections")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, provider, status, last_sync_at, created_at
			FROM wearable_connection
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

	var connections []Connection
	for rows.Next() {
		var conn Connection
		if err := rows.Scan(
			&conn.ID, &conn.UserID, &conn.Provider, &conn.Status,
			&conn.LastSyncAt, &conn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		connections = append(connections, conn)
	}
	return connections, nil
}

func (r *Repo) SetConnectionStatus(ctx context.Context, userID int, provider Provider, status ConnectionStatus) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.wearable.setconnectionstatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("status", string(status)))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE wearable_connection SET status = $1
			WHERE user_id = $2 AND provider = $3;`,
		status, userID, provider,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

// AddData stores a raw wearable record. Re-synced records are deduplicated by
// (user, provider, external id) and left untouched.
func (r *Repo) AddData(ctx context.Context, data Data) (_ *Data, isNew bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.wearable.adddata")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO wearable_data
				(user_id, provider, external_id, start_time, duration, distance,
				 style, avg_heart_rate, stroke_rate, calories, processed,
				 activity_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
			RETURNING id, created_at;`,
		data.UserID, data.Provider, data.ExternalID, data.StartTime,
		data.Duration, data.Distance, data.Style, data.AvgHeartRate,
		data.StrokeRate, data.Calories, data.Processed, data.ActivityID,
	)
	if err := row.Scan(&data.ID, &data.CreatedAt); err != nil {
		if pkg.IsUniqueViolationError(err) {
			// record already known from a previous sync
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("row scan: %w", err)
	}
	return &data, true, nil
}

func (r *Repo) MarkProcessed(ctx context.Context, dataID, activityID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.wearable.markprocessed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("data_id", dataID))

	_, err = r.db.Exec(
		ctx,
		`UPDATE wearable_data SET processed = TRUE, activity_id = $1 WHERE id = $2;`,
		activityID, dataID,
	)
	return err
}

// ListUserData returns all wearable records of a user across providers,
// oldest first. Feeds the wearable sub-profile of recommendations.
func (r *Repo) ListUserData(ctx context.Context, userID int) (_ []Data, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.wearable.listuserdata")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, provider, external_id, start_time, duration,
				distance, style, avg_heart_rate, stroke_rate, calories,
				processed, activity_id, created_at
			FROM wearable_data
			WHERE user_id = $1
			ORDER BY start_time ASC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2data(rows)
}

func (r *Repo) ListData(ctx context.Context, userID int, provider Provider) (_ []Data, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.wearable.listdata")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, provider, external_id, start_time, duration,
				distance, style, avg_heart_rate, stroke_rate, calories,
				processed, activity_id, created_at
			FROM wearable_data
			WHERE user_id = $1 AND provider = $2
			ORDER BY start_time ASC;`,
		userID, provider,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2data(rows)
}

func rows2data(rows pgx.Rows) ([]Data, error) {
	var dataRows []Data
	for rows.Next() {
		var d Data
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Provider, &d.ExternalID, &d.StartTime,
			&d.Duration, &d.Distance, &d.Style, &d.AvgHeartRate,
			&d.StrokeRate, &d.Calories, &d.Processed, &d.ActivityID,
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		dataRows = append(dataRows, d)
	}
	return dataRows, nil
}
