package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"compliance-llm/internal/domain"
)

type PgTimelineRepository struct {
	pool *pgxpool.Pool
}

func NewPgTimelineRepository(pool *pgxpool.Pool) *PgTimelineRepository {
	return &PgTimelineRepository{pool: pool}
}

// EnsureSchema crea la tabla de eventos si no existe.
func (r *PgTimelineRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS timeline_events (
			id UUID PRIMARY KEY,
			application_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			event_data JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL,
			seq BIGSERIAL
		);
		CREATE INDEX IF NOT EXISTS timeline_events_application_idx
			ON timeline_events (application_id, seq)
	`
	_, err := r.pool.Exec(ctx, ddl)
	return err
}

func (r *PgTimelineRepository) Append(ctx context.Context, event domain.TimelineEvent) error {
	data, err := json.Marshal(event.EventData)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}
	const query = `
		INSERT INTO timeline_events (id, application_id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.pool.Exec(ctx, query,
		event.ID,
		event.ApplicationID,
		event.EventType,
		data,
		event.Timestamp,
	)
	return err
}

func (r *PgTimelineRepository) List(ctx context.Context, applicationID string) ([]domain.TimelineEvent, error) {
	const query = `
		SELECT id, application_id, event_type, event_data, created_at
		FROM timeline_events
		WHERE application_id = $1
		ORDER BY seq
	`
	rows, err := r.pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]domain.TimelineEvent, 0)
	for rows.Next() {
		var event domain.TimelineEvent
		var data []byte
		if err := rows.Scan(&event.ID, &event.ApplicationID, &event.EventType, &data, &event.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &event.EventData); err != nil {
			return nil, fmt.Errorf("unmarshal event data: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
