package repository

import (
	"context"
	"fmt"

	"github.com/fightleague/registry/internal/domain"
)

// PgOutboxRepository implements OutboxRepository using pgx.
type PgOutboxRepository struct{}

// NewPgOutboxRepository creates a new PgOutboxRepository.
func NewPgOutboxRepository() *PgOutboxRepository {
	return &PgOutboxRepository{}
}

// Insert writes an outbox event. Callers run it inside the same transaction
// as the state change the event describes.
func (r *PgOutboxRepository) Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error {
	_, err := db.Exec(ctx,
		`INSERT INTO event_outbox (event_id, aggregate_type, aggregate_id, event_type, payload, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		draft.EventID,
		string(draft.AggregateType),
		draft.AggregateID,
		string(draft.EventType),
		draft.Payload,
		draft.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

// FetchUnpublished returns unpublished events in insertion order.
func (r *PgOutboxRepository) FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error) {
	rows, err := db.Query(ctx,
		`SELECT id, event_id, aggregate_type, aggregate_id, event_type, payload, occurred_at
		 FROM event_outbox
		 WHERE published_at IS NULL
		 ORDER BY id ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch unpublished events: %w", err)
	}
	defer rows.Close()

	var events []domain.OutboxDraft
	for rows.Next() {
		var d domain.OutboxDraft
		err := rows.Scan(&d.SeqID, &d.EventID, &d.AggregateType, &d.AggregateID,
			&d.EventType, &d.Payload, &d.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		events = append(events, d)
	}
	return events, rows.Err()
}

// MarkPublished stamps events as published. Rows stay in place for audit;
// the poller filter skips them on the next pass.
func (r *PgOutboxRepository) MarkPublished(ctx context.Context, db DBTX, seqIDs []int64) error {
	if len(seqIDs) == 0 {
		return nil
	}
	_, err := db.Exec(ctx,
		`UPDATE event_outbox SET published_at = now() WHERE id = ANY($1)`, seqIDs)
	if err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	return nil
}
