package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AggregateType identifies the entity an outbox event belongs to.
type AggregateType string

// EventType identifies what happened to the aggregate.
type EventType string

const (
	AggregateFighter AggregateType = "fighter"

	EventFighterRegistered EventType = "registered"
	EventFighterApproved   EventType = "approved"
	EventFighterRejected   EventType = "rejected"
)

// OutboxDraft is an event staged in the outbox table within the same
// transaction as the state change it describes.
type OutboxDraft struct {
	SeqID         int64           `json:"-"`
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewFighterRegisteredEvent records a new pending profile submission.
func NewFighterRegisteredEvent(fighterID int64, userID *int64, division string) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"fighter_id": fighterID,
		"user_id":    userID,
		"division":   division,
		"status":     FighterPending,
	})
	return newFighterEvent(fighterID, EventFighterRegistered, payload)
}

// NewFighterApprovedEvent records a pending profile passing moderation.
func NewFighterApprovedEvent(fighterID int64, userID *int64) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"fighter_id": fighterID,
		"user_id":    userID,
		"status":     FighterVerified,
	})
	return newFighterEvent(fighterID, EventFighterApproved, payload)
}

// NewFighterRejectedEvent records a pending profile being removed.
func NewFighterRejectedEvent(fighterID int64, userID *int64) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"fighter_id": fighterID,
		"user_id":    userID,
	})
	return newFighterEvent(fighterID, EventFighterRejected, payload)
}

func newFighterEvent(fighterID int64, evtType EventType, payload json.RawMessage) OutboxDraft {
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateFighter,
		AggregateID:   strconv.FormatInt(fighterID, 10),
		EventType:     evtType,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
