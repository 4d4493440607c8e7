package domain

import "time"

// Event statuses.
const (
	EventUpcoming  = "upcoming"
	EventCompleted = "completed"
	EventLive      = "live"
)

// Event is a read-only listing of a league event.
type Event struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"event_date"`
	Location string    `json:"location"`
	Division string    `json:"division"`
	Status   string    `json:"status"`
}
