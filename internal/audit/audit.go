// Package audit records one event per tool request. Events carry sizes and
// timings only, never uploaded content or produced results.
package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how a tool request ended.
type Outcome string

const (
	OutcomeOK Outcome = "ok"
	// OutcomeInvalid is a request rejected by validation.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeFailed is an internal processing failure.
	OutcomeFailed Outcome = "failed"
)

// Event describes one tool request.
type Event struct {
	ID          uuid.UUID
	RequestID   string
	Tool        string
	Outcome     Outcome
	InputBytes  int64
	OutputBytes int64
	Duration    time.Duration
	CreatedAt   time.Time
}

// NewEvent starts an event for tool; call Finish once the outcome is known.
func NewEvent(tool, requestID string) Event {
	return Event{
		ID:        uuid.New(),
		RequestID: requestID,
		Tool:      tool,
		CreatedAt: time.Now().UTC(),
	}
}

// Finish stamps the outcome and the elapsed time since the event was created.
func (e Event) Finish(outcome Outcome) Event {
	e.Outcome = outcome
	e.Duration = time.Since(e.CreatedAt)
	return e
}

// Recorder stores events.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// Nop discards events.
type Nop struct{}

func (Nop) Record(context.Context, Event) error { return nil }

// Log writes events to the standard logger.
type Log struct{}

func (Log) Record(_ context.Context, e Event) error {
	log.Printf("[DEBUG] tool=%s outcome=%s in=%d out=%d took=%s request=%s",
		e.Tool, e.Outcome, e.InputBytes, e.OutputBytes, e.Duration.Round(time.Millisecond), e.RequestID)
	return nil
}
