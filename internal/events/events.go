// Package events publishes access-request lifecycle events to subscribers outside the
// process.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/internal/domain"
)

// Subjects.
const (
	SubjectAccessRequestCreated = "accessrequest.created"
	SubjectAccessRequestDecided = "accessrequest.decided"
	SubjectAccessRequestRevoked = "accessrequest.revoked"
)

// Event is the envelope published for every lifecycle change.
type Event struct {
	ID         uuid.UUID            `json:"id"`
	Subject    string               `json:"subject"`
	OccurredAt time.Time            `json:"occurredAt"`
	Request    domain.AccessRequest `json:"accessRequest"`
}

// NewEvent wraps r in an envelope for subject.
func NewEvent(subject string, r domain.AccessRequest, at time.Time) Event {
	return Event{ID: uuid.New(), Subject: subject, OccurredAt: at, Request: r}
}

// Marshal encodes e as JSON.
func (e Event) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", e.Subject, err)
	}
	return data, nil
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Noop drops every event.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(context.Context, Event) error { return nil }
