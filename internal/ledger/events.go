package ledger

import (
	"fmt"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

// CreatedEvents extracts the created events from a transaction's event
// list. Events that decode into no recognized variant are rejected rather
// than silently skipped, so malformed ledger payloads surface as errors.
func CreatedEvents(events []models.Event) ([]models.CreatedEvent, error) {
	created := make([]models.CreatedEvent, 0, len(events))
	for i, ev := range events {
		if !ev.Recognized() {
			return nil, &LedgerError{
				Code:    "UNRECOGNIZED_EVENT",
				Message: fmt.Sprintf("transaction event %d has no recognized variant", i),
			}
		}
		if ev.CreatedEvent != nil {
			created = append(created, *ev.CreatedEvent)
		}
	}
	return created, nil
}

// FirstCreated returns the first created event matching the predicate, or
// nil when the transaction created nothing that matches.
func FirstCreated(events []models.Event, match func(models.CreatedEvent) bool) (*models.CreatedEvent, error) {
	created, err := CreatedEvents(events)
	if err != nil {
		return nil, err
	}
	for i := range created {
		if match(created[i]) {
			return &created[i], nil
		}
	}
	return nil, nil
}
