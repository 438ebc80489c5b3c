package ledger

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

func TestCreatedEvents(t *testing.T) {
	tests := []struct {
		name        string
		events      []models.Event
		wantCreated int
		wantErr     bool
	}{
		{
			name: "mixed variants",
			events: []models.Event{
				{CreatedEvent: &models.CreatedEvent{ContractID: "cid-1"}},
				{ArchivedEvent: &models.ArchivedEvent{ContractID: "cid-old"}},
				{ExercisedEvent: json.RawMessage(`{"choice":"Transfer"}`)},
				{CreatedEvent: &models.CreatedEvent{ContractID: "cid-2"}},
			},
			wantCreated: 2,
		},
		{
			name:        "empty list",
			events:      []models.Event{},
			wantCreated: 0,
		},
		{
			name: "unrecognized variant rejected",
			events: []models.Event{
				{CreatedEvent: &models.CreatedEvent{ContractID: "cid-1"}},
				{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := CreatedEvents(tt.events)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreatedEvents() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ledgerErr *LedgerError
				if !errors.As(err, &ledgerErr) || ledgerErr.Code != "UNRECOGNIZED_EVENT" {
					t.Errorf("CreatedEvents() error = %v, want UNRECOGNIZED_EVENT", err)
				}
				return
			}
			if len(created) != tt.wantCreated {
				t.Errorf("len(created) = %d, want %d", len(created), tt.wantCreated)
			}
		})
	}
}

func TestFirstCreated(t *testing.T) {
	events := []models.Event{
		{CreatedEvent: &models.CreatedEvent{ContractID: "cid-pool", TemplateID: "pkg:Staking:StakingPool"}},
		{CreatedEvent: &models.CreatedEvent{ContractID: "cid-stake", TemplateID: "pkg:Staking:Stake"}},
	}

	created, err := FirstCreated(events, func(ev models.CreatedEvent) bool {
		return strings.HasSuffix(ev.TemplateID, ":Stake")
	})
	if err != nil {
		t.Fatalf("FirstCreated() error = %v", err)
	}
	if created == nil || created.ContractID != "cid-stake" {
		t.Errorf("FirstCreated() = %+v, want cid-stake", created)
	}

	// No match is not an error.
	created, err = FirstCreated(events, func(models.CreatedEvent) bool { return false })
	if err != nil {
		t.Fatalf("FirstCreated() error = %v", err)
	}
	if created != nil {
		t.Errorf("FirstCreated() = %+v, want nil", created)
	}
}

func TestCommandID(t *testing.T) {
	id1 := CommandID("deposit")
	id2 := CommandID("deposit")

	if !strings.HasPrefix(id1, "deposit-") {
		t.Errorf("CommandID() = %q, want deposit- prefix", id1)
	}
	if id1 == id2 {
		t.Errorf("CommandID() returned duplicate ids: %q", id1)
	}
}
