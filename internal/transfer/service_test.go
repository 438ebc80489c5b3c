package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

type fakeLedger struct {
	records    []models.ContractRecord
	submitResp *models.SubmitAndWaitResponse
	submitErr  error
	eventsResp *models.EventsRangeResponse

	submitted  []models.SubmitAndWaitRequest
	rangeReqs  []models.EventsRangeRequest
	queriedOff models.Offset
}

func (f *fakeLedger) LedgerEndOrBeginning(ctx context.Context) models.Offset {
	return "500"
}

func (f *fakeLedger) ActiveContractsAt(ctx context.Context, party, templateID string, offset models.Offset) ([]models.ContractRecord, error) {
	f.queriedOff = offset
	return f.records, nil
}

func (f *fakeLedger) SubmitAndWait(ctx context.Context, req models.SubmitAndWaitRequest) (*models.SubmitAndWaitResponse, error) {
	f.submitted = append(f.submitted, req)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if f.submitResp != nil {
		return f.submitResp, nil
	}
	return &models.SubmitAndWaitResponse{Events: []models.Event{}}, nil
}

func (f *fakeLedger) EventsRange(ctx context.Context, req models.EventsRangeRequest) (*models.EventsRangeResponse, error) {
	f.rangeReqs = append(f.rangeReqs, req)
	if f.eventsResp != nil {
		return f.eventsResp, nil
	}
	return &models.EventsRangeResponse{}, nil
}

func newTestService(ledger *fakeLedger) *Service {
	return &Service{
		ledger:          ledger,
		holdingTemplate: "pkg:Token:Holding",
	}
}

// baseUnits builds the base-unit string for a display amount.
func baseUnits(display string) string {
	d, _ := decimal.NewFromString(display)
	return ToBaseUnits(d).String()
}

func holdingRecord(cid, owner, baseAmount string) models.ContractRecord {
	return models.ContractRecord{
		ContractID: cid,
		Arguments: map[string]interface{}{
			"owner":  owner,
			"issuer": "dso::1220bb",
			"amount": baseAmount,
		},
	}
}

func TestUnitConversionRoundTrip(t *testing.T) {
	tests := []string{"1", "0.5", "123.456789", "0.000000000000000001", "1000000000"}

	for _, display := range tests {
		d, err := decimal.NewFromString(display)
		if err != nil {
			t.Fatalf("parsing %q: %v", display, err)
		}
		back := ToDisplayUnits(ToBaseUnits(d))
		if !back.Equal(d) {
			t.Errorf("round trip of %s = %s", display, back)
		}
	}

	if got := ToBaseUnits(decimal.NewFromInt(1)).String(); got != "1000000000000000000" {
		t.Errorf("ToBaseUnits(1) = %s, want 1000000000000000000", got)
	}
}

func TestDirectTransferHoldingSelection(t *testing.T) {
	ledger := &fakeLedger{
		records: []models.ContractRecord{
			holdingRecord("hold-small", "alice::party", baseUnits("0.5")),
			holdingRecord("hold-other-owner", "bob::party", baseUnits("100")),
			holdingRecord("hold-first-fit", "alice::party", baseUnits("10")),
			holdingRecord("hold-larger", "alice::party", baseUnits("50")),
		},
	}
	service := newTestService(ledger)

	_, err := service.DirectTransfer(context.Background(), "alice::party", "bob::party", decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("DirectTransfer() error = %v", err)
	}

	// The first holding that covers the amount wins, skipping holdings of
	// other owners and holdings that are too small.
	ex := ledger.submitted[0].Commands[0].ExerciseCommand
	if ex.ContractID != "hold-first-fit" {
		t.Errorf("exercised holding = %q, want hold-first-fit", ex.ContractID)
	}
	if ex.Choice != "Transfer" {
		t.Errorf("choice = %q, want Transfer", ex.Choice)
	}
	if got := ex.ChoiceArgument["value"]; got != baseUnits("2") {
		t.Errorf("value argument = %v, want %s", got, baseUnits("2"))
	}
	if to := ex.ChoiceArgument["to"]; to != "bob::party" {
		t.Errorf("to argument = %v, want bob::party", to)
	}
	// Compliance references are explicit nulls.
	if v, present := ex.ChoiceArgument["complianceRulesCid"]; !present || v != nil {
		t.Errorf("complianceRulesCid = %v (present %v), want explicit null", v, present)
	}
	if len(ledger.submitted[0].ActAs) != 1 || ledger.submitted[0].ActAs[0] != "alice::party" {
		t.Errorf("ActAs = %v, want [alice::party]", ledger.submitted[0].ActAs)
	}
}

func TestDirectTransferInsufficientBalance(t *testing.T) {
	ledger := &fakeLedger{
		records: []models.ContractRecord{
			holdingRecord("hold-1", "alice::party", baseUnits("1")),
			holdingRecord("hold-2", "alice::party", baseUnits("1.5")),
		},
	}
	service := newTestService(ledger)

	// No single holding covers the amount even though the sum would.
	_, err := service.DirectTransfer(context.Background(), "alice::party", "bob::party", decimal.NewFromInt(2))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("DirectTransfer() error = %v, want %v", err, ErrInsufficientBalance)
	}
	if len(ledger.submitted) != 0 {
		t.Errorf("DirectTransfer() submitted %d commands, want 0", len(ledger.submitted))
	}
}

func TestDirectTransferResult(t *testing.T) {
	ledger := &fakeLedger{
		records: []models.ContractRecord{
			holdingRecord("hold-1", "alice::party", baseUnits("10")),
		},
		submitResp: &models.SubmitAndWaitResponse{
			UpdateID:         "update-1",
			CompletionOffset: "501",
			Events: []models.Event{
				{CreatedEvent: &models.CreatedEvent{
					ContractID: "hold-bob",
					CreateArgument: map[string]interface{}{
						"owner":  "bob::party",
						"amount": baseUnits("2"),
						"meta":   map[string]interface{}{"symbol": "ALP"},
					},
				}},
				{CreatedEvent: &models.CreatedEvent{
					ContractID: "hold-change",
					CreateArgument: map[string]interface{}{
						"owner":  "alice::party",
						"amount": baseUnits("8"),
					},
				}},
			},
		},
	}
	service := newTestService(ledger)

	result, err := service.DirectTransfer(context.Background(), "alice::party", "bob::party", decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("DirectTransfer() error = %v", err)
	}

	if result.TransactionDetails.UpdateID != "update-1" {
		t.Errorf("UpdateID = %q, want update-1", result.TransactionDetails.UpdateID)
	}
	if result.TransactionDetails.Status != "Completed" {
		t.Errorf("Status = %q, want Completed", result.TransactionDetails.Status)
	}
	if !result.TransferDetails.SenderBalanceBefore.Equal(decimal.NewFromInt(10)) {
		t.Errorf("SenderBalanceBefore = %s, want 10", result.TransferDetails.SenderBalanceBefore)
	}

	if len(result.NewContracts) != 2 {
		t.Fatalf("len(NewContracts) = %d, want 2", len(result.NewContracts))
	}
	if !result.NewContracts[0].Amount.Equal(decimal.NewFromInt(2)) {
		t.Errorf("NewContracts[0].Amount = %s, want 2", result.NewContracts[0].Amount)
	}
	if result.NewContracts[0].Symbol != "ALP" {
		t.Errorf("NewContracts[0].Symbol = %q, want ALP", result.NewContracts[0].Symbol)
	}
	if result.NewContracts[1].Symbol != defaultSymbol {
		t.Errorf("NewContracts[1].Symbol = %q, want %q", result.NewContracts[1].Symbol, defaultSymbol)
	}
}

func TestHistory(t *testing.T) {
	ledger := &fakeLedger{
		eventsResp: &models.EventsRangeResponse{
			Events: []models.Event{
				{CreatedEvent: &models.CreatedEvent{
					ContractID: "hold-1",
					CreatedAt:  "2026-02-01T10:00:00Z",
					CreateArgument: map[string]interface{}{
						"owner":  "alice::party",
						"amount": baseUnits("3"),
					},
				}},
				{ArchivedEvent: &models.ArchivedEvent{ContractID: "hold-old"}},
			},
		},
	}
	service := newTestService(ledger)

	result, err := service.History(context.Background(), "alice::party")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}

	req := ledger.rangeReqs[0]
	if req.StartExclusive != models.OffsetBeginning {
		t.Errorf("StartExclusive = %q, want %q", req.StartExclusive, models.OffsetBeginning)
	}
	if req.EndInclusive != "500" {
		t.Errorf("EndInclusive = %q, want 500", req.EndInclusive)
	}

	if len(result.Transfers) != 1 {
		t.Fatalf("len(Transfers) = %d, want 1", len(result.Transfers))
	}
	ev := result.Transfers[0]
	if ev.Type != "received" {
		t.Errorf("Type = %q, want received", ev.Type)
	}
	if !ev.Amount.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Amount = %s, want 3", ev.Amount)
	}
	if ev.Timestamp != "2026-02-01T10:00:00Z" {
		t.Errorf("Timestamp = %q", ev.Timestamp)
	}
}

func TestSymbolFromMeta(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]interface{}
		want string
	}{
		{name: "symbol present", meta: map[string]interface{}{"symbol": "ALP"}, want: "ALP"},
		{name: "empty symbol", meta: map[string]interface{}{"symbol": ""}, want: defaultSymbol},
		{name: "nil meta", meta: nil, want: defaultSymbol},
		{name: "non-string symbol", meta: map[string]interface{}{"symbol": 7}, want: defaultSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := symbolFromMeta(tt.meta); got != tt.want {
				t.Errorf("symbolFromMeta() = %q, want %q", got, tt.want)
			}
		})
	}
}
