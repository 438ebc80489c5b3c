// Package transfer implements direct token transfers between parties and
// the transfer history view.
package transfer

import (
	"context"
	"errors"
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"github.com/shopspring/decimal"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/config"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/ledger"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

var log = logging.Logger("service/transfer")

var ErrInsufficientBalance = errors.New("insufficient balance")

// baseUnitExponent converts between display units and the ledger's base
// units: one display token is 10^18 base units. Conversion is an exact
// exponent shift in both directions.
const baseUnitExponent = 18

// defaultSymbol is reported when a holding carries no symbol metadata.
const defaultSymbol = "PLDM"

// Ledger is the slice of the ledger client the transfer service uses.
type Ledger interface {
	LedgerEndOrBeginning(ctx context.Context) models.Offset
	ActiveContractsAt(ctx context.Context, party, templateID string, offset models.Offset) ([]models.ContractRecord, error)
	SubmitAndWait(ctx context.Context, req models.SubmitAndWaitRequest) (*models.SubmitAndWaitResponse, error)
	EventsRange(ctx context.Context, req models.EventsRangeRequest) (*models.EventsRangeResponse, error)
}

// Service executes transfers on holding contracts.
type Service struct {
	ledger          Ledger
	holdingTemplate string
}

// New creates the transfer service.
func New(cfg *config.Config, client *ledger.Client) *Service {
	return &Service{
		ledger:          client,
		holdingTemplate: cfg.Templates.Holding,
	}
}

// ToBaseUnits converts a display amount to ledger base units.
func ToBaseUnits(display decimal.Decimal) decimal.Decimal {
	return display.Shift(baseUnitExponent)
}

// ToDisplayUnits converts a base-unit amount back to display units.
func ToDisplayUnits(base decimal.Decimal) decimal.Decimal {
	return base.Shift(-baseUnitExponent)
}

// DirectTransfer moves amount (display units) from sender to receiver by
// exercising Transfer on the first of the sender's holdings that covers
// it. The selection is deliberately simple, not a coin-selection
// algorithm: first sufficient match wins, regardless of leftover.
// Compliance-rule references are passed as null; they are unused in this
// deployment.
func (s *Service) DirectTransfer(ctx context.Context, sender, receiver string, amount decimal.Decimal) (*models.TransferResult, error) {
	offset := s.ledger.LedgerEndOrBeginning(ctx)
	records, err := s.ledger.ActiveContractsAt(ctx, sender, s.holdingTemplate, offset)
	if err != nil {
		return nil, err
	}

	baseAmount := ToBaseUnits(amount)
	var chosen *models.Holding
	var chosenBase decimal.Decimal
	for _, r := range records {
		h := models.HoldingFromRecord(r)
		if h.Owner != sender {
			continue
		}
		held, err := decimal.NewFromString(h.Amount)
		if err != nil {
			continue
		}
		if held.GreaterThanOrEqual(baseAmount) {
			chosen = &h
			chosenBase = held
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: no holding of %s covers %s tokens",
			ErrInsufficientBalance, sender, amount)
	}

	resp, err := s.ledger.SubmitAndWait(ctx, models.SubmitAndWaitRequest{
		Commands: []models.Command{{
			ExerciseCommand: &models.ExerciseCommand{
				TemplateID: s.holdingTemplate,
				ContractID: chosen.ContractID,
				Choice:     "Transfer",
				ChoiceArgument: map[string]interface{}{
					"to":                 receiver,
					"value":              baseAmount.String(),
					"complianceRulesCid": nil,
					"complianceProofCid": nil,
				},
			},
		}},
		CommandID: ledger.CommandID("transfer"),
		ActAs:     []string{sender},
	})
	if err != nil {
		return nil, err
	}

	created, err := ledger.CreatedEvents(resp.Events)
	if err != nil {
		return nil, err
	}
	// The receiver's new holding and the sender's change holding are the
	// usual outcome, but whatever the ledger created is reported verbatim.
	newContracts := make([]models.TransferContract, 0, len(created))
	for _, ev := range created {
		h := models.HoldingFromRecord(models.ContractRecord{
			ContractID: ev.ContractID,
			Arguments:  ev.CreateArgument,
		})
		displayAmount := decimal.Zero
		if base, err := decimal.NewFromString(h.Amount); err == nil {
			displayAmount = ToDisplayUnits(base)
		}
		newContracts = append(newContracts, models.TransferContract{
			Owner:      h.Owner,
			Amount:     displayAmount,
			Symbol:     symbolFromMeta(h.Meta),
			ContractID: ev.ContractID,
		})
	}

	status := resp.Status
	if status == "" {
		status = "Completed"
	}
	log.Infow("transfer submitted", "from", sender, "to", receiver,
		"amount", amount, "holding", chosen.ContractID, "update_id", resp.UpdateID)

	return &models.TransferResult{
		TransactionDetails: models.TransactionDetails{
			UpdateID: resp.UpdateID,
			Offset:   resp.CompletionOffset,
			Status:   status,
		},
		TransferDetails: models.TransferDetails{
			From:                sender,
			To:                  receiver,
			Amount:              amount,
			Symbol:              symbolFromMeta(chosen.Meta),
			SenderBalanceBefore: ToDisplayUnits(chosenBase),
		},
		NewContracts: newContracts,
	}, nil
}

// History lists the holding creations a party has witnessed, from the
// ledger beginning to the current end offset.
func (s *Service) History(ctx context.Context, partyID string) (*models.TransferHistoryResult, error) {
	offset := s.ledger.LedgerEndOrBeginning(ctx)

	resp, err := s.ledger.EventsRange(ctx, models.EventsRangeRequest{
		EventFilters:   []models.TransactionFilter{models.NewTemplateFilter(partyID, s.holdingTemplate)},
		StartExclusive: models.OffsetBeginning,
		EndInclusive:   offset,
	})
	if err != nil {
		return nil, err
	}

	transfers := []models.TransferEvent{}
	for _, ev := range resp.Events {
		if ev.CreatedEvent == nil {
			continue
		}
		h := models.HoldingFromRecord(models.ContractRecord{
			ContractID: ev.CreatedEvent.ContractID,
			Arguments:  ev.CreatedEvent.CreateArgument,
		})
		displayAmount := decimal.Zero
		if base, err := decimal.NewFromString(h.Amount); err == nil {
			displayAmount = ToDisplayUnits(base)
		}
		transfers = append(transfers, models.TransferEvent{
			Type:      "received",
			Owner:     h.Owner,
			Amount:    displayAmount,
			Symbol:    symbolFromMeta(h.Meta),
			Timestamp: ev.CreatedEvent.CreatedAt,
		})
	}

	return &models.TransferHistoryResult{
		PartyID:   partyID,
		Transfers: transfers,
	}, nil
}

func symbolFromMeta(meta map[string]interface{}) string {
	if s, ok := meta["symbol"].(string); ok && s != "" {
		return s
	}
	return defaultSymbol
}
