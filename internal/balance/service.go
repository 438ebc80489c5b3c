// Package balance aggregates holding contracts into balance summaries.
package balance

import (
	"context"

	logging "github.com/ipfs/go-log/v2"
	"github.com/shopspring/decimal"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/config"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/ledger"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

var log = logging.Logger("service/balance")

// Ledger is the slice of the ledger client the balance service uses. The
// tolerant offset variant is deliberate: a balance read degrades to the
// beginning offset rather than failing when the ledger end is unavailable.
type Ledger interface {
	LedgerEndOrBeginning(ctx context.Context) models.Offset
	ActiveContractsAt(ctx context.Context, party, templateID string, offset models.Offset) ([]models.ContractRecord, error)
}

// Service computes balance aggregates over the active contract set.
type Service struct {
	ledger          Ledger
	defaultParty    string
	holdingTemplate string
}

// New creates the balance service.
func New(cfg *config.Config, client *ledger.Client) *Service {
	return &Service{
		ledger:          client,
		defaultParty:    cfg.Ledger.OperatorParty,
		holdingTemplate: cfg.Templates.Holding,
	}
}

// CheckBalance sums the holdings visible to a party, optionally keeping
// only contracts whose owner matches ownerFilter. The owner filter is
// applied after the ledger query, never inside it, so one query path
// serves both filtered and unfiltered reads. An empty active set yields a
// zero-valued result, not an error, and
// FilteredOut + len(Contracts) == TotalChecked always holds.
func (s *Service) CheckBalance(ctx context.Context, partyID, ownerFilter string) (*models.BalanceResult, error) {
	party := partyID
	if party == "" {
		party = s.defaultParty
	}

	offset := s.ledger.LedgerEndOrBeginning(ctx)
	records, err := s.ledger.ActiveContractsAt(ctx, party, s.holdingTemplate, offset)
	if err != nil {
		return nil, err
	}

	result := Aggregate(records, ownerFilter)
	result.Offset = offset
	log.Debugw("balance computed", "party", party, "owner_filter", ownerFilter,
		"total", result.TotalBalance, "checked", result.TotalChecked, "filtered_out", result.FilteredOut)
	return result, nil
}

// Aggregate folds contract records into a balance summary with a running
// decimal sum. Records with an unparseable amount contribute zero.
func Aggregate(records []models.ContractRecord, ownerFilter string) *models.BalanceResult {
	result := &models.BalanceResult{
		TotalBalance: decimal.Zero,
		Contracts:    []models.Holding{},
	}

	for _, r := range records {
		holding := models.HoldingFromRecord(r)
		result.TotalChecked++

		if ownerFilter != "" && holding.Owner != ownerFilter {
			result.FilteredOut++
			continue
		}

		if amount, err := decimal.NewFromString(holding.Amount); err == nil {
			result.TotalBalance = result.TotalBalance.Add(amount)
		}
		result.Contracts = append(result.Contracts, holding)
	}
	return result
}
