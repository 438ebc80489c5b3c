// Package staking orchestrates staking pool lifecycle and the
// deposit/withdraw workflows: precondition pipelines over current ledger
// state followed by a single atomic command submission.
package staking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/shopspring/decimal"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/config"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/ledger"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

var log = logging.Logger("service/staking")

var (
	ErrPoolNotFound        = errors.New("staking pool not found")
	ErrStakerNotAuthorized = errors.New("staker is not a member of the pool")
	ErrHoldingNotFound     = errors.New("holding not found")
	ErrIssuerMismatch      = errors.New("issuer mismatch")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
)

// Ledger is the slice of the ledger client the staking service uses.
type Ledger interface {
	LedgerEnd(ctx context.Context) (models.Offset, error)
	ActiveContracts(ctx context.Context, party, templateID string) ([]models.ContractRecord, models.Offset, error)
	SubmitAndWaitForTransaction(ctx context.Context, cmds models.Commands) (*models.Transaction, error)
}

// Service implements the staking workflows on top of the ledger client.
type Service struct {
	ledger    Ledger
	ledgerURL string
	operator  string
	// coinIssuer is the DSO party, used as the default pool issuer.
	coinIssuer string
	templates  config.TemplateConfig
}

// New creates the staking service.
func New(cfg *config.Config, client *ledger.Client) *Service {
	return &Service{
		ledger:     client,
		ledgerURL:  cfg.Ledger.URL,
		operator:   cfg.Ledger.OperatorParty,
		coinIssuer: cfg.Ledger.DSOParty,
		templates:  cfg.Templates,
	}
}

// Config reports the static staking configuration to callers.
func (s *Service) Config() models.StakingConfig {
	return models.StakingConfig{
		LedgerURL:           s.ledgerURL,
		Operator:            s.operator,
		CantonCoinIssuer:    s.coinIssuer,
		StakingPoolTemplate: s.templates.StakingPool,
		StakeTemplate:       s.templates.Stake,
		HoldingTemplate:     s.templates.Holding,
	}
}

// LedgerEnd exposes the current ledger end offset.
func (s *Service) LedgerEnd(ctx context.Context) (models.Offset, error) {
	return s.ledger.LedgerEnd(ctx)
}

// CreatePool creates a new staking pool operated by the gateway's operator
// party. An empty issuer defaults to the canton coin issuer.
func (s *Service) CreatePool(ctx context.Context, issuer string) (*models.CreatePoolResult, error) {
	if issuer == "" {
		issuer = s.coinIssuer
	}

	tx, err := s.ledger.SubmitAndWaitForTransaction(ctx, models.Commands{
		ActAs:     []string{s.operator},
		CommandID: ledger.CommandID("create-pool"),
		Commands: []models.Command{{
			CreateCommand: &models.CreateCommand{
				TemplateID: s.templates.StakingPool,
				CreateArguments: map[string]interface{}{
					"operator": s.operator,
					"issuer":   issuer,
					"stakers":  []string{},
				},
			},
		}},
	})
	if err != nil {
		return nil, err
	}

	created, err := ledger.FirstCreated(tx.Events, func(models.CreatedEvent) bool { return true })
	if err != nil {
		return nil, err
	}
	result := &models.CreatePoolResult{Issuer: issuer}
	if created != nil {
		result.ContractID = created.ContractID
	}
	log.Infow("staking pool created", "contract_id", result.ContractID, "issuer", issuer)
	return result, nil
}

// AddStaker exercises AddStaker on a pool, yielding the successor pool
// contract that supersedes the given one.
func (s *Service) AddStaker(ctx context.Context, poolContractID, newStaker string) (*models.AddStakerResult, error) {
	tx, err := s.ledger.SubmitAndWaitForTransaction(ctx, models.Commands{
		ActAs:     []string{s.operator},
		CommandID: ledger.CommandID("add-staker"),
		Commands: []models.Command{{
			ExerciseCommand: &models.ExerciseCommand{
				TemplateID:     s.templates.StakingPool,
				ContractID:     poolContractID,
				Choice:         "AddStaker",
				ChoiceArgument: map[string]interface{}{"newStaker": newStaker},
			},
		}},
	})
	if err != nil {
		return nil, err
	}

	created, err := ledger.FirstCreated(tx.Events, func(models.CreatedEvent) bool { return true })
	if err != nil {
		return nil, err
	}
	result := &models.AddStakerResult{}
	if created != nil {
		result.NewPoolContractID = created.ContractID
	}
	log.Infow("staker added", "pool", poolContractID, "staker", newStaker, "new_pool", result.NewPoolContractID)
	return result, nil
}

// ListPools returns every pool visible to the operator party.
func (s *Service) ListPools(ctx context.Context) (*models.PoolsResult, error) {
	records, _, err := s.ledger.ActiveContracts(ctx, s.operator, s.templates.StakingPool)
	if err != nil {
		return nil, err
	}
	return &models.PoolsResult{Pools: records}, nil
}

// GetPool resolves one pool from the active set by contract id.
func (s *Service) GetPool(ctx context.Context, poolContractID string) (*models.Pool, error) {
	record, err := s.findPool(ctx, poolContractID)
	if err != nil {
		return nil, err
	}
	pool := models.PoolFromRecord(*record)
	return &pool, nil
}

// DepositParams are the inputs to the deposit workflow.
type DepositParams struct {
	PoolContractID string
	Staker         string
	HoldingCid     string
	Amount         string
}

// Deposit locks tokens into a pool. A fail-fast precondition pipeline runs
// against current ledger state before anything is submitted: pool
// existence, staker membership, holding ownership, issuer match, then
// balance sufficiency, in that order. If any check fails no mutation is
// issued. The checks are advisory; the submission itself is the only real
// consistency boundary, so a contract archived between check and submit
// fails the submission, not the pipeline.
func (s *Service) Deposit(ctx context.Context, p DepositParams) (*models.DepositResult, error) {
	record, err := s.findPool(ctx, p.PoolContractID)
	if err != nil {
		return nil, err
	}
	pool := models.PoolFromRecord(*record)

	if !pool.HasStaker(p.Staker) {
		return nil, fmt.Errorf("%w: party %s must be added to pool %s first",
			ErrStakerNotAuthorized, p.Staker, p.PoolContractID)
	}

	holding, err := s.findHolding(ctx, p.Staker, p.HoldingCid)
	if err != nil {
		return nil, err
	}

	if pool.Issuer != holding.Issuer {
		// Both identifiers surface so the caller can self-correct.
		return nil, fmt.Errorf("%w: pool issuer %s, holding issuer %s",
			ErrIssuerMismatch, pool.Issuer, holding.Issuer)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, p.Amount)
	}
	held, err := decimal.NewFromString(holding.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: holding %s carries unparseable amount %q",
			ErrInvalidAmount, holding.ContractID, holding.Amount)
	}
	// Equality is permitted: a full-balance deposit is valid.
	if amount.GreaterThan(held) {
		return nil, fmt.Errorf("%w: requested %s, holding %s has %s",
			ErrInsufficientBalance, amount, holding.ContractID, held)
	}

	tx, err := s.ledger.SubmitAndWaitForTransaction(ctx, models.Commands{
		ActAs:     []string{p.Staker},
		ReadAs:    []string{s.operator},
		CommandID: ledger.CommandID("deposit"),
		Commands: []models.Command{{
			ExerciseCommand: &models.ExerciseCommand{
				TemplateID: s.templates.StakingPool,
				ContractID: p.PoolContractID,
				Choice:     "Deposit",
				ChoiceArgument: map[string]interface{}{
					"staker":     p.Staker,
					"holdingCid": p.HoldingCid,
					// Serialized as a string to avoid precision loss.
					"amount": amount.String(),
				},
			},
		}},
	})
	if err != nil {
		return nil, err
	}

	stakeEntity := ":" + entityName(s.templates.Stake)
	created, err := ledger.FirstCreated(tx.Events, func(ev models.CreatedEvent) bool {
		return strings.HasSuffix(ev.TemplateID, stakeEntity)
	})
	if err != nil {
		return nil, err
	}
	result := &models.DepositResult{}
	if created != nil {
		result.StakeContractID = created.ContractID
	} else {
		// A reporting gap, not a failure: the transaction is authoritative.
		log.Warnw("deposit transaction carried no visible stake creation",
			"pool", p.PoolContractID, "staker", p.Staker)
	}
	log.Infow("deposit submitted", "pool", p.PoolContractID, "staker", p.Staker,
		"amount", amount, "stake", result.StakeContractID)
	return result, nil
}

// Withdraw unlocks a stake back into a holding. Unlike deposit it runs no
// precondition pipeline: the ledger's own choice authorization on the stake
// contract is the gate.
func (s *Service) Withdraw(ctx context.Context, stakeContractID, staker string) (*models.WithdrawResult, error) {
	tx, err := s.ledger.SubmitAndWaitForTransaction(ctx, models.Commands{
		ActAs:     []string{staker},
		CommandID: ledger.CommandID("withdraw"),
		Commands: []models.Command{{
			ExerciseCommand: &models.ExerciseCommand{
				TemplateID:     s.templates.Stake,
				ContractID:     stakeContractID,
				Choice:         "Withdraw",
				ChoiceArgument: map[string]interface{}{},
			},
		}},
	})
	if err != nil {
		return nil, err
	}

	holdingEntity := ":" + entityName(s.templates.Holding)
	created, err := ledger.FirstCreated(tx.Events, func(ev models.CreatedEvent) bool {
		return strings.HasSuffix(ev.TemplateID, holdingEntity)
	})
	if err != nil {
		return nil, err
	}
	result := &models.WithdrawResult{}
	if created != nil {
		result.HoldingContractID = created.ContractID
	}
	log.Infow("withdraw submitted", "stake", stakeContractID, "staker", staker,
		"holding", result.HoldingContractID)
	return result, nil
}

// ListStakes returns the stakes visible to a staker. An empty staker
// defaults to the operator party.
func (s *Service) ListStakes(ctx context.Context, staker string) (*models.StakesResult, error) {
	if staker == "" {
		staker = s.operator
	}
	records, _, err := s.ledger.ActiveContracts(ctx, staker, s.templates.Stake)
	if err != nil {
		return nil, err
	}
	return &models.StakesResult{Stakes: records}, nil
}

// ListHoldings returns the holdings visible to an owner, annotated with
// whether each is canton coin, plus the decimal total. An empty owner
// defaults to the operator party.
func (s *Service) ListHoldings(ctx context.Context, owner string) (*models.HoldingsResult, error) {
	if owner == "" {
		owner = s.operator
	}
	records, _, err := s.ledger.ActiveContracts(ctx, owner, s.templates.Holding)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	holdings := make([]models.HoldingSummary, 0, len(records))
	for _, r := range records {
		h := models.HoldingFromRecord(r)
		if amount, err := decimal.NewFromString(h.Amount); err == nil {
			total = total.Add(amount)
		}
		holdings = append(holdings, models.HoldingSummary{
			ContractID:   h.ContractID,
			Issuer:       h.Issuer,
			Owner:        h.Owner,
			Amount:       h.Amount,
			IsCantonCoin: h.Issuer == s.coinIssuer,
		})
	}
	return &models.HoldingsResult{
		QueryParty:  owner,
		Holdings:    holdings,
		Count:       len(holdings),
		TotalAmount: total,
	}, nil
}

// findPool resolves a pool record via the operator's visibility.
func (s *Service) findPool(ctx context.Context, poolContractID string) (*models.ContractRecord, error) {
	records, _, err := s.ledger.ActiveContracts(ctx, s.operator, s.templates.StakingPool)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ContractID == poolContractID {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, poolContractID)
}

// findHolding resolves a holding through the staker's own visibility, so
// ownership is enforced by query scoping as well as the owner field.
func (s *Service) findHolding(ctx context.Context, staker, holdingCid string) (*models.Holding, error) {
	records, _, err := s.ledger.ActiveContracts(ctx, staker, s.templates.Holding)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ContractID != holdingCid {
			continue
		}
		h := models.HoldingFromRecord(r)
		if h.Owner == staker {
			return &h, nil
		}
	}
	return nil, fmt.Errorf("%w: %s owned by %s", ErrHoldingNotFound, holdingCid, staker)
}

// entityName extracts the entity part of a package:Module:Entity template id.
func entityName(templateID string) string {
	if i := strings.LastIndex(templateID, ":"); i >= 0 {
		return templateID[i+1:]
	}
	return templateID
}
