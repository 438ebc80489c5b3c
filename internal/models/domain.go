package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ContractRecord is the gateway's ephemeral projection of an active
// contract: its id plus the create-arguments exactly as the ledger named
// them. The ledger owns the authoritative copy.
type ContractRecord struct {
	ContractID string
	CreatedAt  string
	Arguments  map[string]interface{}
}

// MarshalJSON flattens the record into {contractId, createdAt,
// ...createArguments}, preserving ledger field names.
func (r ContractRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Arguments)+2)
	for k, v := range r.Arguments {
		out[k] = v
	}
	out["contractId"] = r.ContractID
	if r.CreatedAt != "" {
		out["createdAt"] = r.CreatedAt
	}
	return json.Marshal(out)
}

// StringField returns a create-argument as a string.
func (r ContractRecord) StringField(name string) string {
	s, _ := r.Arguments[name].(string)
	return s
}

// PartyListField returns a create-argument holding a list of parties.
func (r ContractRecord) PartyListField(name string) []string {
	raw, ok := r.Arguments[name].([]interface{})
	if !ok {
		return nil
	}
	parties := make([]string, 0, len(raw))
	for _, p := range raw {
		if s, ok := p.(string); ok {
			parties = append(parties, s)
		}
	}
	return parties
}

// MetaField returns a create-argument holding a nested object.
func (r ContractRecord) MetaField(name string) map[string]interface{} {
	m, _ := r.Arguments[name].(map[string]interface{})
	return m
}

// Pool is the derived view over a staking pool contract.
type Pool struct {
	ContractID string   `json:"contractId"`
	Operator   string   `json:"operator"`
	Issuer     string   `json:"issuer"`
	Stakers    []string `json:"stakers"`
}

// HasStaker reports pool membership. Membership is only ever granted by an
// explicit AddStaker exercise, never implicitly.
func (p Pool) HasStaker(party string) bool {
	for _, s := range p.Stakers {
		if s == party {
			return true
		}
	}
	return false
}

// PoolFromRecord projects a raw contract record into a pool view.
func PoolFromRecord(r ContractRecord) Pool {
	return Pool{
		ContractID: r.ContractID,
		Operator:   r.StringField("operator"),
		Issuer:     r.StringField("issuer"),
		Stakers:    r.PartyListField("stakers"),
	}
}

// Holding is the derived view over a token holding contract.
type Holding struct {
	ContractID string                 `json:"contractId"`
	Owner      string                 `json:"owner"`
	Issuer     string                 `json:"issuer"`
	Amount     string                 `json:"amount"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
	CreatedAt  string                 `json:"createdAt,omitempty"`
}

// HoldingFromRecord projects a raw contract record into a holding view.
func HoldingFromRecord(r ContractRecord) Holding {
	return Holding{
		ContractID: r.ContractID,
		Owner:      r.StringField("owner"),
		Issuer:     r.StringField("issuer"),
		Amount:     r.StringField("amount"),
		Meta:       r.MetaField("meta"),
		CreatedAt:  r.CreatedAt,
	}
}

// Request bodies accepted by the gateway.

type BalanceQueryRequest struct {
	PartyID      string `json:"partyId,omitempty"`
	OwnerAddress string `json:"ownerAddress,omitempty"`
}

type CreatePoolRequest struct {
	Issuer string `json:"issuer"`
}

type AddStakerRequest struct {
	PoolContractID string `json:"poolContractId"`
	NewStaker      string `json:"newStaker"`
}

type DepositRequest struct {
	PoolContractID string `json:"poolContractId"`
	Staker         string `json:"staker"`
	HoldingCid     string `json:"holdingCid"`
	Amount         string `json:"amount"`
}

type WithdrawRequest struct {
	StakeContractID string `json:"stakeContractId"`
	Staker          string `json:"staker"`
}

type TransferRequest struct {
	Sender   string          `json:"sender"`
	Receiver string          `json:"receiver"`
	Amount   decimal.Decimal `json:"amount"`
}

// Results returned inside the response envelope.

// BalanceResult aggregates a party's holdings, optionally filtered by
// owner. FilteredOut + len(Contracts) always equals TotalChecked.
type BalanceResult struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
	Contracts    []Holding       `json:"contracts"`
	TotalChecked int             `json:"totalChecked"`
	FilteredOut  int             `json:"filteredOut"`
	Offset       Offset          `json:"offset,omitempty"`
}

type StakingConfig struct {
	LedgerURL           string `json:"ledgerUrl"`
	Operator            string `json:"operator"`
	CantonCoinIssuer    string `json:"cantonCoinIssuer"`
	StakingPoolTemplate string `json:"stakingPoolTemplate"`
	StakeTemplate       string `json:"stakeTemplate"`
	HoldingTemplate     string `json:"holdingTemplate"`
}

type CreatePoolResult struct {
	ContractID string `json:"contractId"`
	Issuer     string `json:"issuer"`
}

type AddStakerResult struct {
	NewPoolContractID string `json:"newPoolContractId"`
}

// DepositResult reports the submitted deposit. StakeContractID may be empty
// when the transaction succeeded but no stake creation was visible in its
// events; the transaction remains authoritative.
type DepositResult struct {
	StakeContractID string `json:"stakeContractId,omitempty"`
}

type WithdrawResult struct {
	HoldingContractID string `json:"holdingContractId,omitempty"`
}

type PoolsResult struct {
	Pools []ContractRecord `json:"pools"`
}

type StakesResult struct {
	Stakes []ContractRecord `json:"stakes"`
}

// HoldingSummary is one holding in a holdings listing, annotated with
// whether its issuer is the native coin issuer.
type HoldingSummary struct {
	ContractID   string `json:"contractId"`
	Issuer       string `json:"issuer"`
	Owner        string `json:"owner"`
	Amount       string `json:"amount"`
	IsCantonCoin bool   `json:"isCantonCoin"`
}

type HoldingsResult struct {
	QueryParty  string           `json:"queryParty"`
	Holdings    []HoldingSummary `json:"holdings"`
	Count       int              `json:"count"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
}

// TransferContract summarizes a holding created by a transfer, with the
// amount converted back to display units.
type TransferContract struct {
	Owner      string          `json:"owner"`
	Amount     decimal.Decimal `json:"amount"`
	Symbol     string          `json:"symbol"`
	ContractID string          `json:"contractId"`
}

type TransactionDetails struct {
	UpdateID string `json:"updateId,omitempty"`
	Offset   Offset `json:"offset,omitempty"`
	Status   string `json:"status"`
}

type TransferDetails struct {
	From                string          `json:"from"`
	To                  string          `json:"to"`
	Amount              decimal.Decimal `json:"amount"`
	Symbol              string          `json:"symbol"`
	SenderBalanceBefore decimal.Decimal `json:"senderBalanceBefore"`
}

// TransferResult reports whatever holdings the ledger created for the
// transfer, verbatim; the count is not asserted.
type TransferResult struct {
	TransactionDetails TransactionDetails `json:"transactionDetails"`
	TransferDetails    TransferDetails    `json:"transferDetails"`
	NewContracts       []TransferContract `json:"newContracts"`
}

type TransferEvent struct {
	Type      string          `json:"type"`
	Owner     string          `json:"owner"`
	Amount    decimal.Decimal `json:"amount"`
	Symbol    string          `json:"symbol"`
	Timestamp string          `json:"timestamp,omitempty"`
}

type TransferHistoryResult struct {
	PartyID   string          `json:"partyId"`
	Transfers []TransferEvent `json:"transfers"`
}
