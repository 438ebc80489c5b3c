// Package models holds the gateway's wire types: the response envelope, the
// ledger JSON API v2 shapes, and the domain views derived from them.
package models

import "encoding/json"

// Offset is the ledger's opaque position marker. It is carried as a raw JSON
// number/string and echoed back verbatim when anchoring queries.
type Offset = json.Number

// OffsetBeginning anchors a query at the start of the ledger. Read paths
// that tolerate a missing ledger end fall back to it.
const OffsetBeginning = Offset("0")

// LedgerEndResponse is the body of GET /v2/state/ledger-end.
type LedgerEndResponse struct {
	Offset Offset `json:"offset"`
}

// TemplateFilterValue scopes an active-contract query to one template.
type TemplateFilterValue struct {
	TemplateID              string `json:"templateId"`
	IncludeCreatedEventBlob bool   `json:"includeCreatedEventBlob"`
}

type TemplateFilter struct {
	Value TemplateFilterValue `json:"value"`
}

// IdentifierFilter is a tagged union; only the template variant is used.
type IdentifierFilter struct {
	TemplateFilter *TemplateFilter `json:"TemplateFilter,omitempty"`
}

type CumulativeFilter struct {
	IdentifierFilter IdentifierFilter `json:"identifierFilter"`
}

type PartyFilter struct {
	Cumulative []CumulativeFilter `json:"cumulative"`
}

// TransactionFilter scopes a query to the contracts visible to each party.
type TransactionFilter struct {
	FiltersByParty map[string]PartyFilter `json:"filtersByParty"`
}

// NewTemplateFilter builds the single-party single-template filter every
// gateway query uses.
func NewTemplateFilter(party, templateID string) TransactionFilter {
	return TransactionFilter{
		FiltersByParty: map[string]PartyFilter{
			party: {
				Cumulative: []CumulativeFilter{{
					IdentifierFilter: IdentifierFilter{
						TemplateFilter: &TemplateFilter{
							Value: TemplateFilterValue{
								TemplateID:              templateID,
								IncludeCreatedEventBlob: false,
							},
						},
					},
				}},
			},
		},
	}
}

// ActiveContractsRequest is the body of POST /v2/state/active-contracts.
type ActiveContractsRequest struct {
	Filter         TransactionFilter `json:"filter"`
	Verbose        bool              `json:"verbose"`
	ActiveAtOffset Offset            `json:"activeAtOffset"`
}

// ActiveContractsEntry is one element of the active-contracts response
// array. Entries without a JsActiveContract payload represent in-flight or
// otherwise unusable state and are discarded by the query engine.
type ActiveContractsEntry struct {
	ContractEntry ContractEntry `json:"contractEntry"`
}

type ContractEntry struct {
	JsActiveContract *JsActiveContract `json:"JsActiveContract,omitempty"`
}

type JsActiveContract struct {
	CreatedEvent CreatedEvent `json:"createdEvent"`
}

// CreatedEvent is the ledger's record of a contract creation, both inside
// active-contract entries and transaction event lists.
type CreatedEvent struct {
	ContractID     string                 `json:"contractId"`
	TemplateID     string                 `json:"templateId,omitempty"`
	CreatedAt      string                 `json:"createdAt,omitempty"`
	CreateArgument map[string]interface{} `json:"createArgument"`
}

// ArchivedEvent records a contract leaving the active set.
type ArchivedEvent struct {
	ContractID string `json:"contractId"`
	TemplateID string `json:"templateId,omitempty"`
}

// Event is the tagged union of transaction event variants. Exactly one
// field is set on a well-formed event; Raw keeps the original payload for
// diagnostics when none is recognized.
type Event struct {
	CreatedEvent   *CreatedEvent   `json:"CreatedEvent,omitempty"`
	ArchivedEvent  *ArchivedEvent  `json:"ArchivedEvent,omitempty"`
	ExercisedEvent json.RawMessage `json:"ExercisedEvent,omitempty"`
}

// Recognized reports whether the event decoded into a known variant.
func (e Event) Recognized() bool {
	return e.CreatedEvent != nil || e.ArchivedEvent != nil || len(e.ExercisedEvent) > 0
}

// CreateCommand creates a new contract instance.
type CreateCommand struct {
	TemplateID      string                 `json:"templateId"`
	CreateArguments map[string]interface{} `json:"createArguments"`
}

// ExerciseCommand invokes a choice on an existing contract.
type ExerciseCommand struct {
	TemplateID     string                 `json:"templateId"`
	ContractID     string                 `json:"contractId"`
	Choice         string                 `json:"choice"`
	ChoiceArgument map[string]interface{} `json:"choiceArgument"`
}

// Command is the tagged union of the two ledger mutation primitives.
type Command struct {
	CreateCommand   *CreateCommand   `json:"CreateCommand,omitempty"`
	ExerciseCommand *ExerciseCommand `json:"ExerciseCommand,omitempty"`
}

// Commands is the submission wrapper for submit-and-wait-for-transaction.
type Commands struct {
	ActAs     []string  `json:"actAs"`
	ReadAs    []string  `json:"readAs,omitempty"`
	CommandID string    `json:"commandId"`
	Commands  []Command `json:"commands"`
}

type SubmitAndWaitForTransactionRequest struct {
	Commands Commands `json:"commands"`
}

type Transaction struct {
	UpdateID string  `json:"updateId,omitempty"`
	Events   []Event `json:"events"`
}

type SubmitAndWaitForTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

// SubmitAndWaitRequest is the flat submission shape used by
// POST /v2/commands/submit-and-wait.
type SubmitAndWaitRequest struct {
	Commands  []Command `json:"commands"`
	CommandID string    `json:"commandId"`
	ActAs     []string  `json:"actAs"`
}

type SubmitAndWaitResponse struct {
	UpdateID         string  `json:"updateId,omitempty"`
	CompletionOffset Offset  `json:"completionOffset,omitempty"`
	Status           string  `json:"status,omitempty"`
	Events           []Event `json:"events"`
}

// EventsRangeRequest is the body of POST /v2/state/events-range.
type EventsRangeRequest struct {
	EventFilters   []TransactionFilter `json:"eventFilters"`
	StartExclusive Offset              `json:"startExclusive"`
	EndInclusive   Offset              `json:"endInclusive"`
}

type EventsRangeResponse struct {
	Events []Event `json:"events"`
}
