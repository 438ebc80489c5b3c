package ledger

import (
	"context"
	"net/http"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

// LedgerEnd fetches the ledger's current end offset.
func (c *Client) LedgerEnd(ctx context.Context) (models.Offset, error) {
	var resp models.LedgerEndResponse
	if err := c.Invoke(ctx, http.MethodGet, "state/ledger-end", nil, &resp); err != nil {
		return "", err
	}
	if resp.Offset == "" {
		return models.OffsetBeginning, nil
	}
	return resp.Offset, nil
}

// LedgerEndOrBeginning is the tolerant variant used by read paths that
// prefer an empty result over a failed one: when the end offset cannot be
// fetched it degrades to the beginning offset.
func (c *Client) LedgerEndOrBeginning(ctx context.Context) models.Offset {
	offset, err := c.LedgerEnd(ctx)
	if err != nil {
		log.Warnw("could not fetch ledger end, using beginning offset", "error", err)
		return models.OffsetBeginning
	}
	return offset
}

// ActiveContractsAt queries the active-contract set visible to one party
// for one template, anchored at the given offset. Entries that do not carry
// an active contract with materialized create-arguments are discarded; an
// empty result is a valid outcome. Any application-level filtering (such as
// by owner) is the caller's job, never part of the ledger query.
func (c *Client) ActiveContractsAt(ctx context.Context, party, templateID string, offset models.Offset) ([]models.ContractRecord, error) {
	req := models.ActiveContractsRequest{
		Filter:         models.NewTemplateFilter(party, templateID),
		Verbose:        true,
		ActiveAtOffset: offset,
	}

	var entries []models.ActiveContractsEntry
	if err := c.Invoke(ctx, http.MethodPost, "state/active-contracts", req, &entries); err != nil {
		return nil, err
	}

	records := make([]models.ContractRecord, 0, len(entries))
	for _, entry := range entries {
		active := entry.ContractEntry.JsActiveContract
		if active == nil {
			continue
		}
		ev := active.CreatedEvent
		if ev.CreateArgument == nil {
			// The ledger may return in-flight or malformed entries.
			log.Debugw("discarding contract entry without create-arguments",
				"contract_id", ev.ContractID, "template_id", templateID)
			continue
		}
		records = append(records, models.ContractRecord{
			ContractID: ev.ContractID,
			CreatedAt:  ev.CreatedAt,
			Arguments:  ev.CreateArgument,
		})
	}
	return records, nil
}

// ActiveContracts anchors an active-contract query at the current ledger
// end and returns the records together with the offset used.
func (c *Client) ActiveContracts(ctx context.Context, party, templateID string) ([]models.ContractRecord, models.Offset, error) {
	offset, err := c.LedgerEnd(ctx)
	if err != nil {
		return nil, "", err
	}
	records, err := c.ActiveContractsAt(ctx, party, templateID, offset)
	if err != nil {
		return nil, "", err
	}
	return records, offset, nil
}
