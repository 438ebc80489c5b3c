package ledger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

// CommandID builds a unique command id with a human-readable prefix.
func CommandID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// SubmitAndWaitForTransaction submits commands and waits for the resulting
// transaction. The ledger applies commands atomically: on any rejection
// nothing is applied and the error carries the ledger's detail.
func (c *Client) SubmitAndWaitForTransaction(ctx context.Context, cmds models.Commands) (*models.Transaction, error) {
	var resp models.SubmitAndWaitForTransactionResponse
	req := models.SubmitAndWaitForTransactionRequest{Commands: cmds}
	if err := c.Invoke(ctx, http.MethodPost, "commands/submit-and-wait-for-transaction", req, &resp); err != nil {
		return nil, err
	}
	if resp.Transaction == nil {
		return nil, &LedgerError{
			Code:    "MISSING_TRANSACTION",
			Message: fmt.Sprintf("command %s completed without a transaction in the response", cmds.CommandID),
		}
	}
	return resp.Transaction, nil
}

// SubmitAndWait submits commands using the flat completion-style endpoint.
func (c *Client) SubmitAndWait(ctx context.Context, req models.SubmitAndWaitRequest) (*models.SubmitAndWaitResponse, error) {
	var resp models.SubmitAndWaitResponse
	if err := c.Invoke(ctx, http.MethodPost, "commands/submit-and-wait", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EventsRange fetches the event stream for a party between two offsets.
func (c *Client) EventsRange(ctx context.Context, req models.EventsRangeRequest) (*models.EventsRangeResponse, error) {
	var resp models.EventsRangeResponse
	if err := c.Invoke(ctx, http.MethodPost, "state/events-range", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
