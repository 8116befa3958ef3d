// Support area client: ticket threads under /api/support/*.
//
// After any mutation the thread is re-fetched in full; there is no optimistic merge.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// Tickets lists the caller's support tickets, newest first.
func (c *Client) Tickets(ctx context.Context) ([]models.Ticket, error) {
	var resp struct {
		Tickets []models.Ticket `json:"tickets"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/api/support/tickets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tickets, nil
}

// Ticket retrieves a full ticket thread.
func (c *Client) Ticket(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	endpoint := fmt.Sprintf("/api/support/tickets/%s", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateTicket opens a new support ticket and returns the server's copy.
func (c *Client) CreateTicket(ctx context.Context, in models.NewTicketInput) (*models.Ticket, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var created models.Ticket
	if err := c.doRequest(ctx, http.MethodPost, "/api/support/tickets", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ReplyTicket appends a message to a ticket and returns the re-fetched thread.
func (c *Client) ReplyTicket(ctx context.Context, id, body string) (*models.Ticket, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message is required", shared.ErrInvalidInput)
	}

	endpoint := fmt.Sprintf("/api/support/tickets/%s/reply", url.PathEscape(id))
	payload := map[string]string{"body": body}

	if err := c.doRequest(ctx, http.MethodPost, endpoint, payload, nil); err != nil {
		return nil, err
	}

	// Full re-fetch after mutation; the POST response is not merged.
	return c.Ticket(ctx, id)
}

// CloseTicket marks a ticket closed and returns the re-fetched thread.
func (c *Client) CloseTicket(ctx context.Context, id string) (*models.Ticket, error) {
	endpoint := fmt.Sprintf("/api/support/tickets/%s/close", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodPost, endpoint, nil, nil); err != nil {
		return nil, err
	}
	return c.Ticket(ctx, id)
}
