package alegra

import (
	"context"
	"fmt"
	"time"
)

// Invoices retrieves all sales invoices issued on the given date.
func (c *Client) Invoices(ctx context.Context, date time.Time) ([]Invoice, error) {
	invoices := []Invoice{}

	query := map[string]string{
		"date": date.Format("2006-01-02"),
	}

	if err := c.get(ctx, "/invoices", query, &invoices); err != nil {
		return nil, err
	}

	c.log.Debug().Int("count", len(invoices)).Str("date", query["date"]).Msg("fetched invoices")

	return invoices, nil
}

// Invoice retrieves a single sales invoice by id. Returns ErrNotFound if the
// invoice no longer exists.
func (c *Client) Invoice(ctx context.Context, id ID) (*Invoice, error) {
	invoice := Invoice{}

	if err := c.get(ctx, fmt.Sprintf("/invoices/%v", id), nil, &invoice); err != nil {
		return nil, err
	}

	return &invoice, nil
}
