package alegra

import (
	"context"
	"fmt"
	"time"
)

// Payments retrieves all income payments registered on the given date, most
// recent first. Bank reconciliation metadata is excluded.
func (c *Client) Payments(ctx context.Context, date time.Time) ([]Payment, error) {
	payments := []Payment{}

	query := map[string]string{
		"order_direction":      "DESC",
		"metadata":             "false",
		"includeUnconciliated": "false",
		"date":                 date.Format("2006-01-02"),
	}

	if err := c.get(ctx, "/payments", query, &payments); err != nil {
		return nil, err
	}

	c.log.Debug().Int("count", len(payments)).Str("date", query["date"]).Msg("fetched payments")

	return payments, nil
}

// Payment retrieves a single payment by id, including the associated client
// and invoice detail that the list endpoint omits. Returns ErrNotFound if
// the payment has been deleted on the Alegra side.
func (c *Client) Payment(ctx context.Context, id ID) (*Payment, error) {
	payment := Payment{}

	if err := c.get(ctx, fmt.Sprintf("/payments/%v", id), nil, &payment); err != nil {
		return nil, err
	}

	return &payment, nil
}
