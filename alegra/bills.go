package alegra

import (
	"context"
	"time"
)

// Bills retrieves all purchase invoices registered on the given date.
func (c *Client) Bills(ctx context.Context, date time.Time) ([]Bill, error) {
	bills := []Bill{}

	query := map[string]string{
		"date": date.Format("2006-01-02"),
	}

	if err := c.get(ctx, "/bills", query, &bills); err != nil {
		return nil, err
	}

	c.log.Debug().Int("count", len(bills)).Str("date", query["date"]).Msg("fetched bills")

	return bills, nil
}
