package alegra

import (
	"context"
	"fmt"
	"time"
)

// Items retrieves the complete product and service catalogue, paginating
// with a short pause between pages to stay under the API rate limit.
func (c *Client) Items(ctx context.Context) ([]Item, error) {
	items := []Item{}

	for start := 0; ; start += pageSize {
		page := []Item{}

		query := map[string]string{
			"start": fmt.Sprintf("%v", start),
			"limit": fmt.Sprintf("%v", pageSize),
		}

		if err := c.get(ctx, "/items", query, &page); err != nil {
			return nil, err
		}

		items = append(items, page...)

		c.log.Debug().Int("start", start).Int("count", len(page)).Msg("fetched items page")

		if len(page) < pageSize {
			break
		}

		time.Sleep(pagePause)
	}

	return items, nil
}
