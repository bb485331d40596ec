package alegra

import (
	"context"
)

// Accounts retrieves the full chart of accounts as a flat list. The plain
// format returns every account with an idParent reference instead of the
// default nested tree.
func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	accounts := []Account{}

	query := map[string]string{
		"format": "plain",
	}

	if err := c.get(ctx, "/categories", query, &accounts); err != nil {
		return nil, err
	}

	c.log.Debug().Int("count", len(accounts)).Msg("fetched chart of accounts")

	return accounts, nil
}
