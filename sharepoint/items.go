package sharepoint

import (
	"context"
	"fmt"
	"net/http"
)

// Fields is the column set of a list item, keyed by the internal SharePoint
// field name.
type Fields map[string]any

// ListItem is a SharePoint list item with its fields expanded.
type ListItem struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

// CreateItem adds an item to a list and returns the identifier assigned by
// SharePoint. Depending on the list, the identifier is reported at the top
// level or inside the expanded fields.
func (c *Client) CreateItem(ctx context.Context, list string, fields Fields) (string, error) {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return "", err
	}

	listID, err := c.ListID(ctx, list)
	if err != nil {
		return "", err
	}

	created := map[string]any{}

	response, err := c.rest.R().
		SetContext(ctx).
		SetBody(map[string]any{"fields": fields}).
		SetResult(&created).
		Post(fmt.Sprintf("/sites/%v/lists/%v/items", siteID, listID))

	if err != nil {
		return "", fmt.Errorf("creating item in %q: %w", list, err)
	}

	if response.StatusCode() != http.StatusCreated {
		return "", fmt.Errorf("creating item in %q: graph returned %s: %s", list, response.Status(), response.Body())
	}

	return createdID(created), nil
}

// CreateItemWithLookup adds an item whose columns include a lookup to a
// parent item. SharePoint mangles lookup column names unpredictably, so the
// candidate internal names are tried in order until one is accepted. Returns
// the created item id, or an error if no candidate works.
func (c *Client) CreateItemWithLookup(ctx context.Context, list string, candidates []string, lookupID string, fields Fields) (string, error) {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return "", err
	}

	listID, err := c.ListID(ctx, list)
	if err != nil {
		return "", err
	}

	for _, candidate := range candidates {
		body := Fields{}
		for k, v := range fields {
			body[k] = v
		}
		body[candidate] = lookupID

		created := map[string]any{}

		response, err := c.rest.R().
			SetContext(ctx).
			SetBody(map[string]any{"fields": body}).
			SetResult(&created).
			Post(fmt.Sprintf("/sites/%v/lists/%v/items", siteID, listID))

		if err != nil {
			return "", fmt.Errorf("creating item in %q: %w", list, err)
		}

		if response.StatusCode() == http.StatusCreated {
			return createdID(created), nil
		}

		c.log.Debug().
			Str("list", list).
			Str("field", candidate).
			Str("status", response.Status()).
			Msg("lookup field rejected, trying next variation")
	}

	return "", fmt.Errorf("creating item in %q: no lookup field variation accepted", list)
}

// Items retrieves every item of a list with its fields expanded, following
// the pagination links until the list is exhausted.
func (c *Client) Items(ctx context.Context, list string) ([]ListItem, error) {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return nil, err
	}

	listID, err := c.ListID(ctx, list)
	if err != nil {
		return nil, err
	}

	items := []ListItem{}
	next := fmt.Sprintf("/sites/%v/lists/%v/items?$expand=fields", siteID, listID)

	for next != "" {
		page := struct {
			Value    []ListItem `json:"value"`
			NextLink string     `json:"@odata.nextLink"`
		}{}

		response, err := c.rest.R().
			SetContext(ctx).
			SetResult(&page).
			Get(next)

		if err != nil {
			return nil, fmt.Errorf("listing items of %q: %w", list, err)
		}

		if response.IsError() {
			return nil, fmt.Errorf("listing items of %q: graph returned %s: %s", list, response.Status(), response.Body())
		}

		items = append(items, page.Value...)
		next = page.NextLink
	}

	c.log.Debug().Str("list", list).Int("count", len(items)).Msg("retrieved list items")

	return items, nil
}

// DeleteItem removes an item from a list.
func (c *Client) DeleteItem(ctx context.Context, list string, itemID string) error {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return err
	}

	listID, err := c.ListID(ctx, list)
	if err != nil {
		return err
	}

	response, err := c.rest.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/sites/%v/lists/%v/items/%v", siteID, listID, itemID))

	if err != nil {
		return fmt.Errorf("deleting item %v from %q: %w", itemID, list, err)
	}

	if response.StatusCode() != http.StatusNoContent {
		return fmt.Errorf("deleting item %v from %q: graph returned %s: %s", itemID, list, response.Status(), response.Body())
	}

	return nil
}

func createdID(created map[string]any) string {
	if id, ok := created["id"]; ok {
		return fmt.Sprintf("%v", id)
	}

	if fields, ok := created["fields"].(map[string]any); ok {
		if id, ok := fields["id"]; ok {
			return fmt.Sprintf("%v", id)
		}

		if id, ok := fields["ID"]; ok {
			return fmt.Sprintf("%v", id)
		}
	}

	return ""
}
