package sharepoint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2/clientcredentials"
)

// GraphURL is the Microsoft Graph v1.0 endpoint.
const GraphURL = "https://graph.microsoft.com/v1.0"

// Credentials are the Azure AD application credentials used for the client
// credentials grant against the tenant.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Client wraps the Microsoft Graph API for a single SharePoint site. Site
// and list identifiers are resolved once and cached for the lifetime of
// the client, and the bearer token is refreshed automatically.
type Client struct {
	rest    *resty.Client
	siteURL string
	log     zerolog.Logger

	guard  sync.Mutex
	siteID string
	lists  map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternative Graph endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.rest.SetBaseURL(url)
	}
}

// WithHTTPClient replaces the OAuth2 transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		base := c.rest.BaseURL

		c.rest = resty.NewWithClient(client).
			SetBaseURL(base).
			SetHeader("Accept", "application/json")
	}
}

func NewClient(ctx context.Context, credentials Credentials, siteURL string, log zerolog.Logger, options ...Option) (*Client, error) {
	if credentials.TenantID == "" || credentials.ClientID == "" || credentials.ClientSecret == "" {
		return nil, fmt.Errorf("missing Azure AD credentials")
	}

	config := clientcredentials.Config{
		ClientID:     credentials.ClientID,
		ClientSecret: credentials.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%v/oauth2/v2.0/token", credentials.TenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	rest := resty.NewWithClient(config.Client(ctx)).
		SetBaseURL(GraphURL).
		SetHeader("Accept", "application/json")

	client := Client{
		rest:    rest,
		siteURL: siteURL,
		log:     log,
		lists:   map[string]string{},
	}

	for _, option := range options {
		option(&client)
	}

	return &client, nil
}

// SiteID resolves the Graph site identifier for the configured site URL.
func (c *Client) SiteID(ctx context.Context) (string, error) {
	c.guard.Lock()
	defer c.guard.Unlock()

	if c.siteID != "" {
		return c.siteID, nil
	}

	parsed, err := url.Parse(c.siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site URL %q: %w", c.siteURL, err)
	}

	path := strings.Trim(parsed.Path, "/")

	site := struct {
		ID string `json:"id"`
	}{}

	response, err := c.rest.R().
		SetContext(ctx).
		SetResult(&site).
		Get(fmt.Sprintf("/sites/%v:/%v?$select=id", parsed.Hostname(), path))

	if err != nil {
		return "", fmt.Errorf("resolving site id: %w", err)
	}

	if response.IsError() {
		return "", fmt.Errorf("resolving site id: graph returned %s: %s", response.Status(), response.Body())
	}

	c.siteID = site.ID
	c.log.Debug().Str("site-id", c.siteID).Msg("resolved SharePoint site")

	return c.siteID, nil
}

// ListID resolves the identifier of a list by display name.
func (c *Client) ListID(ctx context.Context, name string) (string, error) {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return "", err
	}

	c.guard.Lock()
	defer c.guard.Unlock()

	if id, ok := c.lists[name]; ok {
		return id, nil
	}

	result := struct {
		Value []struct {
			ID string `json:"id"`
		} `json:"value"`
	}{}

	response, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("$filter", fmt.Sprintf("displayName eq '%v'", name)).
		SetResult(&result).
		Get(fmt.Sprintf("/sites/%v/lists", siteID))

	if err != nil {
		return "", fmt.Errorf("resolving list %q: %w", name, err)
	}

	if response.IsError() {
		return "", fmt.Errorf("resolving list %q: graph returned %s: %s", name, response.Status(), response.Body())
	}

	if len(result.Value) == 0 {
		return "", fmt.Errorf("list %q not found on site", name)
	}

	c.lists[name] = result.Value[0].ID

	return result.Value[0].ID, nil
}
