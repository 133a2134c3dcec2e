package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/captainpacket/fwd/internal/models"
)

// Client talks to the Forward Enterprise inventory API over HTTPS with
// basic auth.
type Client struct {
	BaseURL   string // e.g. "https://fwd.app"
	NetworkID string
	Username  string
	Password  string

	HTTPClient *http.Client
}

// NewClient builds an inventory API client for the given host and network.
func NewClient(appHost, networkID, username, password string) *Client {
	return &Client{
		BaseURL:    "https://" + appHost,
		NetworkID:  networkID,
		Username:   username,
		Password:   password,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.Username, c.Password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.HTTPClient.Do(req)
}

// GetProxy looks up the network's proxy server. A JSON null response means
// no proxy is configured and returns (nil, nil).
func (c *Client) GetProxy(ctx context.Context) (*models.ProxyDescriptor, error) {
	url := fmt.Sprintf("%s/api/networks/%s/proxy", c.BaseURL, c.NetworkID)
	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var proxy *models.ProxyDescriptor
	if err := json.Unmarshal(data, &proxy); err != nil {
		return nil, fmt.Errorf("decode proxy response: %w", err)
	}
	return proxy, nil
}

// DeleteCloudAccount removes the inventory entry for the given setup ID.
// A 404 is fine: there is nothing to remove on a first run.
func (c *Client) DeleteCloudAccount(ctx context.Context, setupID string) error {
	url := fmt.Sprintf("%s/api/networks/%s/cloudAccounts/%s", c.BaseURL, c.NetworkID, setupID)
	resp, err := c.do(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("DELETE %s: status %d", url, resp.StatusCode)
	}
	return nil
}

// PostCloudAccount creates the inventory entry from the payload.
func (c *Client) PostCloudAccount(ctx context.Context, payload *models.CloudAccountPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/networks/%s/cloudAccounts", c.BaseURL, c.NetworkID)
	resp, err := c.do(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s: status %d", url, resp.StatusCode)
	}
	return nil
}
