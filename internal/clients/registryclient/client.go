package registryclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/client"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
)

const (
	defaultMaxRetryTimes = 3
	defaultRetryInterval = 1 * time.Second
)

type Client struct {
	httpClient *http.Client
	cfg        *config.RegistryConfig
}

func NewClient(cfg *config.RegistryConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return c.cfg.Endpoint
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) TotalSupply(ctx context.Context) (uint64, error) {
	type empty struct{}
	type supplyResponse struct {
		TotalSupply uint64 `json:"total_supply"`
	}

	resp, err := retryRead(c.cfg, func() (*supplyResponse, error) {
		opts := &client.HttpClientOptions{Path: "/v1/supply"}
		return client.SendRequest[empty, supplyResponse](ctx, c, http.MethodGet, opts, nil)
	})
	if err != nil {
		return 0, err
	}
	return resp.TotalSupply, nil
}

func (c *Client) OwnerOf(ctx context.Context, unitID uint64) (string, error) {
	type empty struct{}
	type ownerResponse struct {
		Owner string `json:"owner"`
	}

	resp, err := retryRead(c.cfg, func() (*ownerResponse, error) {
		opts := &client.HttpClientOptions{
			Path: fmt.Sprintf("/v1/units/%d/owner", unitID),
		}
		return client.SendRequest[empty, ownerResponse](ctx, c, http.MethodGet, opts, nil)
	})
	if err != nil {
		return "", err
	}
	return resp.Owner, nil
}

// Burn is not retried: it mutates registry state and the caller treats any
// failure as a hard abort of the whole redemption.
func (c *Client) Burn(ctx context.Context, unitID uint64) error {
	type burnRequest struct {
		UnitID uint64 `json:"unit_id"`
	}
	type burnResponse struct {
		Burned bool `json:"burned"`
	}

	opts := &client.HttpClientOptions{Path: "/v1/units/burn"}
	input := &burnRequest{UnitID: unitID}
	resp, err := client.SendRequest[burnRequest, burnResponse](ctx, c, http.MethodPost, opts, input)
	if err != nil {
		return err
	}
	if !resp.Burned {
		return fmt.Errorf("registry refused to burn unit %d", unitID)
	}
	return nil
}

// retryRead wraps idempotent read calls with bounded retries. Mutating
// calls never go through here.
func retryRead[T any](cfg *config.RegistryConfig, f func() (*T, error)) (*T, error) {
	maxRetryTimes := cfg.MaxRetryTimes
	if maxRetryTimes == 0 {
		maxRetryTimes = defaultMaxRetryTimes
	}
	retryInterval := cfg.RetryInterval
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}

	return retry.DoWithData(
		f,
		retry.Attempts(maxRetryTimes),
		retry.Delay(retryInterval),
		retry.LastErrorOnly(true),
	)
}
