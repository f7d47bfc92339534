package proposalclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/client"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

const (
	defaultMaxRetryTimes = 3
	defaultRetryInterval = 1 * time.Second
)

type Client struct {
	httpClient *http.Client
	cfg        *config.ProposalConfig
}

func NewClient(cfg *config.ProposalConfig) *Client {
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

func (c *Client) ProposalCount(ctx context.Context) (uint64, error) {
	type empty struct{}
	type countResponse struct {
		Count uint64 `json:"count"`
	}

	resp, err := retryRead(c.cfg, func() (*countResponse, error) {
		opts := &client.HttpClientOptions{Path: "/v1/proposals/count"}
		return client.SendRequest[empty, countResponse](ctx, c, http.MethodGet, opts, nil)
	})
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *Client) State(ctx context.Context, index uint64) (types.ProposalState, error) {
	type empty struct{}
	type stateResponse struct {
		State string `json:"state"`
	}

	resp, err := retryRead(c.cfg, func() (*stateResponse, error) {
		opts := &client.HttpClientOptions{
			Path: fmt.Sprintf("/v1/proposals/%d/state", index),
		}
		return client.SendRequest[empty, stateResponse](ctx, c, http.MethodGet, opts, nil)
	})
	if err != nil {
		return "", err
	}
	return types.ProposalState(resp.State), nil
}

func (c *Client) GetActions(ctx context.Context, index uint64) (*ProposalActions, error) {
	type empty struct{}
	type actionsResponse struct {
		Targets    []string `json:"targets"`
		Values     []string `json:"values"`
		Signatures []string `json:"signatures"`
		Datas      [][]byte `json:"datas"`
	}

	resp, err := retryRead(c.cfg, func() (*actionsResponse, error) {
		opts := &client.HttpClientOptions{
			Path: fmt.Sprintf("/v1/proposals/%d/actions", index),
		}
		return client.SendRequest[empty, actionsResponse](ctx, c, http.MethodGet, opts, nil)
	})
	if err != nil {
		return nil, err
	}

	values := make([]sdkmath.Int, 0, len(resp.Values))
	for _, raw := range resp.Values {
		value, ok := sdkmath.NewIntFromString(raw)
		if !ok {
			return nil, fmt.Errorf("proposal %d has malformed action value %q", index, raw)
		}
		values = append(values, value)
	}

	return &ProposalActions{
		Targets:    resp.Targets,
		Values:     values,
		Signatures: resp.Signatures,
		Datas:      resp.Datas,
	}, nil
}

func retryRead[T any](cfg *config.ProposalConfig, f func() (*T, error)) (*T, error) {
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
