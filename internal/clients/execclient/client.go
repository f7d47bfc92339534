package execclient

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/client"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.ExecConfig
}

func NewClient(cfg *config.ExecConfig) *Client {
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

// Invoke is never retried: the backend applies it atomically and a retry
// after an ambiguous failure could double-execute.
func (c *Client) Invoke(ctx context.Context, target string, value sdkmath.Int, payload []byte) ([]byte, error) {
	type invokeRequest struct {
		Target  string `json:"target"`
		Value   string `json:"value"`
		Payload string `json:"payload"`
	}
	type invokeResponse struct {
		Success    bool   `json:"success"`
		ReturnData string `json:"return_data"`
	}

	input := &invokeRequest{
		Target:  target,
		Value:   value.String(),
		Payload: hex.EncodeToString(payload),
	}
	opts := &client.HttpClientOptions{Path: "/v1/invoke"}
	resp, err := client.SendRequest[invokeRequest, invokeResponse](ctx, c, http.MethodPost, opts, input)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("invocation of %s reverted", target)
	}

	returnData, err := hex.DecodeString(resp.ReturnData)
	if err != nil {
		return nil, fmt.Errorf("malformed return data from %s: %w", target, err)
	}
	return returnData, nil
}

func (c *Client) Balance(ctx context.Context, account string) (sdkmath.Int, error) {
	type empty struct{}
	type balanceResponse struct {
		Balance string `json:"balance"`
	}

	opts := &client.HttpClientOptions{
		Path: fmt.Sprintf("/v1/accounts/%s/balance", account),
	}
	resp, err := client.SendRequest[empty, balanceResponse](ctx, c, http.MethodGet, opts, nil)
	if err != nil {
		return sdkmath.Int{}, err
	}

	balance, ok := sdkmath.NewIntFromString(resp.Balance)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("malformed balance %q for account %s", resp.Balance, account)
	}
	return balance, nil
}
