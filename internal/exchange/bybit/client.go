package bybit

import (
	bybit_api "github.com/bybit-exchange/bybit.go.api"
)

// Client wraps the Bybit HTTP API client.
type Client struct {
	httpClient *bybit_api.Client
	category   string
	testnet    bool
	demo       bool
}

// Config holds the configuration for the Bybit client.
type Config struct {
	APIKey    string
	APISecret string
	Category  string // spot, linear, inverse
	Testnet   bool
	Demo      bool // demo trading environment (paper trading)
}

// NewClient creates a new Bybit client.
func NewClient(config Config) *Client {
	var baseURL string
	if config.Demo {
		baseURL = "https://api-demo.bybit.com"
	} else if config.Testnet {
		baseURL = bybit_api.TESTNET
	} else {
		baseURL = bybit_api.MAINNET
	}

	category := config.Category
	if category == "" {
		category = "spot"
	}

	httpClient := bybit_api.NewBybitHttpClient(
		config.APIKey,
		config.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)

	return &Client{
		httpClient: httpClient,
		category:   category,
		testnet:    config.Testnet,
		demo:       config.Demo,
	}
}

// GetEnvironment returns a string describing the current environment.
func (c *Client) GetEnvironment() string {
	if c.demo {
		return "demo"
	}
	if c.testnet {
		return "testnet"
	}
	return "mainnet"
}
