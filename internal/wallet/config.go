// Package wallet builds the configuration object handed to the front-end
// wallet-connection UI.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
)

var (
	ErrMissingAppName   = errors.New("app name is required")
	ErrMissingProjectID = errors.New("project id is required")
	ErrNoChains         = errors.New("at least one chain is required")
	ErrDuplicateChainID = errors.New("duplicate chain id")
	ErrInvalidChain     = errors.New("invalid chain")
)

// Params are the inputs of GetDefaultConfig.
type Params struct {
	AppName   string
	ProjectID string
	Chains    []types.Chain
	SSR       bool
}

// Config is the wallet configuration object. It is read-only once built and
// safe for concurrent use.
type Config struct {
	appName   string
	projectID string
	chains    []types.Chain
	ssr       bool
}

// GetDefaultConfig validates p and returns the configuration object.
func GetDefaultConfig(p Params) (*Config, error) {
	if p.AppName == "" {
		return nil, ErrMissingAppName
	}
	if p.ProjectID == "" {
		return nil, ErrMissingProjectID
	}
	if len(p.Chains) == 0 {
		return nil, ErrNoChains
	}

	seen := make(map[uint64]string, len(p.Chains))
	chains := make([]types.Chain, 0, len(p.Chains))
	for _, c := range p.Chains {
		if err := validateChain(c); err != nil {
			return nil, err
		}
		if other, exists := seen[c.ID]; exists {
			return nil, fmt.Errorf("%w: %d used by %q and %q", ErrDuplicateChainID, c.ID, other, c.Name)
		}
		seen[c.ID] = c.Name
		chains = append(chains, c.Clone())
	}

	return &Config{
		appName:   p.AppName,
		projectID: p.ProjectID,
		chains:    chains,
		ssr:       p.SSR,
	}, nil
}

func validateChain(c types.Chain) error {
	if c.ID == 0 {
		return fmt.Errorf("%w: %q has no id", ErrInvalidChain, c.Name)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: chain %d has no name", ErrInvalidChain, c.ID)
	}
	if c.NativeCurrency.Symbol == "" {
		return fmt.Errorf("%w: %q has no native currency symbol", ErrInvalidChain, c.Name)
	}

	rpcs := c.DefaultRPC()
	if len(rpcs) == 0 {
		return fmt.Errorf("%w: %q has no default rpc url", ErrInvalidChain, c.Name)
	}
	for _, endpoints := range c.RPCURLs {
		for _, raw := range endpoints.HTTP {
			if err := validateURL(raw, "http", "https"); err != nil {
				return fmt.Errorf("%w: %q rpc url: %v", ErrInvalidChain, c.Name, err)
			}
		}
		for _, raw := range endpoints.WebSocket {
			if err := validateURL(raw, "ws", "wss"); err != nil {
				return fmt.Errorf("%w: %q websocket url: %v", ErrInvalidChain, c.Name, err)
			}
		}
	}

	for _, explorer := range c.BlockExplorers {
		if err := validateURL(explorer.URL, "http", "https"); err != nil {
			return fmt.Errorf("%w: %q explorer url: %v", ErrInvalidChain, c.Name, err)
		}
	}

	return nil
}

func validateURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	for _, scheme := range schemes {
		if u.Scheme == scheme {
			return nil
		}
	}
	return fmt.Errorf("%q has unsupported scheme %q", raw, u.Scheme)
}

func (c *Config) AppName() string {
	return c.appName
}

func (c *Config) ProjectID() string {
	return c.projectID
}

func (c *Config) SSR() bool {
	return c.ssr
}

// Chains returns a copy of the ordered chain list.
func (c *Config) Chains() []types.Chain {
	out := make([]types.Chain, len(c.chains))
	for i, ch := range c.chains {
		out[i] = ch.Clone()
	}
	return out
}

// Chain returns the enabled chain with the given id.
func (c *Config) Chain(id uint64) (types.Chain, bool) {
	for _, ch := range c.chains {
		if ch.ID == id {
			return ch.Clone(), true
		}
	}
	return types.Chain{}, false
}

// ChainIDs returns the ids of the enabled chains in order.
func (c *Config) ChainIDs() []uint64 {
	ids := make([]uint64, len(c.chains))
	for i, ch := range c.chains {
		ids[i] = ch.ID
	}
	return ids
}

type configJSON struct {
	AppName   string        `json:"appName"`
	ProjectID string        `json:"projectId"`
	Chains    []types.Chain `json:"chains"`
	SSR       bool          `json:"ssr"`
}

func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(configJSON{
		AppName:   c.appName,
		ProjectID: c.projectID,
		Chains:    c.chains,
		SSR:       c.ssr,
	})
}
