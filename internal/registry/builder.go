// Package registry assembles the ordered chain list offered to wallets and
// turns it into the wallet configuration object.
package registry

import (
	"errors"
	"fmt"

	"github.com/0xPuncker/polkacommerce-wallet/internal/chain"
	"github.com/0xPuncker/polkacommerce-wallet/internal/wallet"
	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
)

const (
	AppName   = "Polkacommerce"
	ProjectID = "POLKACOMMERCE"

	// EnableTestnetsEnv is read once at start-up; only the exact value
	// "true" enables the test network.
	EnableTestnetsEnv = "NEXT_PUBLIC_ENABLE_TESTNETS"
)

var (
	ErrUnknownChain   = errors.New("unknown chain")
	ErrTestnetEnabled = errors.New("testnets are only enabled through " + EnableTestnetsEnv)
	ErrDuplicateChain = errors.New("chain listed more than once")
)

// Options select what goes into the chain list beyond the custom network.
type Options struct {
	// EnableTestnets appends the test network as the last chain.
	EnableTestnets bool
	// Enabled names extra library chains, in order, placed after the
	// custom network. Polygon, Optimism, Arbitrum and Base are available
	// but ship disabled.
	Enabled []string
}

// TestnetsEnabled interprets the value of EnableTestnetsEnv.
func TestnetsEnabled(value string) bool {
	return value == "true"
}

// Chains returns the ordered chain list for opts. The custom network is
// always first, so the list is never empty.
func Chains(opts Options) ([]types.Chain, error) {
	chains := []types.Chain{chain.Custom()}
	listed := map[string]bool{chain.MoonbaseAlpha: true}

	for _, name := range opts.Enabled {
		if listed[name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChain, name)
		}
		c, ok := chain.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownChain, name)
		}
		if c.Testnet {
			return nil, fmt.Errorf("%w: %s", ErrTestnetEnabled, name)
		}
		listed[name] = true
		chains = append(chains, c)
	}

	if opts.EnableTestnets {
		chains = append(chains, chain.TestnetChain())
	}

	return chains, nil
}

// Build produces the wallet configuration object. Validation errors from
// the wallet package are returned wrapped but otherwise unchanged.
func Build(opts Options) (*wallet.Config, error) {
	chains, err := Chains(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := wallet.GetDefaultConfig(wallet.Params{
		AppName:   AppName,
		ProjectID: ProjectID,
		Chains:    chains,
		SSR:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build wallet config: %w", err)
	}

	return cfg, nil
}
