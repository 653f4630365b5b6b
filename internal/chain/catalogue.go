// Package chain holds the chain descriptors wallets can be offered: the
// custom Moonbase Alpha network and the standard networks shipped with the
// wallet library. All values are hardcoded here.
package chain

import (
	"fmt"
	"sort"

	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
)

// Catalogue keys.
const (
	MoonbaseAlpha = "moonbasealpha"
	Mainnet       = "mainnet"
	Polygon       = "polygon"
	Optimism      = "optimism"
	Arbitrum      = "arbitrum"
	Base          = "base"
	Sepolia       = "sepolia"
)

var (
	catalogue = make(map[string]types.Chain)
	byID      = make(map[uint64]string)
)

func register(name string, c types.Chain) {
	if _, exists := catalogue[name]; exists {
		panic(fmt.Sprintf("chain %s registered twice", name))
	}
	if other, exists := byID[c.ID]; exists {
		panic(fmt.Sprintf("chain id %d already registered by %s", c.ID, other))
	}
	catalogue[name] = c
	byID[c.ID] = name
}

// Lookup returns a copy of the named chain.
func Lookup(name string) (types.Chain, bool) {
	c, ok := catalogue[name]
	if !ok {
		return types.Chain{}, false
	}
	return c.Clone(), true
}

// LookupByID returns a copy of the chain registered under id.
func LookupByID(id uint64) (types.Chain, bool) {
	name, ok := byID[id]
	if !ok {
		return types.Chain{}, false
	}
	return Lookup(name)
}

// NameOf returns the catalogue key of the chain with the given id.
func NameOf(id uint64) (string, bool) {
	name, ok := byID[id]
	return name, ok
}

// Names returns every catalogue key in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Custom returns the Moonbase Alpha descriptor.
func Custom() types.Chain {
	c, _ := Lookup(MoonbaseAlpha)
	return c
}

// TestnetChain returns the test network appended when testnets are enabled.
func TestnetChain() types.Chain {
	c, _ := Lookup(Sepolia)
	return c
}
