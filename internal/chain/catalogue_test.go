package chain

import (
	"testing"

	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllChainsRegistered(t *testing.T) {
	expected := []string{Arbitrum, Base, Mainnet, MoonbaseAlpha, Optimism, Polygon, Sepolia}
	assert.Equal(t, expected, Names())
}

func TestMoonbaseAlpha(t *testing.T) {
	c := Custom()

	assert.Equal(t, uint64(1287), c.ID)
	assert.Equal(t, "Moonbase Alpha", c.Name)
	assert.Equal(t, "#fff", c.IconBackground)
	assert.Equal(t, types.NativeCurrency{Name: "Develop", Symbol: "DEV", Decimals: 18}, c.NativeCurrency)
	assert.Equal(t, []string{"https://rpc.testnet.moonbeam.network"}, c.DefaultRPC())

	explorer, ok := c.DefaultExplorer()
	require.True(t, ok)
	assert.Equal(t, "https://moonbase.moonscan.io/", explorer.URL)
}

func TestChainIDsMatchGethParams(t *testing.T) {
	mainnet, ok := Lookup(Mainnet)
	require.True(t, ok)
	assert.Equal(t, params.MainnetChainConfig.ChainID.Uint64(), mainnet.ID)

	sepolia := TestnetChain()
	assert.Equal(t, params.SepoliaChainConfig.ChainID.Uint64(), sepolia.ID)
	assert.True(t, sepolia.Testnet)
}

func TestLookupByID(t *testing.T) {
	tests := []struct {
		id       uint64
		expected string
		found    bool
	}{
		{1287, MoonbaseAlpha, true},
		{137, Polygon, true},
		{10, Optimism, true},
		{42161, Arbitrum, true},
		{8453, Base, true},
		{11155111, Sepolia, true},
		{999999, "", false},
	}

	for _, tt := range tests {
		c, ok := LookupByID(tt.id)
		assert.Equal(t, tt.found, ok, "id %d", tt.id)
		if !tt.found {
			continue
		}
		name, _ := NameOf(tt.id)
		assert.Equal(t, tt.expected, name)
		assert.Equal(t, tt.id, c.ID)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	c := Custom()
	c.Name = "mutated"
	c.RPCURLs[types.DefaultEnvironment] = types.RPCEndpoints{HTTP: []string{"http://evil"}}

	fresh := Custom()
	assert.Equal(t, "Moonbase Alpha", fresh.Name)
	assert.Equal(t, []string{"https://rpc.testnet.moonbeam.network"}, fresh.DefaultRPC())
}

func TestOnlySepoliaIsTestnet(t *testing.T) {
	for _, name := range Names() {
		c, _ := Lookup(name)
		if name == Sepolia {
			assert.True(t, c.Testnet)
			continue
		}
		assert.False(t, c.Testnet, "%s should not be flagged as testnet", name)
	}
}
