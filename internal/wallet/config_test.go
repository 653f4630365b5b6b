package wallet

import (
	"encoding/json"
	"testing"

	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChain(id uint64, name, rpc string) types.Chain {
	return types.Chain{
		ID:             id,
		Name:           name,
		NativeCurrency: types.NativeCurrency{Name: "Test", Symbol: "TST", Decimals: 18},
		RPCURLs: map[string]types.RPCEndpoints{
			types.DefaultEnvironment: {HTTP: []string{rpc}},
		},
		BlockExplorers: map[string]types.BlockExplorer{
			types.DefaultEnvironment: {Name: "Explorer", URL: "https://explorer.example.com"},
		},
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg, err := GetDefaultConfig(Params{
		AppName:   "Polkacommerce",
		ProjectID: "POLKACOMMERCE",
		Chains: []types.Chain{
			testChain(1287, "one", "https://rpc.one.example.com"),
			testChain(11155111, "two", "https://rpc.two.example.com"),
		},
		SSR: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Polkacommerce", cfg.AppName())
	assert.Equal(t, "POLKACOMMERCE", cfg.ProjectID())
	assert.True(t, cfg.SSR())
	assert.Equal(t, []uint64{1287, 11155111}, cfg.ChainIDs())

	c, ok := cfg.Chain(11155111)
	require.True(t, ok)
	assert.Equal(t, "two", c.Name)

	_, ok = cfg.Chain(1)
	assert.False(t, ok)
}

func TestGetDefaultConfigErrors(t *testing.T) {
	badExplorer := testChain(2, "bad-explorer", "https://rpc.example.com")
	badExplorer.BlockExplorers[types.DefaultEnvironment] = types.BlockExplorer{Name: "x", URL: "not a url"}

	badSocket := testChain(3, "bad-socket", "https://rpc.example.com")
	badSocket.RPCURLs[types.DefaultEnvironment] = types.RPCEndpoints{
		HTTP:      []string{"https://rpc.example.com"},
		WebSocket: []string{"https://rpc.example.com"},
	}

	noRPC := testChain(4, "no-rpc", "https://rpc.example.com")
	noRPC.RPCURLs = nil

	noSymbol := testChain(5, "no-symbol", "https://rpc.example.com")
	noSymbol.NativeCurrency.Symbol = ""

	tests := []struct {
		name     string
		params   Params
		expected error
	}{
		{
			name:     "missing app name",
			params:   Params{ProjectID: "p", Chains: []types.Chain{testChain(1, "a", "https://a.example.com")}},
			expected: ErrMissingAppName,
		},
		{
			name:     "missing project id",
			params:   Params{AppName: "a", Chains: []types.Chain{testChain(1, "a", "https://a.example.com")}},
			expected: ErrMissingProjectID,
		},
		{
			name:     "no chains",
			params:   Params{AppName: "a", ProjectID: "p"},
			expected: ErrNoChains,
		},
		{
			name: "duplicate chain id",
			params: Params{AppName: "a", ProjectID: "p", Chains: []types.Chain{
				testChain(1, "a", "https://a.example.com"),
				testChain(1, "b", "https://b.example.com"),
			}},
			expected: ErrDuplicateChainID,
		},
		{
			name:     "zero chain id",
			params:   Params{AppName: "a", ProjectID: "p", Chains: []types.Chain{testChain(0, "a", "https://a.example.com")}},
			expected: ErrInvalidChain,
		},
		{
			name:     "empty chain name",
			params:   Params{AppName: "a", ProjectID: "p", Chains: []types.Chain{testChain(1, "", "https://a.example.com")}},
			expected: ErrInvalidChain,
		},
		{
			name:     "malformed rpc url",
			params:   Params{AppName: "a", ProjectID: "p", Chains: []types.Chain{testChain(1, "a", "rpc.example.com")}},
			expected: ErrInvalidChain,
		},
		{
			name:     "malformed explorer url",
			params:   Params{AppName: "a", ProjectID: "p", Chains: []types.Chain{badExplorer}},
			expected: ErrInvalidChain,
		},
		{
			name:     "http scheme for websocket",
			params:   Params{AppName: "a", ProjectID: "p", Chains: []types.Chain{badSocket}},
			expected: ErrInvalidChain,
		},
		{
			name:     "no default rpc",
			params:   Params{AppName: "a", ProjectID: "p", Chains: []types.Chain{noRPC}},
			expected: ErrInvalidChain,
		},
		{
			name:     "no currency symbol",
			params:   Params{AppName: "a", ProjectID: "p", Chains: []types.Chain{noSymbol}},
			expected: ErrInvalidChain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := GetDefaultConfig(tt.params)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, cfg)
		})
	}
}

func TestConfigIsImmutable(t *testing.T) {
	input := []types.Chain{testChain(1287, "one", "https://rpc.one.example.com")}
	cfg, err := GetDefaultConfig(Params{AppName: "a", ProjectID: "p", Chains: input})
	require.NoError(t, err)

	input[0].Name = "changed by caller"
	chains := cfg.Chains()
	chains[0].RPCURLs[types.DefaultEnvironment] = types.RPCEndpoints{HTTP: []string{"https://other.example.com"}}

	again := cfg.Chains()
	require.Len(t, again, 1)
	assert.Equal(t, "one", again[0].Name)
	assert.Equal(t, []string{"https://rpc.one.example.com"}, again[0].DefaultRPC())
}

func TestConfigMarshalJSON(t *testing.T) {
	cfg, err := GetDefaultConfig(Params{
		AppName:   "Polkacommerce",
		ProjectID: "POLKACOMMERCE",
		Chains:    []types.Chain{testChain(1287, "Moonbase Alpha", "https://rpc.testnet.moonbeam.network")},
		SSR:       true,
	})
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "Polkacommerce", decoded["appName"])
	assert.Equal(t, "POLKACOMMERCE", decoded["projectId"])
	assert.Equal(t, true, decoded["ssr"])

	chains, ok := decoded["chains"].([]interface{})
	require.True(t, ok)
	require.Len(t, chains, 1)

	first := chains[0].(map[string]interface{})
	assert.Equal(t, float64(1287), first["id"])
	rpcURLs := first["rpcUrls"].(map[string]interface{})
	assert.Contains(t, rpcURLs, "default")
}
