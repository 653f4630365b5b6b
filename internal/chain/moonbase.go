package chain

import "github.com/0xPuncker/polkacommerce-wallet/pkg/types"

// Moonbase Alpha is Moonbeam's public test network. The wallet library has
// no built-in descriptor for it.
func init() {
	register(MoonbaseAlpha, types.Chain{
		ID:             1287,
		Name:           "Moonbase Alpha",
		IconURL:        "https://s2.coinmarketcap.com/static/img/coins/64x64/31208.png",
		IconBackground: "#fff",
		NativeCurrency: types.NativeCurrency{Name: "Develop", Symbol: "DEV", Decimals: 18},
		RPCURLs: map[string]types.RPCEndpoints{
			types.DefaultEnvironment: {HTTP: []string{"https://rpc.testnet.moonbeam.network"}},
		},
		BlockExplorers: map[string]types.BlockExplorer{
			types.DefaultEnvironment: {Name: "Explorer", URL: "https://moonbase.moonscan.io/"},
		},
	})
}
