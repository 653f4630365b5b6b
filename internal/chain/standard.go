package chain

import (
	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
	"github.com/ethereum/go-ethereum/params"
)

func init() {
	// ==========================================================================
	// Mainnets
	// ==========================================================================

	register(Mainnet, evmChain(
		params.MainnetChainConfig.ChainID.Uint64(),
		"Ethereum",
		types.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		"https://eth.merkle.io",
		types.BlockExplorer{Name: "Etherscan", URL: "https://etherscan.io"},
	))

	register(Polygon, evmChain(
		137,
		"Polygon",
		types.NativeCurrency{Name: "POL", Symbol: "POL", Decimals: 18},
		"https://polygon-rpc.com",
		types.BlockExplorer{Name: "PolygonScan", URL: "https://polygonscan.com"},
	))

	register(Optimism, evmChain(
		10,
		"OP Mainnet",
		types.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		"https://mainnet.optimism.io",
		types.BlockExplorer{Name: "Optimism Explorer", URL: "https://optimistic.etherscan.io"},
	))

	register(Arbitrum, evmChain(
		42161,
		"Arbitrum One",
		types.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		"https://arb1.arbitrum.io/rpc",
		types.BlockExplorer{Name: "Arbiscan", URL: "https://arbiscan.io"},
	))

	register(Base, evmChain(
		8453,
		"Base",
		types.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		"https://mainnet.base.org",
		types.BlockExplorer{Name: "Basescan", URL: "https://basescan.org"},
	))

	// ==========================================================================
	// Testnets
	// ==========================================================================

	sepolia := evmChain(
		params.SepoliaChainConfig.ChainID.Uint64(),
		"Sepolia",
		types.NativeCurrency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18},
		"https://sepolia.drpc.org",
		types.BlockExplorer{Name: "Etherscan", URL: "https://sepolia.etherscan.io"},
	)
	sepolia.Testnet = true
	register(Sepolia, sepolia)
}

func evmChain(id uint64, name string, currency types.NativeCurrency, rpc string, explorer types.BlockExplorer) types.Chain {
	return types.Chain{
		ID:             id,
		Name:           name,
		NativeCurrency: currency,
		RPCURLs: map[string]types.RPCEndpoints{
			types.DefaultEnvironment: {HTTP: []string{rpc}},
		},
		BlockExplorers: map[string]types.BlockExplorer{
			types.DefaultEnvironment: explorer,
		},
	}
}
