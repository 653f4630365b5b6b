package types

// DefaultEnvironment is the key used in RPCURLs and BlockExplorers for the
// endpoints wallets should use unless told otherwise.
const DefaultEnvironment = "default"

// Chain describes one blockchain network a wallet can connect to.
type Chain struct {
	ID             uint64                   `json:"id" yaml:"id"`
	Name           string                   `json:"name" yaml:"name"`
	IconURL        string                   `json:"iconUrl,omitempty" yaml:"icon_url"`
	IconBackground string                   `json:"iconBackground,omitempty" yaml:"icon_background"`
	NativeCurrency NativeCurrency           `json:"nativeCurrency" yaml:"native_currency"`
	RPCURLs        map[string]RPCEndpoints  `json:"rpcUrls" yaml:"rpc_urls"`
	BlockExplorers map[string]BlockExplorer `json:"blockExplorers,omitempty" yaml:"block_explorers"`
	Testnet        bool                     `json:"testnet,omitempty" yaml:"testnet"`
}

// NativeCurrency is the base asset of a chain.
type NativeCurrency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// RPCEndpoints groups the RPC URLs of one environment by transport.
type RPCEndpoints struct {
	HTTP      []string `json:"http" yaml:"http"`
	WebSocket []string `json:"webSocket,omitempty" yaml:"web_socket"`
}

// BlockExplorer is a human-facing explorer for a chain.
type BlockExplorer struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// DefaultRPC returns the HTTP RPC URLs of the default environment.
func (c Chain) DefaultRPC() []string {
	return c.RPCURLs[DefaultEnvironment].HTTP
}

// DefaultExplorer returns the default block explorer, if any.
func (c Chain) DefaultExplorer() (BlockExplorer, bool) {
	explorer, ok := c.BlockExplorers[DefaultEnvironment]
	return explorer, ok
}

// Clone returns a deep copy of the chain.
func (c Chain) Clone() Chain {
	out := c
	if c.RPCURLs != nil {
		out.RPCURLs = make(map[string]RPCEndpoints, len(c.RPCURLs))
		for env, endpoints := range c.RPCURLs {
			out.RPCURLs[env] = RPCEndpoints{
				HTTP:      append([]string(nil), endpoints.HTTP...),
				WebSocket: append([]string(nil), endpoints.WebSocket...),
			}
		}
	}
	if c.BlockExplorers != nil {
		out.BlockExplorers = make(map[string]BlockExplorer, len(c.BlockExplorers))
		for env, explorer := range c.BlockExplorers {
			out.BlockExplorers[env] = explorer
		}
	}
	return out
}
