package core

import "time"

// Config tokenservice config
type Config struct {
	Chain  Chain        `json:"chain"`
	Wallet Wallet       `json:"wallet"`
	Router Router       `json:"router"`
	Assets AssetsConfig `json:"assets"`
}

// Chain node connection config
type Chain struct {
	RPC            string        `json:"rpc"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

// Wallet the account swaps are simulated for, no keys are held
type Wallet struct {
	Address string `json:"address"`
}

// Router amm router config
type Router struct {
	Address string `json:"address"`
	// Deadline window added to the current time for simulated swaps
	Deadline time.Duration `json:"deadline"`
}

// AssetsConfig seed data of the asset registry
type AssetsConfig struct {
	// Native symbol of the chain's base currency, ETH by default
	Native string `json:"native"`
	// Wrapped symbol of the wrapped native token in Tokens, WETH by default
	Wrapped string `json:"wrapped"`
	// Tokens symbol -> token contract address
	Tokens map[string]string `json:"tokens"`
	// Feeds symbol or feed name -> oracle feed address
	Feeds map[string]string `json:"feeds"`
}
