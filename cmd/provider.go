package cmd

import (
	"fmt"

	"tokenservice/core"
	"tokenservice/service/balance"
	"tokenservice/service/chain"
	"tokenservice/service/price"
	"tokenservice/service/swap"
	"tokenservice/store/asset"

	"github.com/ethereum/go-ethereum/common"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideChain() core.IChainClient {
	c, err := chain.Dial(provideConfig().Chain)
	if err != nil {
		panic(err)
	}

	return c
}

// ---------------store-----------------------------------------

func provideAssetRegistry() core.IAssetRegistry {
	r, err := asset.New(provideConfig().Assets)
	if err != nil {
		panic(err)
	}

	return r
}

// ------------------service------------------------------------

func provideBalanceService(c core.IChainClient, r core.IAssetRegistry) core.IBalanceService {
	return balance.New(c, r)
}

func providePriceService(c core.IChainClient, r core.IAssetRegistry) core.IPriceService {
	return price.New(c, r)
}

func provideSwapService(c core.IChainClient, r core.IAssetRegistry) core.ISwapService {
	cfg := provideConfig()

	return swap.New(c, r, swap.Config{
		Router:   mustAddress("router.address", cfg.Router.Address),
		Wallet:   mustAddress("wallet.address", cfg.Wallet.Address),
		Deadline: cfg.Router.Deadline,
	})
}

func mustAddress(key, v string) common.Address {
	if !core.IsHexAddress(v) {
		panic(fmt.Errorf("%s: invalid address %q", key, v))
	}

	return common.HexToAddress(v)
}
