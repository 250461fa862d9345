package balance

import (
	"context"
	"math/big"

	"tokenservice/core"
	"tokenservice/internal/contracts"
	"tokenservice/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type service struct {
	chain    core.IChainClient
	registry core.IAssetRegistry
}

// New new balance service
func New(chain core.IChainClient, registry core.IAssetRegistry) core.IBalanceService {
	return &service{
		chain:    chain,
		registry: registry,
	}
}

func (s *service) GetBalance(ctx context.Context, owner common.Address, asset string) (decimal.Decimal, error) {
	target, err := s.resolve(asset)
	if err != nil {
		return decimal.Zero, err
	}

	log := logger.FromContext(ctx).WithField("service", "balance").WithField("asset", target.String())

	if target.Native {
		wei, err := s.chain.NativeBalance(ctx, owner)
		if err != nil {
			return decimal.Zero, core.ChainError(err, "read native balance")
		}

		log.Debugf("native balance of %s: %s", owner.Hex(), wei)
		return number.FromScaled(wei, core.NativeDecimals), nil
	}

	var (
		raw      = new(balanceRead)
		g, child = errgroup.WithContext(ctx)
	)

	g.Go(func() error {
		out, err := s.chain.CallReadOnly(child, contracts.BalanceOf(target.Address, owner))
		if err != nil {
			return core.ChainError(err, "read balanceOf")
		}

		raw.value, err = contracts.DecodeUint256(out)
		return core.ChainError(err, "decode balanceOf")
	})

	g.Go(func() error {
		out, err := s.chain.CallReadOnly(child, contracts.Decimals(target.Address))
		if err != nil {
			return core.ChainError(err, "read decimals")
		}

		raw.decimals, err = contracts.DecodeDecimals(out)
		return core.ChainError(err, "decode decimals")
	})

	if err := g.Wait(); err != nil {
		return decimal.Zero, err
	}

	log.Debugf("token balance of %s: %s (decimals %d)", owner.Hex(), raw.value, raw.decimals)
	return number.FromScaled(raw.value, raw.decimals), nil
}

type balanceRead struct {
	value    *big.Int
	decimals uint8
}

// resolve an empty asset to native
func (s *service) resolve(asset string) (core.AssetAddress, error) {
	if asset == "" {
		return core.NativeAsset, nil
	}

	return core.ResolveAsset(s.registry, asset)
}
