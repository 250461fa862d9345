package price

import (
	"context"
	"math/big"

	"tokenservice/core"
	"tokenservice/internal/contracts"
	"tokenservice/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// PriceService oracle price service
type PriceService struct {
	chain    core.IChainClient
	registry core.IAssetRegistry
	sf       *singleflight.Group
}

// New new oracle price service
func New(chain core.IChainClient, registry core.IAssetRegistry) core.IPriceService {
	return &PriceService{
		chain:    chain,
		registry: registry,
		sf:       &singleflight.Group{},
	}
}

// GetPrice get the latest price of token from its oracle feed
func (s *PriceService) GetPrice(ctx context.Context, token string) (decimal.Decimal, error) {
	if token == "" {
		token = s.registry.NativeSymbol()
	}

	feed, err := s.resolveFeed(token)
	if err != nil {
		return decimal.Zero, err
	}

	log := logger.FromContext(ctx).WithField("service", "price").WithField("feed", feed.Hex())

	// concurrent reads of the same feed share one round trip. The shared
	// fetch must outlive any single caller; the chain client bounds it with
	// its own per-call timeout.
	ch := s.sf.DoChan(feed.Hex(), func() (interface{}, error) {
		return s.fetchPrice(context.WithoutCancel(ctx), feed)
	})

	select {
	case <-ctx.Done():
		return decimal.Zero, core.ChainError(ctx.Err(), "read price")
	case r := <-ch:
		if r.Err != nil {
			return decimal.Zero, r.Err
		}

		price := r.Val.(decimal.Decimal)
		log.WithField("shared", r.Shared).Debugf("%s price %s", token, price)
		return price, nil
	}
}

// NativePrice price of the native asset
func (s *PriceService) NativePrice(ctx context.Context) (decimal.Decimal, error) {
	return s.GetPrice(ctx, "")
}

// resolveFeed a raw address is used directly, anything else goes through the registry
func (s *PriceService) resolveFeed(token string) (common.Address, error) {
	switch {
	case core.IsHexAddress(token):
		return common.HexToAddress(token), nil
	case core.HasHexPrefix(token):
		return common.Address{}, core.ErrUnknownFeed.Errorf("malformed feed address %q", token)
	default:
		return s.registry.ResolveFeed(token)
	}
}

func (s *PriceService) fetchPrice(ctx context.Context, addr common.Address) (decimal.Decimal, error) {
	out, err := s.chain.CallReadOnly(ctx, contracts.LatestRoundData(addr))
	if err != nil {
		return decimal.Zero, core.ChainError(err, "read latestRoundData")
	}

	answer, err := contracts.DecodeAnswer(out)
	if err != nil {
		return decimal.Zero, core.ChainError(err, "decode latestRoundData")
	}

	feed, err := s.readFeed(ctx, addr)
	if err != nil {
		return decimal.Zero, err
	}

	// negative answers are a legitimate oracle signal and pass through
	return decodeAnswer(answer, feed), nil
}

// readFeed fetch the feed's own scale, oracles commonly use 8 but not always
func (s *PriceService) readFeed(ctx context.Context, addr common.Address) (core.Feed, error) {
	out, err := s.chain.CallReadOnly(ctx, contracts.Decimals(addr))
	if err != nil {
		return core.Feed{}, core.ChainError(err, "read feed decimals")
	}

	decimals, err := contracts.DecodeDecimals(out)
	if err != nil {
		return core.Feed{}, core.ChainError(err, "decode feed decimals")
	}

	return core.Feed{Address: addr, Decimals: decimals}, nil
}

func decodeAnswer(answer *big.Int, feed core.Feed) decimal.Decimal {
	return number.FromScaled(answer, feed.Decimals)
}
