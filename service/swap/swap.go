package swap

import (
	"context"
	"math/big"
	"time"

	"tokenservice/core"
	"tokenservice/internal/contracts"
	"tokenservice/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultDeadline window added to now for the simulated swap deadline
const DefaultDeadline = 600 * time.Second

// Config swap service config
type Config struct {
	Router common.Address
	// Wallet sender and recipient of the simulated swap
	Wallet   common.Address
	Deadline time.Duration
}

type service struct {
	chain    core.IChainClient
	registry core.IAssetRegistry
	cfg      Config
	now      func() time.Time
}

// New new swap simulation service
func New(chain core.IChainClient, registry core.IAssetRegistry, cfg Config) core.ISwapService {
	if cfg.Deadline <= 0 {
		cfg.Deadline = DefaultDeadline
	}

	return &service{
		chain:    chain,
		registry: registry,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *service) SimulateString(ctx context.Context, from, to, amount, slippage string) (*core.SwapQuote, error) {
	bps, err := number.ParseSlippage(slippage)
	if err != nil {
		return nil, err
	}

	amountIn, err := number.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	return s.Simulate(ctx, &core.SwapRequest{
		From:        from,
		To:          to,
		AmountIn:    amountIn,
		SlippageBps: bps,
	})
}

func (s *service) Simulate(ctx context.Context, req *core.SwapRequest) (*core.SwapQuote, error) {
	if req.SlippageBps < 0 || req.SlippageBps >= number.BasisPoints {
		return nil, core.ErrInvalidSlippage.Errorf("%d bps out of range [0, %d)", req.SlippageBps, number.BasisPoints)
	}

	if req.AmountIn.IsNegative() {
		return nil, core.ErrConversion.Errorf("negative amount")
	}

	route, err := s.route(req.From, req.To)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).WithField("service", "swap").WithField("kind", route.Kind.String())

	fromDecimals, toDecimals, err := s.decimals(ctx, route)
	if err != nil {
		return nil, err
	}

	amountIn, err := number.ToScaled(req.AmountIn, fromDecimals)
	if err != nil {
		return nil, err
	}

	estimated, ok := s.quote(ctx, route, amountIn)
	if !ok {
		log.Infof("no route for %s -> %s", req.From, req.To)
		return core.NoRouteQuote(), nil
	}

	minimum := number.ApplySlippage(estimated, req.SlippageBps)

	call := contracts.Swap(contracts.SwapParams{
		Router:       s.cfg.Router,
		Sender:       s.cfg.Wallet,
		Recipient:    s.cfg.Wallet,
		AmountIn:     amountIn,
		AmountOutMin: minimum,
		Route:        route,
		Deadline:     big.NewInt(s.now().Add(s.cfg.Deadline).Unix()),
	})

	if _, err := s.chain.SimulateCall(ctx, call); err != nil {
		return nil, core.ChainError(err, "simulate "+string(call.Method))
	}

	gas, err := s.chain.EstimateGas(ctx, call)
	if err != nil {
		return nil, core.ChainError(err, "estimate gas "+string(call.Method))
	}

	log.Debugf("amount in %s, estimated %s, minimum %s, gas %d", amountIn, estimated, minimum, gas)

	return &core.SwapQuote{
		Status:          core.QuoteStatusOK,
		EstimatedOutput: number.FromScaled(estimated, toDecimals),
		MinimumOutput:   number.FromScaled(minimum, toDecimals),
		Gas:             decimal.NewFromBigInt(new(big.Int).SetUint64(gas), 0),
	}, nil
}

// route resolve both legs, native legs route through the wrapped token
func (s *service) route(from, to string) (core.SwapRoute, error) {
	src, err := core.ResolveAsset(s.registry, from)
	if err != nil {
		return core.SwapRoute{}, err
	}

	dst, err := core.ResolveAsset(s.registry, to)
	if err != nil {
		return core.SwapRoute{}, err
	}

	route := core.SwapRoute{Kind: core.SwapTokenForToken}
	switch {
	case src.Native:
		route.Kind = core.SwapNativeForToken
	case dst.Native:
		route.Kind = core.SwapTokenForNative
	}

	route.Path = [2]common.Address{s.routingAddress(src), s.routingAddress(dst)}
	return route, nil
}

func (s *service) routingAddress(a core.AssetAddress) common.Address {
	if a.Native {
		return s.registry.Wrapped()
	}

	return a.Address
}

// decimals of both legs, read concurrently
func (s *service) decimals(ctx context.Context, route core.SwapRoute) (uint8, uint8, error) {
	var scales [2]uint8

	g, child := errgroup.WithContext(ctx)
	for idx := range route.Path {
		idx := idx
		g.Go(func() error {
			out, err := s.chain.CallReadOnly(child, contracts.Decimals(route.Path[idx]))
			if err != nil {
				return core.ChainError(err, "read decimals of "+route.Path[idx].Hex())
			}

			scales[idx], err = contracts.DecodeDecimals(out)
			return core.ChainError(err, "decode decimals")
		})
	}

	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	return scales[0], scales[1], nil
}

// quote router getAmountsOut; any failure means the pair has no route
func (s *service) quote(ctx context.Context, route core.SwapRoute, amountIn *big.Int) (*big.Int, bool) {
	log := logger.FromContext(ctx).WithField("service", "swap")

	out, err := s.chain.CallReadOnly(ctx, contracts.GetAmountsOut(s.cfg.Router, amountIn, route.Addresses()))
	if err != nil {
		log.WithError(err).Debugln("getAmountsOut failed")
		return nil, false
	}

	// one amount per path hop, the first echoes amountIn
	amounts, err := contracts.DecodeAmounts(out)
	if err != nil || len(amounts) < 2 {
		log.WithError(err).Debugf("getAmountsOut returned %d amounts", len(amounts))
		return nil, false
	}

	estimated := amounts[len(amounts)-1]
	if estimated == nil {
		return nil, false
	}

	return estimated, true
}
