package swap

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"tokenservice/core"
	"tokenservice/service/chain/stub"
	"tokenservice/store/asset"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	router = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	weth   = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	usdc   = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	dai    = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	wallet = common.HexToAddress("0x000000000000000000000000000000000000dEaD")
)

// recorder keeps the last simulated swap call
type recorder struct {
	*stub.Chain
	last *core.ContractCall
	// amounts overrides the router's getAmountsOut reply when set
	amounts []*big.Int
}

func (r *recorder) SimulateCall(ctx context.Context, call *core.ContractCall) ([]byte, error) {
	r.last = call
	return r.Chain.SimulateCall(ctx, call)
}

func (r *recorder) CallReadOnly(ctx context.Context, call *core.ContractCall) ([]interface{}, error) {
	if r.amounts != nil && call.Method == core.MethodGetAmountsOut {
		return []interface{}{r.amounts}, nil
	}

	return r.Chain.CallReadOnly(ctx, call)
}

func setup(t *testing.T) (*service, *recorder) {
	registry, err := asset.New(core.AssetsConfig{
		Tokens: map[string]string{
			"WETH": weth.Hex(),
			"USDC": usdc.Hex(),
			"DAI":  dai.Hex(),
		},
	})
	require.Nil(t, err)

	chain := stub.New(router)
	chain.AddToken(weth, 18)
	chain.AddToken(usdc, 6)
	chain.AddToken(dai, 18)
	// 1 ETH = 3450 USDC
	chain.SetRate(weth, usdc, big.NewInt(3_450_000_000))
	chain.SetRate(usdc, weth, big.NewInt(289_855_072_463_768))

	rec := &recorder{Chain: chain}
	s := New(rec, registry, Config{Router: router, Wallet: wallet}).(*service)
	return s, rec
}

func TestSimulateNativeForToken(t *testing.T) {
	s, chain := setup(t)

	quote, err := s.SimulateString(context.Background(), "ETH", "USDC", "0.001", "0.5")
	require.Nil(t, err)

	assert.Equal(t, core.QuoteStatusOK, quote.Status)
	assert.Equal(t, "3.45", quote.EstimatedOutput.String())
	assert.Equal(t, "3.43275", quote.MinimumOutput.String())
	assert.True(t, quote.MinimumOutput.LessThanOrEqual(quote.EstimatedOutput))
	assert.True(t, quote.Gas.IsPositive())
	assert.Equal(t, "125000", quote.Gas.String())

	require.NotNil(t, chain.last)
	assert.Equal(t, core.MethodSwapExactETHForTokens, chain.last.Method)
	assert.Equal(t, wallet, chain.last.From)
	assert.Equal(t, "1000000000000000", chain.last.Value.String())
	assert.Equal(t, []common.Address{weth, usdc}, chain.last.Args[1])
}

func TestSimulateTokenForNative(t *testing.T) {
	s, chain := setup(t)

	quote, err := s.SimulateString(context.Background(), "usdc", "eth", "100", "0")
	require.Nil(t, err)

	assert.Equal(t, core.QuoteStatusOK, quote.Status)
	assert.Equal(t, "0.0289855072463768", quote.EstimatedOutput.String())
	assert.True(t, quote.MinimumOutput.Equal(quote.EstimatedOutput), "zero slippage keeps the full output")

	require.NotNil(t, chain.last)
	assert.Equal(t, core.MethodSwapExactTokensForETH, chain.last.Method)
	assert.Nil(t, chain.last.Value)
}

func TestSimulateNoRoute(t *testing.T) {
	s, chain := setup(t)

	quote, err := s.SimulateString(context.Background(), "USDC", "DAI", "10", "1")
	require.Nil(t, err)

	assert.True(t, quote.NoRoute())
	assert.True(t, quote.EstimatedOutput.IsZero())
	assert.True(t, quote.MinimumOutput.IsZero())
	assert.True(t, quote.Gas.IsZero())
	assert.Nil(t, chain.last, "no swap is simulated without a quote")
	assert.NotContains(t, chain.Calls(), core.MethodSwapExactTokensForTokens)
}

func TestSimulateZeroAmount(t *testing.T) {
	s, _ := setup(t)

	quote, err := s.SimulateString(context.Background(), "ETH", "USDC", "0", "0.5")
	require.Nil(t, err)
	assert.True(t, quote.NoRoute())
}

func TestSimulateRejectsInput(t *testing.T) {
	for _, tc := range []struct {
		name     string
		from, to string
		amount   string
		slippage string
		code     core.ErrorCode
	}{
		{"slippage 100", "ETH", "USDC", "1", "100", core.ErrInvalidSlippage},
		{"negative slippage", "ETH", "USDC", "1", "-0.1", core.ErrInvalidSlippage},
		{"malformed slippage", "ETH", "USDC", "1", "abc", core.ErrInvalidSlippage},
		{"negative amount", "ETH", "USDC", "-1", "0.5", core.ErrConversion},
		{"malformed amount", "ETH", "USDC", "one", "0.5", core.ErrConversion},
		{"unknown source", "DOGE", "USDC", "1", "0.5", core.ErrUnknownAsset},
		{"unknown destination", "ETH", "DOGE", "1", "0.5", core.ErrUnknownAsset},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, chain := setup(t)

			_, err := s.SimulateString(context.Background(), tc.from, tc.to, tc.amount, tc.slippage)
			assert.ErrorIs(t, err, tc.code)
			assert.Empty(t, chain.Calls(), "rejected before any remote call")
		})
	}
}

func TestSimulateBpsOutOfRange(t *testing.T) {
	s, chain := setup(t)

	_, err := s.Simulate(context.Background(), &core.SwapRequest{
		From:        "ETH",
		To:          "USDC",
		SlippageBps: 10000,
	})
	assert.ErrorIs(t, err, core.ErrInvalidSlippage)
	assert.Empty(t, chain.Calls())
}

func TestSimulateGasFailure(t *testing.T) {
	s, chain := setup(t)
	chain.GasErr = errors.New("connection refused")

	_, err := s.SimulateString(context.Background(), "ETH", "USDC", "1", "0.5")
	assert.ErrorIs(t, err, core.ErrChainQuery)
}

func TestSimulateRevert(t *testing.T) {
	s, chain := setup(t)
	chain.SimErr = fmt.Errorf("TRANSFER_FROM_FAILED: %w", stub.ErrReverted)

	quote, err := s.SimulateString(context.Background(), "USDC", "ETH", "100", "0.5")
	assert.ErrorIs(t, err, core.ErrChainQuery)
	assert.Nil(t, quote)

	swaps := 0
	for _, m := range chain.Calls() {
		if m == core.MethodSwapExactTokensForETH {
			swaps++
		}
	}
	assert.Equal(t, 1, swaps, "gas is not estimated after a failed simulation")
}

func TestSimulateAmountOverflow(t *testing.T) {
	s, chain := setup(t)

	for _, amount := range []decimal.Decimal{
		decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), 256), 0),
		decimal.New(1, 100_000_000),
	} {
		quote, err := s.Simulate(context.Background(), &core.SwapRequest{
			From:        "ETH",
			To:          "USDC",
			AmountIn:    amount,
			SlippageBps: 50,
		})
		assert.ErrorIs(t, err, core.ErrConversion)
		assert.Nil(t, quote)
	}

	assert.NotContains(t, chain.Calls(), core.MethodGetAmountsOut, "rejected before quoting")
}

func TestSimulateShortAmounts(t *testing.T) {
	s, chain := setup(t)
	chain.amounts = []*big.Int{big.NewInt(1_000_000_000_000_000)}

	quote, err := s.SimulateString(context.Background(), "ETH", "USDC", "0.001", "0.5")
	require.Nil(t, err)
	assert.True(t, quote.NoRoute(), "a reply without the output leg is not a quote")
	assert.Nil(t, chain.last)
}

func TestSimulateDeadline(t *testing.T) {
	s, chain := setup(t)
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	_, err := s.SimulateString(context.Background(), "ETH", "USDC", "1", "0.5")
	require.Nil(t, err)

	require.NotNil(t, chain.last)
	deadline := chain.last.Args[len(chain.last.Args)-1].(*big.Int)
	assert.Equal(t, now.Add(DefaultDeadline).Unix(), deadline.Int64())
}

func TestSimulateByAddress(t *testing.T) {
	s, chain := setup(t)

	quote, err := s.SimulateString(context.Background(), weth.Hex(), "USDC", "1", "1")
	require.Nil(t, err)
	assert.Equal(t, "3450", quote.EstimatedOutput.String())
	assert.Equal(t, "3415.5", quote.MinimumOutput.String())

	require.NotNil(t, chain.last)
	assert.Equal(t, core.MethodSwapExactTokensForTokens, chain.last.Method, "a raw wrapped address is a token leg")

	_, err = s.SimulateString(context.Background(), "0xC02a", "USDC", "1", "1")
	assert.ErrorIs(t, err, core.ErrUnknownAsset)
}
