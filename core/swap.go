package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// SwapKind shape of the router call
type SwapKind int

const (
	// SwapTokenForToken token -> token
	SwapTokenForToken SwapKind = iota
	// SwapNativeForToken native -> token, payable
	SwapNativeForToken
	// SwapTokenForNative token -> native
	SwapTokenForNative
)

func (k SwapKind) String() string {
	switch k {
	case SwapNativeForToken:
		return "native_to_token"
	case SwapTokenForNative:
		return "token_to_native"
	default:
		return "token_to_token"
	}
}

// Method router method simulated for the kind
func (k SwapKind) Method() ContractMethod {
	switch k {
	case SwapNativeForToken:
		return MethodSwapExactETHForTokens
	case SwapTokenForNative:
		return MethodSwapExactTokensForETH
	default:
		return MethodSwapExactTokensForTokens
	}
}

// SwapRoute direct pair, native legs already substituted by the wrapped token
type SwapRoute struct {
	Path [2]common.Address
	Kind SwapKind
}

// Addresses path as the router expects it
func (r SwapRoute) Addresses() []common.Address {
	return []common.Address{r.Path[0], r.Path[1]}
}

// QuoteStatus outcome of a simulation
type QuoteStatus string

const (
	// QuoteStatusOK the router quoted the pair
	QuoteStatusOK QuoteStatus = "ok"
	// QuoteStatusNoRoute the router could not quote the pair, amounts are zero
	QuoteStatusNoRoute QuoteStatus = "no_route"
)

// SwapRequest simulation input
type SwapRequest struct {
	From     string          `json:"from_token"`
	To       string          `json:"to_token"`
	AmountIn decimal.Decimal `json:"amount_in"`
	// SlippageBps tolerance in basis points, 50 = 0.5%
	SlippageBps int64 `json:"slippage_bps"`
}

// SwapQuote simulation result
type SwapQuote struct {
	Status          QuoteStatus     `json:"status"`
	EstimatedOutput decimal.Decimal `json:"estimated_output"`
	MinimumOutput   decimal.Decimal `json:"minimum_output"`
	Gas             decimal.Decimal `json:"gas"`
}

// NoRouteQuote zero quote for a pair the router can't serve
func NoRouteQuote() *SwapQuote {
	return &SwapQuote{
		Status:          QuoteStatusNoRoute,
		EstimatedOutput: decimal.Zero,
		MinimumOutput:   decimal.Zero,
		Gas:             decimal.Zero,
	}
}

// NoRoute reports whether the quote is the no-route variant
func (q *SwapQuote) NoRoute() bool {
	return q.Status == QuoteStatusNoRoute
}

// ISwapService swap simulation interface
type ISwapService interface {
	Simulate(ctx context.Context, req *SwapRequest) (*SwapQuote, error)
	// SimulateString parse the decimal amount and the slippage percentage first
	SimulateString(ctx context.Context, from, to, amount, slippage string) (*SwapQuote, error)
}
