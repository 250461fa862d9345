// Package stub is an in-memory chain used by tests. It answers the closed
// contract method set with the same output shapes abi decoding produces and
// records every remote call it receives.
package stub

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"tokenservice/core"

	"github.com/ethereum/go-ethereum/common"
)

// ErrReverted returned for calls the chain can't serve
var ErrReverted = errors.New("execution reverted")

type token struct {
	decimals uint8
	balances map[common.Address]*big.Int
}

type feed struct {
	decimals uint8
	answer   *big.Int
}

// Chain in-memory chain
type Chain struct {
	mux sync.Mutex

	native map[common.Address]*big.Int
	tokens map[common.Address]*token
	feeds  map[common.Address]*feed
	// rates pair -> output per whole unit of input, scaled by output decimals
	rates map[[2]common.Address]*big.Int

	Router common.Address
	Gas    uint64
	// GasErr makes EstimateGas fail
	GasErr error
	// SimErr makes SimulateCall fail
	SimErr error

	calls []core.ContractMethod
}

// New empty chain with a router at router
func New(router common.Address) *Chain {
	return &Chain{
		native: map[common.Address]*big.Int{},
		tokens: map[common.Address]*token{},
		feeds:  map[common.Address]*feed{},
		rates:  map[[2]common.Address]*big.Int{},
		Router: router,
		Gas:    125000,
	}
}

// SetNative set the native balance of owner
func (c *Chain) SetNative(owner common.Address, wei *big.Int) {
	c.native[owner] = wei
}

// AddToken deploy a token with decimals
func (c *Chain) AddToken(addr common.Address, decimals uint8) {
	c.tokens[addr] = &token{decimals: decimals, balances: map[common.Address]*big.Int{}}
}

// SetTokenBalance set the token balance of owner
func (c *Chain) SetTokenBalance(addr, owner common.Address, v *big.Int) {
	c.tokens[addr].balances[owner] = v
}

// AddFeed deploy an oracle feed
func (c *Chain) AddFeed(addr common.Address, decimals uint8, answer *big.Int) {
	c.feeds[addr] = &feed{decimals: decimals, answer: answer}
}

// SetRate add liquidity for from -> to; rate is the output for one whole
// unit of from, in to's smallest unit
func (c *Chain) SetRate(from, to common.Address, rate *big.Int) {
	c.rates[[2]common.Address{from, to}] = rate
}

// Calls methods called so far, native balance reads are recorded as "eth_getBalance"
func (c *Chain) Calls() []core.ContractMethod {
	c.mux.Lock()
	defer c.mux.Unlock()

	return append([]core.ContractMethod(nil), c.calls...)
}

func (c *Chain) record(m core.ContractMethod) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.calls = append(c.calls, m)
}

func (c *Chain) NativeBalance(ctx context.Context, owner common.Address) (*big.Int, error) {
	c.record("eth_getBalance")

	if v, ok := c.native[owner]; ok {
		return new(big.Int).Set(v), nil
	}

	return new(big.Int), nil
}

func (c *Chain) CallReadOnly(ctx context.Context, call *core.ContractCall) ([]interface{}, error) {
	c.record(call.Method)

	switch call.Method {
	case core.MethodDecimals:
		if t, ok := c.tokens[call.To]; ok {
			return []interface{}{t.decimals}, nil
		}
		if f, ok := c.feeds[call.To]; ok {
			return []interface{}{f.decimals}, nil
		}
	case core.MethodBalanceOf:
		if t, ok := c.tokens[call.To]; ok {
			owner := call.Args[0].(common.Address)
			if v, ok := t.balances[owner]; ok {
				return []interface{}{new(big.Int).Set(v)}, nil
			}
			return []interface{}{new(big.Int)}, nil
		}
	case core.MethodLatestRoundData:
		if f, ok := c.feeds[call.To]; ok {
			return []interface{}{big.NewInt(1), new(big.Int).Set(f.answer), big.NewInt(0), big.NewInt(0), big.NewInt(1)}, nil
		}
	case core.MethodGetAmountsOut:
		if call.To == c.Router {
			amountIn := call.Args[0].(*big.Int)
			path := call.Args[1].([]common.Address)
			if out, err := c.quote(amountIn, path); err == nil {
				return []interface{}{[]*big.Int{amountIn, out}}, nil
			}
		}
	}

	return nil, fmt.Errorf("%s on %s: %w", call.Method, call.To.Hex(), ErrReverted)
}

func (c *Chain) SimulateCall(ctx context.Context, call *core.ContractCall) ([]byte, error) {
	c.record(call.Method)

	if c.SimErr != nil {
		return nil, c.SimErr
	}

	if err := c.checkSwap(call); err != nil {
		return nil, err
	}

	return []byte{}, nil
}

func (c *Chain) EstimateGas(ctx context.Context, call *core.ContractCall) (uint64, error) {
	c.record(call.Method)

	if c.GasErr != nil {
		return 0, c.GasErr
	}

	if err := c.checkSwap(call); err != nil {
		return 0, err
	}

	return c.Gas, nil
}

func (c *Chain) quote(amountIn *big.Int, path []common.Address) (*big.Int, error) {
	if len(path) != 2 || amountIn.Sign() <= 0 {
		return nil, ErrReverted
	}

	rate, ok := c.rates[[2]common.Address{path[0], path[1]}]
	if !ok {
		return nil, ErrReverted
	}

	from, ok := c.tokens[path[0]]
	if !ok {
		return nil, ErrReverted
	}

	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(from.decimals)), nil)
	out := new(big.Int).Mul(amountIn, rate)
	return out.Quo(out, unit), nil
}

// checkSwap reverts swaps whose minimum output the pair can't meet
func (c *Chain) checkSwap(call *core.ContractCall) error {
	if call.To != c.Router {
		return ErrReverted
	}

	var amountIn, minOut *big.Int
	var path []common.Address
	switch call.Method {
	case core.MethodSwapExactETHForTokens:
		amountIn = call.Value
		minOut = call.Args[0].(*big.Int)
		path = call.Args[1].([]common.Address)
	case core.MethodSwapExactTokensForETH, core.MethodSwapExactTokensForTokens:
		amountIn = call.Args[0].(*big.Int)
		minOut = call.Args[1].(*big.Int)
		path = call.Args[2].([]common.Address)
	default:
		return ErrReverted
	}

	if amountIn == nil {
		return ErrReverted
	}

	out, err := c.quote(amountIn, path)
	if err != nil {
		return err
	}

	if out.Cmp(minOut) < 0 {
		return fmt.Errorf("INSUFFICIENT_OUTPUT_AMOUNT: %w", ErrReverted)
	}

	return nil
}
