// Package contracts holds the handful of contract methods the service calls:
// erc20 balanceOf/decimals, aggregator latestRoundData and the uniswap v2
// router quote and swap variants.
package contracts

import (
	"fmt"
	"math/big"
	"strings"

	"tokenservice/core"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const abiJSON = `[
{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
{"type":"function","name":"latestRoundData","stateMutability":"view","inputs":[],"outputs":[
	{"name":"roundId","type":"uint80"},
	{"name":"answer","type":"int256"},
	{"name":"startedAt","type":"uint256"},
	{"name":"updatedAt","type":"uint256"},
	{"name":"answeredInRound","type":"uint80"}]},
{"type":"function","name":"getAmountsOut","stateMutability":"view","inputs":[
	{"name":"amountIn","type":"uint256"},
	{"name":"path","type":"address[]"}],"outputs":[{"name":"amounts","type":"uint256[]"}]},
{"type":"function","name":"swapExactTokensForTokens","stateMutability":"nonpayable","inputs":[
	{"name":"amountIn","type":"uint256"},
	{"name":"amountOutMin","type":"uint256"},
	{"name":"path","type":"address[]"},
	{"name":"to","type":"address"},
	{"name":"deadline","type":"uint256"}],"outputs":[{"name":"amounts","type":"uint256[]"}]},
{"type":"function","name":"swapExactETHForTokens","stateMutability":"payable","inputs":[
	{"name":"amountOutMin","type":"uint256"},
	{"name":"path","type":"address[]"},
	{"name":"to","type":"address"},
	{"name":"deadline","type":"uint256"}],"outputs":[{"name":"amounts","type":"uint256[]"}]},
{"type":"function","name":"swapExactTokensForETH","stateMutability":"nonpayable","inputs":[
	{"name":"amountIn","type":"uint256"},
	{"name":"amountOutMin","type":"uint256"},
	{"name":"path","type":"address[]"},
	{"name":"to","type":"address"},
	{"name":"deadline","type":"uint256"}],"outputs":[{"name":"amounts","type":"uint256[]"}]}
]`

// ABI parsed method set
var ABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(fmt.Errorf("parse contracts abi: %w", err))
	}

	ABI = parsed
}

// Pack encode the call data of call
func Pack(call *core.ContractCall) ([]byte, error) {
	if _, ok := ABI.Methods[string(call.Method)]; !ok {
		return nil, fmt.Errorf("method %s not supported", call.Method)
	}

	return ABI.Pack(string(call.Method), call.Args...)
}

// Unpack decode the outputs of method
func Unpack(method core.ContractMethod, data []byte) ([]interface{}, error) {
	return ABI.Unpack(string(method), data)
}

// BalanceOf token.balanceOf(owner)
func BalanceOf(token, owner common.Address) *core.ContractCall {
	return &core.ContractCall{
		To:     token,
		Method: core.MethodBalanceOf,
		Args:   []interface{}{owner},
	}
}

// Decimals contract.decimals(), tokens and feeds alike
func Decimals(contract common.Address) *core.ContractCall {
	return &core.ContractCall{
		To:     contract,
		Method: core.MethodDecimals,
	}
}

// LatestRoundData feed.latestRoundData()
func LatestRoundData(feed common.Address) *core.ContractCall {
	return &core.ContractCall{
		To:     feed,
		Method: core.MethodLatestRoundData,
	}
}

// GetAmountsOut router.getAmountsOut(amountIn, path)
func GetAmountsOut(router common.Address, amountIn *big.Int, path []common.Address) *core.ContractCall {
	return &core.ContractCall{
		To:     router,
		Method: core.MethodGetAmountsOut,
		Args:   []interface{}{amountIn, path},
	}
}

// SwapParams inputs of a router swap call
type SwapParams struct {
	Router       common.Address
	Sender       common.Address
	Recipient    common.Address
	AmountIn     *big.Int
	AmountOutMin *big.Int
	Route        core.SwapRoute
	Deadline     *big.Int
}

// Swap the router swap variant for the route kind; native -> token is payable
// and carries the input as value instead of an argument.
func Swap(p SwapParams) *core.ContractCall {
	call := &core.ContractCall{
		From:   p.Sender,
		To:     p.Router,
		Method: p.Route.Kind.Method(),
	}

	path := p.Route.Addresses()
	switch p.Route.Kind {
	case core.SwapNativeForToken:
		call.Value = p.AmountIn
		call.Args = []interface{}{p.AmountOutMin, path, p.Recipient, p.Deadline}
	default:
		call.Args = []interface{}{p.AmountIn, p.AmountOutMin, path, p.Recipient, p.Deadline}
	}

	return call
}

// DecodeUint256 first output as uint256
func DecodeUint256(out []interface{}) (*big.Int, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("empty output")
	}

	v, ok := out[0].(*big.Int)
	if !ok || v == nil {
		return nil, fmt.Errorf("unexpected output type %T", out[0])
	}

	return v, nil
}

// DecodeDecimals first output as uint8
func DecodeDecimals(out []interface{}) (uint8, error) {
	if len(out) == 0 {
		return 0, fmt.Errorf("empty output")
	}

	v, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected output type %T", out[0])
	}

	return v, nil
}

// DecodeAnswer answer of latestRoundData, signed
func DecodeAnswer(out []interface{}) (*big.Int, error) {
	if len(out) < 2 {
		return nil, fmt.Errorf("latestRoundData: expected 5 outputs, got %d", len(out))
	}

	v, ok := out[1].(*big.Int)
	if !ok || v == nil {
		return nil, fmt.Errorf("unexpected answer type %T", out[1])
	}

	return v, nil
}

// DecodeAmounts uint256[] output of getAmountsOut and the swaps
func DecodeAmounts(out []interface{}) ([]*big.Int, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("empty output")
	}

	v, ok := out[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T", out[0])
	}

	return v, nil
}
