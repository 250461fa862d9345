package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ContractMethod the closed set of contract methods the service calls
type ContractMethod string

const (
	// MethodBalanceOf erc20 balanceOf(address)
	MethodBalanceOf ContractMethod = "balanceOf"
	// MethodDecimals erc20 and aggregator decimals()
	MethodDecimals ContractMethod = "decimals"
	// MethodLatestRoundData aggregator latestRoundData()
	MethodLatestRoundData ContractMethod = "latestRoundData"
	// MethodGetAmountsOut router getAmountsOut(uint256,address[])
	MethodGetAmountsOut ContractMethod = "getAmountsOut"
	// MethodSwapExactTokensForTokens router swap, token -> token
	MethodSwapExactTokensForTokens ContractMethod = "swapExactTokensForTokens"
	// MethodSwapExactETHForTokens router swap, native -> token, payable
	MethodSwapExactETHForTokens ContractMethod = "swapExactETHForTokens"
	// MethodSwapExactTokensForETH router swap, token -> native
	MethodSwapExactTokensForETH ContractMethod = "swapExactTokensForETH"
)

// ContractCall a constructed, never signed, contract call
type ContractCall struct {
	From   common.Address
	To     common.Address
	Method ContractMethod
	Args   []interface{}
	// Value native amount attached to payable calls, nil otherwise
	Value *big.Int
}

// IChainClient node connection
type IChainClient interface {
	NativeBalance(ctx context.Context, owner common.Address) (*big.Int, error)
	// CallReadOnly eth_call the method and decode its outputs
	CallReadOnly(ctx context.Context, call *ContractCall) ([]interface{}, error)
	// SimulateCall eth_call the method and return the raw result, fails when the call would revert
	SimulateCall(ctx context.Context, call *ContractCall) ([]byte, error)
	EstimateGas(ctx context.Context, call *ContractCall) (uint64, error)
}
