package chain

import (
	"context"
	"math/big"
	"time"

	"tokenservice/core"
	"tokenservice/internal/contracts"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/fox-one/pkg/logger"
)

const defaultRequestTimeout = 10 * time.Second

// Backend the subset of ethclient.Client the service uses
type Backend interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
}

type client struct {
	backend        Backend
	requestTimeout time.Duration
}

// Dial connect to the node at cfg.RPC
func Dial(cfg core.Chain) (core.IChainClient, error) {
	c, err := ethclient.Dial(cfg.RPC)
	if err != nil {
		return nil, core.ErrChainQuery.Wrap(err, "dial rpc")
	}

	return New(c, cfg.RequestTimeout), nil
}

// New new chain client over backend, every remote call is bounded by requestTimeout
func New(backend Backend, requestTimeout time.Duration) core.IChainClient {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &client{
		backend:        backend,
		requestTimeout: requestTimeout,
	}
}

func (c *client) NativeBalance(ctx context.Context, owner common.Address) (*big.Int, error) {
	childCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	balance, err := c.backend.BalanceAt(childCtx, owner, nil)
	if err != nil {
		return nil, core.ErrChainQuery.Wrap(err, "eth_getBalance")
	}

	return balance, nil
}

func (c *client) CallReadOnly(ctx context.Context, call *core.ContractCall) ([]interface{}, error) {
	data, err := c.call(ctx, call)
	if err != nil {
		return nil, err
	}

	out, err := contracts.Unpack(call.Method, data)
	if err != nil {
		return nil, core.ErrChainQuery.Wrap(err, "decode "+string(call.Method))
	}

	return out, nil
}

func (c *client) SimulateCall(ctx context.Context, call *core.ContractCall) ([]byte, error) {
	return c.call(ctx, call)
}

func (c *client) EstimateGas(ctx context.Context, call *core.ContractCall) (uint64, error) {
	msg, err := callMsg(call)
	if err != nil {
		return 0, err
	}

	childCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	gas, err := c.backend.EstimateGas(childCtx, msg)
	if err != nil {
		return 0, core.ErrChainQuery.Wrap(err, "eth_estimateGas "+string(call.Method))
	}

	return gas, nil
}

func (c *client) call(ctx context.Context, call *core.ContractCall) ([]byte, error) {
	msg, err := callMsg(call)
	if err != nil {
		return nil, err
	}

	childCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	data, err := c.backend.CallContract(childCtx, msg, nil)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Debugf("eth_call %s on %s failed", call.Method, call.To.Hex())
		return nil, core.ErrChainQuery.Wrap(err, "eth_call "+string(call.Method))
	}

	return data, nil
}

func callMsg(call *core.ContractCall) (ethereum.CallMsg, error) {
	data, err := contracts.Pack(call)
	if err != nil {
		return ethereum.CallMsg{}, core.ErrChainQuery.Wrap(err, "encode "+string(call.Method))
	}

	to := call.To
	return ethereum.CallMsg{
		From:  call.From,
		To:    &to,
		Value: call.Value,
		Data:  data,
	}, nil
}
