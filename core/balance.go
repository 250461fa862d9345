package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// IBalanceService balance service interface
type IBalanceService interface {
	// GetBalance asset may be empty (native), a symbol or a raw token address
	GetBalance(ctx context.Context, owner common.Address, asset string) (decimal.Decimal, error)
}
