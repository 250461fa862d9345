package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Feed oracle price feed, Decimals is only valid for the round it was read with
type Feed struct {
	Address  common.Address `json:"address"`
	Decimals uint8          `json:"decimals"`
}

// IPriceService oracle price service interface
type IPriceService interface {
	// GetPrice token may be empty (native asset feed), a symbol or a raw feed address
	GetPrice(ctx context.Context, token string) (decimal.Decimal, error)
	NativePrice(ctx context.Context) (decimal.Decimal, error)
}
