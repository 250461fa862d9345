package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000

	// ErrUnknownAsset symbol not in the asset registry
	ErrUnknownAsset ErrorCode = 100100
	// ErrUnknownFeed no oracle feed for the identifier
	ErrUnknownFeed ErrorCode = 100101
	// ErrConversion decimal/integer conversion failed
	ErrConversion ErrorCode = 100102
	// ErrInvalidSlippage slippage tolerance out of [0, 100)
	ErrInvalidSlippage ErrorCode = 100103

	// ErrChainQuery remote call to the node failed
	ErrChainQuery ErrorCode = 100200
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	switch e {
	case ErrUnknownAsset:
		return "unknown asset"
	case ErrUnknownFeed:
		return "unknown feed"
	case ErrConversion:
		return "conversion error"
	case ErrInvalidSlippage:
		return "invalid slippage"
	case ErrChainQuery:
		return "chain query failed"
	default:
		return e.String()
	}
}

// Errorf wraps code with a formatted message, errors.Is(err, code) keeps working
func (e ErrorCode) Errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

// Wrap wraps err as code, nil stays nil
func (e ErrorCode) Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s: %v", e, msg, err)
}

// ChainError classify err as a chain query failure unless it already carries a code
func ChainError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if CodeOf(err) != ErrUnknown {
		return fmt.Errorf("%s: %w", msg, err)
	}

	return ErrChainQuery.Wrap(err, msg)
}

// CodeOf returns the error code carried by err, ErrUnknown if there is none
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}
