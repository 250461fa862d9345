package core

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NativeDecimals scale of the native asset
const NativeDecimals uint8 = 18

// AssetAddress resolved asset identifier
type AssetAddress struct {
	// Native the chain's base currency, Address is zero
	Native  bool           `json:"native"`
	Address common.Address `json:"address"`
}

// NativeAsset the native asset sentinel
var NativeAsset = AssetAddress{Native: true}

// TokenAsset asset address of a token contract
func TokenAsset(addr common.Address) AssetAddress {
	return AssetAddress{Address: addr}
}

func (a AssetAddress) String() string {
	if a.Native {
		return "native"
	}

	return a.Address.Hex()
}

// IAssetRegistry read only registry built once from configuration
type IAssetRegistry interface {
	// Resolve symbol to the native sentinel or a token contract address
	Resolve(name string) (AssetAddress, error)
	// ResolveFeed symbol or feed name to an oracle feed address
	ResolveFeed(name string) (common.Address, error)
	// Wrapped wrapped native token used to route native legs
	Wrapped() common.Address
	NativeSymbol() string
	Symbols() []string
	FeedNames() []string
}

// HasHexPrefix reports whether s is meant as a raw address rather than a symbol
func HasHexPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// IsHexAddress reports whether s is formatted as a 0x prefixed contract address
func IsHexAddress(s string) bool {
	return HasHexPrefix(s) && common.IsHexAddress(s)
}

// ResolveAsset a raw address resolves to itself, anything else goes through the registry
func ResolveAsset(r IAssetRegistry, name string) (AssetAddress, error) {
	switch {
	case IsHexAddress(name):
		return TokenAsset(common.HexToAddress(name)), nil
	case HasHexPrefix(name):
		return AssetAddress{}, ErrUnknownAsset.Errorf("malformed address %q", name)
	default:
		return r.Resolve(name)
	}
}
