package asset

import (
	"fmt"
	"sort"
	"strings"

	"tokenservice/core"

	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultNative  = "ETH"
	defaultWrapped = "WETH"
)

type registry struct {
	native  string
	wrapped common.Address
	tokens  map[string]common.Address
	feeds   map[string]common.Address
}

// New build the asset registry from configuration, the result is never mutated
func New(cfg core.AssetsConfig) (core.IAssetRegistry, error) {
	r := &registry{
		native: normalize(cfg.Native),
		tokens: make(map[string]common.Address, len(cfg.Tokens)),
		feeds:  make(map[string]common.Address, len(cfg.Feeds)),
	}

	if r.native == "" {
		r.native = defaultNative
	}

	for symbol, addr := range cfg.Tokens {
		a, err := parseAddress(addr)
		if err != nil {
			return nil, fmt.Errorf("token %s: %w", symbol, err)
		}

		r.tokens[normalize(symbol)] = a
	}

	for name, addr := range cfg.Feeds {
		a, err := parseAddress(addr)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", name, err)
		}

		r.feeds[normalize(name)] = a
	}

	wrapped := normalize(cfg.Wrapped)
	if wrapped == "" {
		wrapped = defaultWrapped
	}

	if a, ok := r.tokens[wrapped]; ok {
		r.wrapped = a
	} else {
		return nil, fmt.Errorf("wrapped native token %s missing from tokens", wrapped)
	}

	if _, ok := r.tokens[r.native]; ok {
		return nil, fmt.Errorf("native symbol %s must not be mapped to a token", r.native)
	}

	return r, nil
}

func (r *registry) Resolve(name string) (core.AssetAddress, error) {
	key := normalize(name)
	if key == r.native {
		return core.NativeAsset, nil
	}

	if a, ok := r.tokens[key]; ok {
		return core.TokenAsset(a), nil
	}

	return core.AssetAddress{}, core.ErrUnknownAsset.Errorf("%q", name)
}

func (r *registry) ResolveFeed(name string) (common.Address, error) {
	if a, ok := r.feeds[normalize(name)]; ok {
		return a, nil
	}

	return common.Address{}, core.ErrUnknownFeed.Errorf("%q", name)
}

func (r *registry) Wrapped() common.Address {
	return r.wrapped
}

func (r *registry) NativeSymbol() string {
	return r.native
}

func (r *registry) Symbols() []string {
	symbols := []string{r.native}
	for s := range r.tokens {
		symbols = append(symbols, s)
	}

	sort.Strings(symbols)
	return symbols
}

func (r *registry) FeedNames() []string {
	names := make([]string, 0, len(r.feeds))
	for s := range r.feeds {
		names = append(names, s)
	}

	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func parseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !core.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}

	return common.HexToAddress(s), nil
}
