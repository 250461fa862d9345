package rest

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tokenservice/core"
	"tokenservice/service/balance"
	"tokenservice/service/chain/stub"
	"tokenservice/service/price"
	"tokenservice/service/swap"
	"tokenservice/store/asset"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	router  = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	weth    = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	usdc    = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	dai     = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	uni     = common.HexToAddress("0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984")
	ethFeed = common.HexToAddress("0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419")
	owner   = common.HexToAddress("0x000000000000000000000000000000000000dEaD")
)

func newServer(t *testing.T) http.Handler {
	registry, err := asset.New(core.AssetsConfig{
		Tokens: map[string]string{
			"WETH": weth.Hex(),
			"USDC": usdc.Hex(),
			"DAI":  dai.Hex(),
			"UNI":  uni.Hex(),
		},
		Feeds: map[string]string{"ETH": ethFeed.Hex()},
	})
	require.Nil(t, err)

	chain := stub.New(router)
	chain.AddToken(weth, 18)
	chain.AddToken(usdc, 6)
	chain.AddToken(dai, 18)
	chain.AddFeed(ethFeed, 8, big.NewInt(345_012_345_678))
	chain.SetRate(weth, usdc, big.NewInt(3_450_000_000))

	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	chain.SetNative(owner, wei)
	chain.SetTokenBalance(usdc, owner, big.NewInt(123_450_000))

	balances := balance.New(chain, registry)
	prices := price.New(chain, registry)
	swaps := swap.New(chain, registry, swap.Config{Router: router, Wallet: owner})

	mux := chi.NewMux()
	mux.Mount("/api", Handle(balances, prices, swaps))
	mux.Mount("/tools", HandleTools(registry, balances, prices, swaps))
	return mux
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]interface{}) {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var resp map[string]interface{}
	require.Nil(t, json.NewDecoder(w.Body).Decode(&resp))
	return w.Code, resp
}

func TestListTools(t *testing.T) {
	h := newServer(t)

	code, resp := do(t, h, http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["tools"], 3)
	assert.Equal(t, []interface{}{"DAI", "ETH", "UNI", "USDC", "WETH"}, resp["assets"])
	assert.Equal(t, []interface{}{"ETH"}, resp["feeds"])
}

func TestToolCalls(t *testing.T) {
	h := newServer(t)

	for _, tc := range []struct {
		name   string
		target string
		body   string
		status int
		expect map[string]interface{}
	}{
		{
			name:   "native balance",
			target: "/tools/get_balance",
			body:   `{"address":"` + owner.Hex() + `"}`,
			status: http.StatusOK,
			expect: map[string]interface{}{"balance": "1.5"},
		},
		{
			name:   "token balance",
			target: "/tools/get_balance",
			body:   `{"address":"` + owner.Hex() + `","token":"USDC"}`,
			status: http.StatusOK,
			expect: map[string]interface{}{"balance": "123.45"},
		},
		{
			name:   "default price",
			target: "/tools/get_price",
			body:   `{}`,
			status: http.StatusOK,
			expect: map[string]interface{}{"price": "3450.12345678"},
		},
		{
			name:   "swap with numeric slippage",
			target: "/tools/swap_tokens",
			body:   `{"from_token":"ETH","to_token":"USDC","amount_in":"0.001","slippage":0.5}`,
			status: http.StatusOK,
			expect: map[string]interface{}{
				"status":           "ok",
				"estimated_output": "3.45",
				"minimum_output":   "3.43275",
				"gas":              "125000",
			},
		},
		{
			name:   "swap with string slippage",
			target: "/tools/swap_tokens",
			body:   `{"from_token":"ETH","to_token":"USDC","amount_in":"0.001","slippage":"0.5"}`,
			status: http.StatusOK,
			expect: map[string]interface{}{
				"status":           "ok",
				"estimated_output": "3.45",
				"minimum_output":   "3.43275",
				"gas":              "125000",
			},
		},
		{
			name:   "swap without liquidity",
			target: "/tools/swap_tokens",
			body:   `{"from_token":"USDC","to_token":"DAI","amount_in":"1","slippage":1}`,
			status: http.StatusOK,
			expect: map[string]interface{}{
				"status":           "no_route",
				"estimated_output": "0",
				"minimum_output":   "0",
				"gas":              "0",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := do(t, h, http.MethodPost, tc.target, tc.body)
			assert.Equal(t, tc.status, code)
			assert.Equal(t, tc.expect, resp)
		})
	}
}

func TestToolErrors(t *testing.T) {
	h := newServer(t)

	for _, tc := range []struct {
		name   string
		target string
		body   string
		status int
		code   int
	}{
		{"unknown asset", "/tools/get_balance", `{"address":"` + owner.Hex() + `","token":"DOGE"}`, http.StatusNotFound, int(core.ErrUnknownAsset)},
		{"unknown feed", "/tools/get_price", `{"token":"DOGE"}`, http.StatusNotFound, int(core.ErrUnknownFeed)},
		{"slippage 100", "/tools/swap_tokens", `{"from_token":"ETH","to_token":"USDC","amount_in":"1","slippage":100}`, http.StatusBadRequest, int(core.ErrInvalidSlippage)},
		{"missing slippage", "/tools/swap_tokens", `{"from_token":"ETH","to_token":"USDC","amount_in":"1"}`, http.StatusBadRequest, 100001},
		{"negative amount", "/tools/swap_tokens", `{"from_token":"ETH","to_token":"USDC","amount_in":"-1","slippage":0.5}`, http.StatusBadRequest, int(core.ErrConversion)},
		{"bad owner", "/tools/get_balance", `{"address":"0x1234"}`, http.StatusBadRequest, 100001},
		{"token not deployed", "/tools/get_balance", `{"address":"` + owner.Hex() + `","token":"UNI"}`, http.StatusServiceUnavailable, int(core.ErrChainQuery)},
		{"unknown tool", "/tools/transfer", `{}`, http.StatusNotFound, http.StatusNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := do(t, h, http.MethodPost, tc.target, tc.body)
			assert.Equal(t, tc.status, code)
			assert.EqualValues(t, tc.code, resp["code"])
			assert.NotEmpty(t, resp["msg"])
		})
	}
}

func TestRestAPI(t *testing.T) {
	h := newServer(t)

	code, resp := do(t, h, http.MethodGet, "/api/balances/"+owner.Hex()+"?token=usdc", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "123.45", resp["balance"])

	code, resp = do(t, h, http.MethodGet, "/api/prices?token=eth", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "3450.12345678", resp["price"])

	code, resp = do(t, h, http.MethodGet, "/api/swaps/quote?from=ETH&to=USDC&amount=0.001&slippage=0", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "3.45", resp["estimated_output"])
	assert.Equal(t, "3.45", resp["minimum_output"])

	code, resp = do(t, h, http.MethodGet, "/api/balances/0x12", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.EqualValues(t, 100001, resp["code"])

	code, _ = do(t, h, http.MethodGet, "/api/swaps/quote?from=ETH&to=USDC&amount=abc&slippage=0.5", "")
	assert.Equal(t, http.StatusBadRequest, code)
}
