package rest

import (
	"net/http"

	"tokenservice/core"
	"tokenservice/handler/param"
	"tokenservice/handler/render"
	"tokenservice/handler/views"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

const (
	ToolGetBalance = "get_balance"
	ToolGetPrice   = "get_price"
	ToolSwapTokens = "swap_tokens"
)

var tools = []views.Tool{
	{
		Name:        ToolGetBalance,
		Description: "Native or token balance of an address",
		Arguments: []views.Argument{
			{Name: "address", Description: "owner address, 0x prefixed", Required: true},
			{Name: "token", Description: "token symbol or contract address, native balance when empty"},
		},
	},
	{
		Name:        ToolGetPrice,
		Description: "Latest oracle price",
		Arguments: []views.Argument{
			{Name: "token", Description: "feed symbol or feed address, native asset when empty"},
		},
	},
	{
		Name:        ToolSwapTokens,
		Description: "Simulate a swap through the router without broadcasting it",
		Arguments: []views.Argument{
			{Name: "from_token", Description: "source asset symbol or address", Required: true},
			{Name: "to_token", Description: "destination asset symbol or address", Required: true},
			{Name: "amount_in", Description: "decimal amount of the source asset", Required: true},
			{Name: "slippage", Description: "slippage tolerance in percent, 0.5 = 0.5%", Required: true},
		},
	},
}

// HandleTools handle tool calls, one POST endpoint per tool
func HandleTools(registry core.IAssetRegistry, balances core.IBalanceService, prices core.IPriceService, swaps core.ISwapService) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("tool not found"))
	})

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, views.Tools{
			Tools:  tools,
			Assets: registry.Symbols(),
			Feeds:  registry.FeedNames(),
		})
	})

	router.Post("/"+ToolGetBalance, func(w http.ResponseWriter, r *http.Request) {
		var params balanceParams
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		handleBalance(w, r, balances, &params)
	})

	router.Post("/"+ToolGetPrice, func(w http.ResponseWriter, r *http.Request) {
		var params priceParams
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		handlePrice(w, r, prices, &params)
	})

	router.Post("/"+ToolSwapTokens, func(w http.ResponseWriter, r *http.Request) {
		var params swapParams
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		handleSwap(w, r, swaps, &params)
	})

	return router
}
