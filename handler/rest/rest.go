package rest

import (
	"net/http"

	"tokenservice/core"
	"tokenservice/handler/render"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Handle handle rest api request
func Handle(balances core.IBalanceService, prices core.IPriceService, swaps core.ISwapService) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	router.Get("/balances/{address}", balanceHandler(balances))
	router.Get("/prices", priceHandler(prices))
	router.Get("/swaps/quote", quoteHandler(swaps))

	return router
}
