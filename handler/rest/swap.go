package rest

import (
	"net/http"

	"tokenservice/core"
	"tokenservice/handler/param"
	"tokenservice/handler/render"
	"tokenservice/handler/views"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/twitchtv/twirp"
	"github.com/yiplee/structs"
)

type swapParams struct {
	From   string `json:"from_token" valid:"required"`
	To     string `json:"to_token" valid:"required"`
	Amount string `json:"amount_in" valid:"required,decimal"`
	// Slippage percentage, a json number or a decimal string
	Slippage interface{} `json:"slippage"`
}

// GET /swaps/quote?from=&to=&amount=&slippage=
func quoteHandler(swaps core.ISwapService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query struct {
			From     string `json:"from" valid:"required"`
			To       string `json:"to" valid:"required"`
			Amount   string `json:"amount" valid:"required,decimal"`
			Slippage string `json:"slippage" valid:"required,decimal"`
		}

		if err := param.Binding(r, &query); err != nil {
			render.Error(w, err)
			return
		}

		handleSwap(w, r, swaps, &swapParams{
			From:     query.From,
			To:       query.To,
			Amount:   query.Amount,
			Slippage: query.Slippage,
		})
	}
}

func handleSwap(w http.ResponseWriter, r *http.Request, swaps core.ISwapService, params *swapParams) {
	ctx := r.Context()
	log := logger.FromContext(ctx).WithFields(logrus.Fields(structs.Map(params)))

	slippage, err := cast.ToStringE(params.Slippage)
	if err != nil || slippage == "" {
		render.Error(w, twirp.InvalidArgumentError("slippage", "must be a decimal percentage"))
		return
	}

	quote, err := swaps.SimulateString(ctx, params.From, params.To, params.Amount, slippage)
	if err != nil {
		log.WithError(err).Infoln("SimulateString")
		render.Error(w, err)
		return
	}

	if quote.NoRoute() {
		log.Infoln("no route")
	}

	render.JSON(w, views.QuoteView(quote))
}
