package rest

import (
	"net/http"

	"tokenservice/core"
	"tokenservice/handler/param"
	"tokenservice/handler/render"
	"tokenservice/handler/views"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

type priceParams struct {
	Token string `json:"token"`
}

// GET /prices?token=
func priceHandler(prices core.IPriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params priceParams
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		handlePrice(w, r, prices, &params)
	}
}

func handlePrice(w http.ResponseWriter, r *http.Request, prices core.IPriceService, params *priceParams) {
	ctx := r.Context()

	price, err := prices.GetPrice(ctx, params.Token)
	if err != nil {
		logger.FromContext(ctx).WithFields(logrus.Fields(structs.Map(params))).WithError(err).Infoln("GetPrice")
		render.Error(w, err)
		return
	}

	render.JSON(w, views.Price{Price: price})
}
