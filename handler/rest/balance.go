package rest

import (
	"net/http"

	"tokenservice/core"
	"tokenservice/handler/param"
	"tokenservice/handler/render"
	"tokenservice/handler/views"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
	"github.com/yiplee/structs"
)

type balanceParams struct {
	Address string `json:"address" valid:"required,ethaddress"`
	Token   string `json:"token"`
}

// GET /balances/{address}?token=
func balanceHandler(balances core.IBalanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query struct {
			Token string `json:"token"`
		}

		if err := param.Binding(r, &query); err != nil {
			render.Error(w, err)
			return
		}

		params := balanceParams{
			Address: chi.URLParam(r, "address"),
			Token:   query.Token,
		}

		if !core.IsHexAddress(params.Address) {
			render.Error(w, twirp.InvalidArgumentError("address", "must be a 0x prefixed hex address"))
			return
		}

		handleBalance(w, r, balances, &params)
	}
}

func handleBalance(w http.ResponseWriter, r *http.Request, balances core.IBalanceService, params *balanceParams) {
	ctx := r.Context()

	balance, err := balances.GetBalance(ctx, common.HexToAddress(params.Address), params.Token)
	if err != nil {
		logger.FromContext(ctx).WithFields(logrus.Fields(structs.Map(params))).WithError(err).Infoln("GetBalance")
		render.Error(w, err)
		return
	}

	render.JSON(w, views.Balance{Balance: balance})
}
