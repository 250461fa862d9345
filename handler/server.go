package handler

import (
	"net/http"

	"tokenservice/core"
	"tokenservice/handler/hc"
	"tokenservice/handler/render"
	"tokenservice/handler/rest"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	version  string
	chain    core.IChainClient
	registry core.IAssetRegistry
	balances core.IBalanceService
	prices   core.IPriceService
	swaps    core.ISwapService
}

// New new server function
func New(
	version string,
	chain core.IChainClient,
	registry core.IAssetRegistry,
	balances core.IBalanceService,
	prices core.IPriceService,
	swaps core.ISwapService,
) Server {
	return Server{
		version:  version,
		chain:    chain,
		registry: registry,
		balances: balances,
		prices:   prices,
		swaps:    swaps,
	}
}

// Handler mux serving hc, tool calls and the restful api
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	{
		// hc
		mux.Mount("/hc", hc.Handle(s.version, s.chain))
	}

	{
		// tool calls
		mux.Mount("/tools", rest.HandleTools(s.registry, s.balances, s.prices, s.swaps))
	}

	{
		// restful api
		mux.Mount("/api", s.HandleRestAPI())
	}

	return mux
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	return rest.Handle(s.balances, s.prices, s.swaps)
}
