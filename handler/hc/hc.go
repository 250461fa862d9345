package hc

import (
	"context"
	"net/http"
	"time"

	"tokenservice/core"
	"tokenservice/handler/render"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

const probeTimeout = 3 * time.Second

// Handle handle hc request, the node is probed with a native balance read
func Handle(ver string, chain core.IChainClient) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, chain))
	return r
}

func handle(version string, chain core.IChainClient) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		node := "ok"
		if _, err := chain.NativeBalance(ctx, common.Address{}); err != nil {
			logger.FromContext(ctx).WithError(err).Warnln("hc: probe node")
			node = "unavailable"
		}

		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
			"node":    node,
		})
	}
}
