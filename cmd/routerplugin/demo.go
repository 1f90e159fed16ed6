package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/routerplugin/pkg/app"
	"github.com/vango-dev/routerplugin/pkg/plugin"
	"github.com/vango-dev/routerplugin/pkg/plugins/devtools"
	"github.com/vango-dev/routerplugin/pkg/plugins/metrics"
	"github.com/vango-dev/routerplugin/pkg/plugins/tracing"
	"github.com/vango-dev/routerplugin/pkg/router"
)

func demoCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Serve the demo application",
		Long: `Start the demo application and expose it over HTTP:

  POST /navigate?path=/users/42   drive a navigation
  GET  /devtools/snapshot         lifecycle state as JSON
  GET  /devtools/ws               devtools event stream (WebSocket)
  GET  /metrics                   Prometheus metrics
  POST /unmount                   unmount the application`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8099", "listen address")

	return cmd
}

func runDemo(addr string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	bridge := devtools.New(devtools.WithLogger(logger))

	r := plugin.New(router.Options{
		Routes: []router.RouteRecord{
			{Path: "/", Name: "home"},
			{Path: "/users/:id", Name: "user"},
			{Path: "/docs/*rest", Name: "docs"},
		},
	},
		metrics.New(),
		tracing.New(),
		bridge.Plugin(),
	)

	a := app.New(app.WithLogger(logger))
	a.UseRouter(r)
	a.Mount()

	mux := chi.NewRouter()
	mux.Mount("/devtools", http.StripPrefix("/devtools", bridge.Handler()))
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/navigate", func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Query().Get("path")
		if path == "" {
			http.Error(w, "missing path query parameter", http.StatusBadRequest)
			return
		}
		if err := r.Push(path); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		fmt.Fprintf(w, "navigated to %s\n", path)
	})

	mux.Post("/unmount", func(w http.ResponseWriter, req *http.Request) {
		a.Unmount()
		fmt.Fprintln(w, "unmounted")
	})

	logger.Info("serving demo", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
