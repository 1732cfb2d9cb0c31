package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kurobon/gittutor/internal/app"
	"github.com/kurobon/gittutor/internal/config"
	"github.com/kurobon/gittutor/internal/persist"
	"github.com/kurobon/gittutor/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			log, err := buildLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			store, err := persist.Open(cfg.StoreDir())
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(app.New(store, log), log)
			log.Info("server listening", zap.String("addr", cfg.Addr))
			return http.ListenAndServe(cfg.Addr, srv)
		},
	}
}
