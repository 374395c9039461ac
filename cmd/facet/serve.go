package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facetframe/facet/internal/api"
	"github.com/facetframe/facet/internal/engine"
	"github.com/facetframe/facet/internal/logger"
	"github.com/facetframe/facet/internal/sqlite"
)

var flagPretty bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the facet HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: flagPretty})

		backend := sqlite.NewBackend()
		if err := backend.Attach(cfg); err != nil {
			return fmt.Errorf("attaching store: %w", err)
		}
		defer backend.Detach()

		eng := engine.New(backend, log)
		router := api.NewRouter(eng, log)

		log.Info().Str("addr", cfg.ListenAddr).Str("data_dir", cfg.DataDir).Msg("serving")
		return router.Run(cfg.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&flagPretty, "pretty", false, "human-readable log output")
}
