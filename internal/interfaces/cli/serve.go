package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/example/smartslot/internal/application/session"
	"github.com/example/smartslot/internal/infrastructure/config"
	"github.com/example/smartslot/internal/infrastructure/schedapi"
	"github.com/example/smartslot/internal/interfaces/web"
	"github.com/example/smartslot/internal/pkg/logger"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the booking widget",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel, cfg.Env)

			log.Info().
				Str("env", cfg.Env).
				Str("backend", cfg.BackendURL).
				Msg("starting smartslot widget")

			client := schedapi.New(cfg.BackendURL, cfg.HTTPTimeout)
			store := web.NewStore(func() *session.Controller {
				return session.New(client, session.WithMockDelay(cfg.MockSubmitDelay))
			})
			sessions := web.NewSessionManager(cfg.SessionHashKey, cfg.SessionBlockKey)

			tmpl, err := web.ParseTemplates()
			if err != nil {
				return err
			}

			srv := web.New(cfg.ListenAddr, sessions, store, tmpl, cfg.AllowedOrigins)
			return srv.ListenAndServe()
		},
	}
}
