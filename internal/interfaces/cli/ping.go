package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/smartslot/internal/infrastructure/config"
	"github.com/example/smartslot/internal/infrastructure/schedapi"
	"github.com/example/smartslot/internal/pkg/logger"
)

func NewPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the scheduling backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel, cfg.Env)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			client := schedapi.New(cfg.BackendURL, cfg.HTTPTimeout)
			av, err := client.FetchAvailableDates(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s: ok (%d available dates, %d open slots)\n",
				cfg.BackendURL, len(av.Dates), av.Summary.TotalAvailableSlots)
			return nil
		},
	}
}
