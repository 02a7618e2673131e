package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/smartslot/internal/application/session"
	"github.com/example/smartslot/internal/dateutil"
	"github.com/example/smartslot/internal/domain/booking"
	"github.com/example/smartslot/internal/infrastructure/config"
	"github.com/example/smartslot/internal/infrastructure/schedapi"
	"github.com/example/smartslot/internal/pkg/logger"
)

// NewBookCmd is the one-shot terminal flow: load availability, pick the
// requested slot and submit, going through the same controller the widget
// uses.
func NewBookCmd() *cobra.Command {
	var date, slot, name, email, phone, notes string
	c := &cobra.Command{
		Use:   "book",
		Short: "Book a slot from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel, cfg.Env)

			day, err := dateutil.ParseDate(date)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			client := schedapi.New(cfg.BackendURL, cfg.HTTPTimeout)
			ctrl := session.New(client, session.WithMockDelay(cfg.MockSubmitDelay))
			ctrl.Load(ctx)
			if ctrl.UsingMockData() {
				fmt.Println("warning: backend unreachable, booking against demo data only")
			}

			if err := ctrl.SelectDate(day); err != nil {
				return err
			}
			if err := ctrl.SelectTime(slot); err != nil {
				return err
			}
			if err := ctrl.Submit(ctx, booking.CustomerData{
				Name:  name,
				Email: email,
				Phone: phone,
				Notes: notes,
			}); err != nil {
				return err
			}

			resp, _ := ctrl.Response()
			fmt.Printf("booked %s %s, reference %s\n", resp.Date, resp.TimeSlot, resp.BookingReference)
			return nil
		},
	}
	c.Flags().StringVar(&date, "date", "", "booking date (YYYY-MM-DD)")
	c.Flags().StringVar(&slot, "time", "", "slot time (HH:MM)")
	c.Flags().StringVar(&name, "name", "", "customer name")
	c.Flags().StringVar(&email, "email", "", "customer email")
	c.Flags().StringVar(&phone, "phone", "", "customer phone")
	c.Flags().StringVar(&notes, "notes", "", "additional notes")
	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("time")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("email")
	_ = c.MarkFlagRequired("phone")
	return c
}
