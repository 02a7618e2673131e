package cli

import (
	"github.com/spf13/cobra"
)

func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smartslot",
		Short: "SmartSlot appointment booking widget",
	}
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewPingCmd())
	cmd.AddCommand(NewBookCmd())
	return cmd
}
