package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(balanceCmd)
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show the service side balance of an address, defaults to the configured wallet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		registry, err := setupRegistry()
		if err != nil {
			return
		}
		c := registry.Currency()

		var address string
		if len(args) > 0 {
			address = args[0]
		} else {
			err = c.Ready(ctx)
			if err != nil {
				return
			}
			address = c.Address()
		}

		balance, err := setupClient().GetBalance(ctx, c.Name(), address)
		if err != nil {
			return
		}

		unit, _ := c.Base()
		fmt.Printf("%s %s\n", balance.String(), unit)
		return
	},
}
