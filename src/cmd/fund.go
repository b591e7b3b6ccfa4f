package cmd

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(fundCmd)
	fundCmd.Flags().Float64Var(&feeMultiplier, "multiplier", 1.0, "network fee multiplier")
}

var feeMultiplier float64

var fundCmd = &cobra.Command{
	Use:   "fund <amount>",
	Short: "Send funds (in the chain's base unit) to the bundling service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		amount, ok := new(big.Int).SetString(args[0], 10)
		if !ok {
			return errors.New("amount needs to be a base 10 integer")
		}

		manager, err := setupFund()
		if err != nil {
			return
		}

		response, err := manager.Fund(ctx, amount, feeMultiplier)
		if err != nil {
			return
		}

		fmt.Printf("Funded %s with fee %s, tx id: %s\n", response.Quantity, response.Reward, response.Id)
		return
	},
}
