package cmd

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(withdrawCmd)
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <amount>",
	Short: "Withdraw funds from the bundling service balance",
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

		response, err := manager.Withdraw(ctx, amount)
		if err != nil {
			return
		}

		fmt.Printf("Withdrawal requested: %s, final balance: %d\n", response.TxId, response.Final)
		return
	},
}
