package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(priceCmd)
}

var priceCmd = &cobra.Command{
	Use:   "price <bytes>",
	Short: "Quote the upload price for a number of bytes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		numBytes, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || numBytes < 0 {
			return errors.New("bytes needs to be a non-negative integer")
		}

		registry, err := setupRegistry()
		if err != nil {
			return
		}
		c := registry.Currency()

		price, err := setupClient().GetPrice(ctx, c.Name(), numBytes)
		if err != nil {
			return
		}

		unit, _ := c.Base()
		fmt.Printf("%s %s for %d bytes\n", price.String(), unit, numBytes)
		return
	},
}
