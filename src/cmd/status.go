package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Show the processing status of an uploaded item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		status, err := setupClient().GetStatus(ctx, args[0])
		if err != nil {
			return
		}

		fmt.Printf("Status: %s\n", status.Status)
		return
	},
}
