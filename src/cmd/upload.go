package cmd

import (
	"fmt"

	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolVar(&withReceipt, "receipt", false, "request and verify a signed receipt")
	uploadCmd.Flags().StringToStringVar(&uploadTags, "tag", nil, "tag attached to the item, name=value")
}

var (
	withReceipt bool
	uploadTags  map[string]string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a single file as a data item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		up, err := setupUploader()
		if err != nil {
			return
		}

		var tags bundlr.Tags
		for name, value := range uploadTags {
			tags = append(tags, bundlr.Tag{Name: name, Value: value})
		}

		response, err := up.UploadFile(ctx, args[0], tags, &bundlr.UploadOptions{GetReceiptSignature: withReceipt})
		if err != nil {
			return
		}

		fmt.Printf("Uploaded, id: %s\n", response.Id)
		if withReceipt {
			fmt.Printf("Receipt verified, deadline height: %d\n", response.DeadlineHeight)
		}
		return
	},
}
