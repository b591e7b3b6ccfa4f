package cmd

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/FAIR-Protocol/go-sdk/src/uploader"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(uploadDirCmd)
	uploadDirCmd.Flags().StringVar(&indexFile, "index-file", "", "relative path served for the manifest itself")
	uploadDirCmd.Flags().IntVar(&batchSize, "batch-size", 0, "concurrent uploads per batch")
	uploadDirCmd.Flags().BoolVar(&keepDeleted, "keep-deleted", false, "keep failed paths in the manifest as null entries")
	uploadDirCmd.Flags().StringVar(&maxPrice, "max-price", "", "abort when the folder quote exceeds this many base units")
}

var (
	indexFile   string
	batchSize   int
	keepDeleted bool
	maxPrice    string
)

var uploadDirCmd = &cobra.Command{
	Use:   "upload-dir <dir>",
	Short: "Upload a folder and publish a path manifest for it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		up, err := setupUploader()
		if err != nil {
			return
		}

		opts := &uploader.FolderOptions{
			BatchSize: batchSize,
			IndexFile: indexFile,
			OnProgress: func(path, id string) {
				fmt.Printf("  %s -> %s\n", path, id)
			},
		}
		if cmd.Flags().Changed("keep-deleted") {
			opts.KeepDeleted = &keepDeleted
		}

		if maxPrice != "" {
			limit, ok := new(big.Int).SetString(maxPrice, 10)
			if !ok {
				return errors.New("max-price needs to be a base 10 integer")
			}
			opts.Preflight = func(price *big.Int) (bool, error) {
				fmt.Printf("Folder quote: %s\n", price.String())
				return price.Cmp(limit) <= 0, nil
			}
		}

		result, err := up.UploadFolder(ctx, args[0], opts)

		var partial *uploader.PartialBatchFailure
		if errors.As(err, &partial) {
			fmt.Printf("Warning: %s\n", partial.Error())
			err = nil
		}
		if err != nil {
			return
		}

		fmt.Printf("Manifest id: %s (%d items, %d bytes)\n", result.ManifestId, len(result.Ids), result.Bytes)
		return
	},
}
