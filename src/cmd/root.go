package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/FAIR-Protocol/go-sdk/src/currency"
	"github.com/FAIR-Protocol/go-sdk/src/fund"
	"github.com/FAIR-Protocol/go-sdk/src/uploader"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"
	"github.com/FAIR-Protocol/go-sdk/src/utils/config"
	"github.com/FAIR-Protocol/go-sdk/src/utils/logger"

	"github.com/spf13/cobra"
)

var (
	RootCmd = &cobra.Command{
		Use:   "fair",
		Short: "Client for funding and uploading data to a bundling service",

		// All child commands will use this
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			// Setup a context that gets cancelled upon SIGINT
			ctx, cancel = context.WithCancel(context.Background())

			signalChannel = make(chan os.Signal, 1)
			signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
			go func() {
				select {
				case <-signalChannel:
					cancel()
				case <-ctx.Done():
				}
			}()

			// Load configuration
			conf, err = config.Load(cfgFile)
			if err != nil {
				return
			}
			if currencyName != "" {
				conf.Currency.Name = currencyName
			}
			if nodeUrl != "" {
				conf.Bundlr.Url = nodeUrl
			}

			// Setup logging
			err = logger.Init(conf)
			if err != nil {
				return
			}
			return
		},

		PersistentPostRunE: func(cmd *cobra.Command, args []string) (err error) {
			signal.Stop(signalChannel)
			cancel()
			return
		},
		SilenceErrors: true,
	}

	// Configuration
	conf         *config.Config
	cfgFile      string
	currencyName string
	nodeUrl      string

	// Context setup
	ctx           context.Context
	cancel        context.CancelFunc
	signalChannel chan os.Signal
)

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file path")
	RootCmd.PersistentFlags().StringVarP(&currencyName, "currency", "c", "", "chain used for payments (arweave, ethereum)")
	RootCmd.PersistentFlags().StringVarP(&nodeUrl, "host", "H", "", "bundling service url")
}

func setupRegistry() (registry *currency.Registry, err error) {
	return currency.NewRegistry(conf)
}

func setupClient() *bundlr.Client {
	return bundlr.NewClient(&conf.Bundlr)
}

func setupFund() (manager *fund.Manager, err error) {
	registry, err := setupRegistry()
	if err != nil {
		return
	}
	return fund.NewManager(conf, registry, setupClient()), nil
}

func setupUploader() (up *uploader.Uploader, err error) {
	registry, err := setupRegistry()
	if err != nil {
		return
	}
	return uploader.NewUploader(conf, registry, setupClient()), nil
}
