package config

import (
	"time"

	"github.com/spf13/viper"
)

type Ethereum struct {
	// URL of the JSON-RPC provider
	ProviderUrl string

	// Chain id used for signing, queried from the node when 0
	ChainId int64

	// Time limit for RPC requests
	RequestTimeout time.Duration
}

func setEthereumDefaults() {
	viper.SetDefault("Ethereum.ProviderUrl", "https://cloudflare-eth.com")
	viper.SetDefault("Ethereum.ChainId", 1)
	viper.SetDefault("Ethereum.RequestTimeout", "30s")
}
