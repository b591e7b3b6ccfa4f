package config

import (
	"time"

	"github.com/spf13/viper"
)

type Currency struct {
	// Name of the active chain, used to pick the provider from the registry
	Name string

	// Wallet material. For Arweave this is the JWK (inline JSON or a file path),
	// for Ethereum a hex encoded private key.
	Wallet string

	// Minimum number of confirmations before a transaction is considered final.
	// 0 means use the chain's default.
	MinConfirm int

	// Interval between transaction status polls
	PollDelay time.Duration

	// Endpoint used only for displaying the fiat conversion rate
	RatesUrl string

	// Time limit for conversion rate requests
	RatesRequestTimeout time.Duration
}

func setCurrencyDefaults() {
	viper.SetDefault("Currency.Name", "arweave")
	viper.SetDefault("Currency.Wallet", "")
	viper.SetDefault("Currency.MinConfirm", 0)
	viper.SetDefault("Currency.PollDelay", "30s")
	viper.SetDefault("Currency.RatesUrl", "https://api.redstone.finance/prices")
	viper.SetDefault("Currency.RatesRequestTimeout", "10s")
}
