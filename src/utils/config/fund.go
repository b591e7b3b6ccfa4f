package config

import (
	"time"

	"github.com/spf13/viper"
)

type Fund struct {
	// Max total time the service is told about a broadcast funding
	// transaction before giving up. The transaction itself is never resent.
	RetryMaxElapsedTime time.Duration

	// Max interval between notification retries
	RetryMaxInterval time.Duration
}

func setFundDefaults() {
	viper.SetDefault("Fund.RetryMaxElapsedTime", "1m")
	viper.SetDefault("Fund.RetryMaxInterval", "10s")
}
