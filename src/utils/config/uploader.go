package config

import (
	"time"

	"github.com/spf13/viper"
)

type Uploader struct {
	// Max number of concurrent in-flight item uploads within one batch
	BatchSize int

	// Whether manifest entries for permanently failed items are kept
	// as a null sentinel instead of being dropped
	KeepDeleted bool

	// Max total time a single item upload is retried. 0 disables the limit.
	RetryMaxElapsedTime time.Duration

	// Max interval between retries of a single item upload
	RetryMaxInterval time.Duration
}

func setUploaderDefaults() {
	viper.SetDefault("Uploader.BatchSize", 10)
	viper.SetDefault("Uploader.KeepDeleted", false)
	viper.SetDefault("Uploader.RetryMaxElapsedTime", "2m")
	viper.SetDefault("Uploader.RetryMaxInterval", "15s")
}
