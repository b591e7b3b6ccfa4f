package config

import (
	"time"

	"github.com/spf13/viper"
)

type Bundlr struct {
	// URL of the bundling service node
	Url string

	// Time limit for requests. The timeout includes connection time, any
	// redirects, and reading the response body
	RequestTimeout time.Duration

	// Maximum amount of time a dial will wait for a connect to complete.
	DialerTimeout time.Duration

	// Interval between keep-alive probes for an active network connection.
	DialerKeepAlive time.Duration

	// Maximum amount of time an idle (keep-alive) connection will remain idle before closing itself.
	IdleConnTimeout time.Duration

	// Maximum amount of time waiting to wait for a TLS handshake
	TLSHandshakeTimeout time.Duration

	// Time in which max num of requests is enforced
	LimiterInterval time.Duration

	// Max num requests to the node per interval
	LimiterBurstSize int

	// How long cached node info and price quotes stay valid
	CacheTTL time.Duration

	// Interval between cache eviction runs
	CacheCleanupInterval time.Duration
}

func setBundlrDefaults() {
	viper.SetDefault("Bundlr.Url", "https://node1.bundlr.network")
	viper.SetDefault("Bundlr.RequestTimeout", "30s")
	viper.SetDefault("Bundlr.DialerTimeout", "30s")
	viper.SetDefault("Bundlr.DialerKeepAlive", "15s")
	viper.SetDefault("Bundlr.IdleConnTimeout", "31s")
	viper.SetDefault("Bundlr.TLSHandshakeTimeout", "10s")
	viper.SetDefault("Bundlr.LimiterInterval", "500ms")
	viper.SetDefault("Bundlr.LimiterBurstSize", "7")
	viper.SetDefault("Bundlr.CacheTTL", "5m")
	viper.SetDefault("Bundlr.CacheCleanupInterval", "10m")
}
