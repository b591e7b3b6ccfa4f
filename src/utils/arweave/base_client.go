package arweave

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/FAIR-Protocol/go-sdk/src/utils/config"
	"github.com/FAIR-Protocol/go-sdk/src/utils/logger"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type BaseClient struct {
	config *config.Arweave
	log    *logrus.Entry

	client  *resty.Client
	limiter *rate.Limiter
}

func newBaseClient(config *config.Arweave) (self *BaseClient) {
	self = new(BaseClient)
	self.log = logger.NewSublogger("arweave-client")
	self.config = config
	self.limiter = rate.NewLimiter(rate.Every(config.LimiterInterval), config.LimiterBurstSize)

	self.client = resty.New().
		SetBaseURL(config.NodeUrl).
		SetTimeout(config.RequestTimeout).
		SetHeader("User-Agent", "fair-protocol/go-sdk").
		SetRetryCount(1).
		SetTransport(self.createTransport()).
		AddRetryCondition(self.onRetryCondition).
		OnBeforeRequest(self.onRateLimit).
		OnAfterResponse(self.onStatusToError)

	return
}

func (self *BaseClient) createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   self.config.DialerTimeout,
		KeepAlive: self.config.DialerKeepAlive,
	}

	return &http.Transport{
		// Some config options disable http2, try it anyway
		ForceAttemptHTTP2: true,

		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   self.config.TLSHandshakeTimeout,
		ExpectContinueTimeout: 1 * time.Second,

		// arweave.net may sometimes stop responding on idle connections,
		// resulting in error: context deadline exceeded (Client.Timeout exceeded while awaiting headers)
		IdleConnTimeout:     self.config.IdleConnTimeout,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
	}
}

// Converts HTTP status to errors
func (self *BaseClient) onStatusToError(c *resty.Client, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	if resp.StatusCode() > 399 && resp.StatusCode() < 500 {
		self.log.WithField("status", resp.StatusCode()).
			WithField("resp", string(resp.Body())).
			WithField("url", resp.Request.URL).
			Debug("Bad request")
	}
	return fmt.Errorf("unexpected status: %s", resp.Status())
}

// Retry request only upon server errors
func (self *BaseClient) onRetryCondition(resp *resty.Response, err error) bool {
	return resp != nil && resp.StatusCode() >= 500
}

// Blocks till the request is possible or ctx gets canceled
func (self *BaseClient) onRateLimit(c *resty.Client, req *resty.Request) (err error) {
	err = self.limiter.Wait(req.Context())
	if err != nil {
		self.log.WithError(err).Error("Rate limiting failed")
	}
	return
}

func (self *BaseClient) Request(ctx context.Context) *resty.Request {
	return self.client.R().SetContext(ctx)
}
