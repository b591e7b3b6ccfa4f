package currency

import (
	"context"

	"github.com/FAIR-Protocol/go-sdk/src/utils/config"

	"github.com/go-resty/resty/v2"
)

// Fetches fiat conversion rates, used only for display
type ratesClient struct {
	client *resty.Client
	url    string
}

func newRatesClient(config *config.Currency) (self *ratesClient) {
	self = new(ratesClient)
	self.url = config.RatesUrl
	self.client = resty.New().
		SetTimeout(config.RatesRequestTimeout).
		SetHeader("User-Agent", "fair-protocol/go-sdk")
	return
}

func (self *ratesClient) GetRate(ctx context.Context, ticker string) (out float64, err error) {
	result := make([]struct {
		Value float64 `json:"value"`
	}, 0, 1)

	resp, err := self.client.R().
		SetContext(ctx).
		SetQueryParam("symbol", ticker).
		SetQueryParam("provider", "redstone").
		SetQueryParam("limit", "1").
		SetResult(&result).
		ForceContentType("application/json").
		Get(self.url)
	if err != nil {
		return
	}

	rates, ok := resp.Result().(*[]struct {
		Value float64 `json:"value"`
	})
	if !ok || len(*rates) == 0 {
		err = ErrNoRate
		return
	}

	return (*rates)[0].Value, nil
}
