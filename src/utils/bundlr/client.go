package bundlr

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr/responses"
	"github.com/FAIR-Protocol/go-sdk/src/utils/config"

	"github.com/go-resty/resty/v2"
)

// Client for the bundling service's HTTP API
type Client struct {
	*BaseClient
}

type UploadOptions struct {
	// Request a cryptographic receipt for the upload. Duplicate items become
	// an error, a receipt cannot be issued twice for the same signature.
	GetReceiptSignature bool
}

func NewClient(config *config.Bundlr) (self *Client) {
	self = new(Client)
	self.BaseClient = newBaseClient(config)
	return
}

// Service side balance of the given address
func (self *Client) GetBalance(ctx context.Context, currency, address string) (out *big.Int, err error) {
	resp, err := self.Request(ctx).
		ForceContentType("application/json").
		SetResult(&responses.Balance{}).
		SetPathParam("currency", currency).
		SetQueryParam("address", address).
		Get("/account/balance/{currency}")
	if err != nil {
		return
	}

	balance, ok := resp.Result().(*responses.Balance)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return &balance.Balance.Int, nil
}

// Price of uploading numBytes, in the chain's base unit. Quotes are cached.
func (self *Client) GetPrice(ctx context.Context, currency string, numBytes int64) (out *big.Int, err error) {
	cacheKey := fmt.Sprintf("price.%s.%d", currency, numBytes)
	if cached, ok := self.cache.Get(cacheKey); ok {
		return cached.(*big.Int), nil
	}

	resp, err := self.Request(ctx).
		SetPathParam("currency", currency).
		SetPathParam("bytes", strconv.FormatInt(numBytes, 10)).
		Get("/price/{currency}/{bytes}")
	if err != nil {
		return
	}

	out, ok := new(big.Int).SetString(strings.TrimSpace(string(resp.Body())), 10)
	if !ok {
		err = ErrFailedToParse
		return
	}

	self.cache.SetDefault(cacheKey, out)
	return
}

// Node info with the receiving address per chain. Cached.
func (self *Client) GetInfo(ctx context.Context) (out *responses.Info, err error) {
	if cached, ok := self.cache.Get("info"); ok {
		return cached.(*responses.Info), nil
	}

	resp, err := self.Request(ctx).
		ForceContentType("application/json").
		SetResult(&responses.Info{}).
		Get("/info")
	if err != nil {
		return
	}

	out, ok := resp.Result().(*responses.Info)
	if !ok {
		err = ErrFailedToParse
		return
	}

	self.cache.SetDefault("info", out)
	return
}

// Address funding transactions should be sent to
func (self *Client) GetBundlerAddress(ctx context.Context, currency string) (out string, err error) {
	info, err := self.GetInfo(ctx)
	if err != nil {
		return
	}

	out, ok := info.Addresses[currency]
	if !ok {
		err = fmt.Errorf("service has no address for currency %s", currency)
		return
	}

	return
}

// Submits a signed data item. A 202 response means the service has already
// received an item with the same signature. Without a receipt request that is
// reported as UploadStatusAlreadyReceived, with one it is a rejection.
func (self *Client) Upload(ctx context.Context, currency string, signer Signer, item *DataItem, opts *UploadOptions) (out *responses.Upload, resp *resty.Response, err error) {
	if opts == nil {
		opts = &UploadOptions{}
	}

	reader, err := item.Reader(signer)
	if err != nil {
		return
	}

	req := self.Request(ctx).
		SetBody(reader.Bytes()).
		SetResult(&responses.Upload{}).
		ForceContentType("application/json").
		SetHeader("Content-Type", "application/octet-stream").
		SetPathParam("currency", currency)

	if opts.GetReceiptSignature {
		req.SetHeader("x-proof-type", "receipt")
	}

	resp, err = req.Post("/tx/{currency}")

	if resp != nil {
		switch resp.StatusCode() {
		case http.StatusPaymentRequired:
			err = ErrPaymentRequired
			return
		case http.StatusAccepted:
			// Duplicate of a previously submitted item
			if opts.GetReceiptSignature {
				err = &ServiceRejectionError{
					Op:         "upload",
					StatusCode: resp.StatusCode(),
					Reason:     "receipt cannot be issued twice for the same signature",
				}
				return
			}
			out = &responses.Upload{
				Id:     item.Id.Base64(),
				Status: responses.UploadStatusAlreadyReceived,
			}
			err = nil
			return
		}
	}

	if err != nil {
		return
	}

	out, ok := resp.Result().(*responses.Upload)
	if !ok {
		err = ErrFailedToParse
		return
	}
	if out.Id == "" {
		err = ErrIdEmpty
		return
	}
	out.Status = responses.UploadStatusAccepted

	return
}

// Status of an uploaded item
func (self *Client) GetStatus(ctx context.Context, id string) (out *responses.Status, err error) {
	resp, err := self.Request(ctx).
		ForceContentType("application/json").
		SetResult(&responses.Status{}).
		SetPathParam("id", id).
		Get("/tx/{id}/status")
	if err != nil {
		return
	}

	out, ok := resp.Result().(*responses.Status)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}

// Tells the service to credit a broadcast funding transaction
func (self *Client) SubmitFundTransaction(ctx context.Context, currency, txId string) (err error) {
	resp, err := self.Request(ctx).
		SetBody(map[string]string{"tx_id": txId}).
		ForceContentType("application/json").
		SetPathParam("currency", currency).
		Post("/account/balance/{currency}")
	if err != nil && resp != nil && resp.StatusCode() == http.StatusBadRequest {
		err = &ServiceRejectionError{
			Op:         "fund",
			StatusCode: resp.StatusCode(),
			Reason:     strings.TrimSpace(string(resp.Body())),
		}
	}
	return
}

// Nonce expected in the next withdrawal request for the address
func (self *Client) GetWithdrawalNonce(ctx context.Context, currency, address string) (out uint64, err error) {
	resp, err := self.Request(ctx).
		SetPathParam("currency", currency).
		SetQueryParam("address", address).
		Get("/account/withdrawals/{currency}")
	if err != nil {
		return
	}

	out, err = strconv.ParseUint(strings.TrimSpace(string(resp.Body())), 10, 64)
	if err != nil {
		err = ErrFailedToParse
		return
	}

	return
}

// Asks the service to move funds back to the chain address.
// Insufficient service side balance is a rejection, not a network failure.
func (self *Client) Withdraw(ctx context.Context, request *WithdrawRequest) (out *responses.Withdraw, err error) {
	resp, err := self.Request(ctx).
		SetBody(request).
		SetResult(&responses.Withdraw{}).
		ForceContentType("application/json").
		Post("/account/withdraw")
	if err != nil {
		if resp != nil && resp.StatusCode() == http.StatusBadRequest {
			err = &ServiceRejectionError{
				Op:         "withdraw",
				StatusCode: resp.StatusCode(),
				Reason:     strings.TrimSpace(string(resp.Body())),
			}
		}
		return
	}

	out, ok := resp.Result().(*responses.Withdraw)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}
