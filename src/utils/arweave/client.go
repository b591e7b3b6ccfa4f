package arweave

import (
	"context"
	"math/big"
	"net/http"
	"strconv"

	"github.com/FAIR-Protocol/go-sdk/src/utils/config"
)

type Client struct {
	*BaseClient
}

func NewClient(config *config.Arweave) (self *Client) {
	self = new(Client)
	self.BaseClient = newBaseClient(config)
	return
}

// https://docs.arweave.org/developers/server/http-api#network-info
func (self *Client) GetNetworkInfo(ctx context.Context) (out *NetworkInfo, err error) {
	resp, err := self.Request(ctx).
		ForceContentType("application/json").
		SetResult(&NetworkInfo{}).
		Get("/info")
	if err != nil {
		return
	}

	out, ok := resp.Result().(*NetworkInfo)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}

// https://docs.arweave.org/developers/server/http-api#get-transaction-by-id
func (self *Client) GetTransactionById(ctx context.Context, id string) (out *Transaction, err error) {
	resp, err := self.Request(ctx).
		ForceContentType("application/json").
		SetResult(&Transaction{}).
		SetPathParam("id", id).
		Get("/tx/{id}")
	if err != nil {
		if resp != nil && resp.StatusCode() == http.StatusNotFound {
			err = ErrNotFound
		}
		return
	}

	out, ok := resp.Result().(*Transaction)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}

// https://docs.arweave.org/developers/server/http-api#get-transaction-status
// ErrPending is returned for transactions that are accepted but not yet in a block
func (self *Client) GetTransactionStatus(ctx context.Context, id string) (out *TxStatus, err error) {
	resp, err := self.Request(ctx).
		ForceContentType("application/json").
		SetResult(&TxStatus{}).
		SetPathParam("id", id).
		Get("/tx/{id}/status")
	if err != nil {
		if resp != nil {
			switch resp.StatusCode() {
			case http.StatusAccepted:
				err = ErrPending
			case http.StatusNotFound:
				err = ErrNotFound
			}
		}
		return
	}

	if resp.StatusCode() == http.StatusAccepted {
		err = ErrPending
		return
	}

	out, ok := resp.Result().(*TxStatus)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}

// Price of uploading numBytes to the given target, in winston.
// Target may be empty, transfers to a new wallet cost extra.
// https://docs.arweave.org/developers/server/http-api#transaction-price
func (self *Client) GetPrice(ctx context.Context, numBytes int64, target string) (out *big.Int, err error) {
	endpoint := "/price/" + strconv.FormatInt(numBytes, 10)
	if target != "" {
		endpoint += "/" + target
	}

	resp, err := self.Request(ctx).Get(endpoint)
	if err != nil {
		return
	}

	out, ok := new(big.Int).SetString(string(resp.Body()), 10)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}

// Anchor for new transactions
// https://docs.arweave.org/developers/server/http-api#get-transaction-anchor
func (self *Client) GetLastTransaction(ctx context.Context) (out string, err error) {
	resp, err := self.Request(ctx).Get("/tx_anchor")
	if err != nil {
		return
	}

	out = string(resp.Body())
	return
}

// Wallet balance in winston
// https://docs.arweave.org/developers/server/http-api#get-wallet-balance
func (self *Client) GetBalance(ctx context.Context, address string) (out *big.Int, err error) {
	resp, err := self.Request(ctx).
		SetPathParam("address", address).
		Get("/wallet/{address}/balance")
	if err != nil {
		return
	}

	out, ok := new(big.Int).SetString(string(resp.Body()), 10)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}

// Broadcasts a signed transaction
// https://docs.arweave.org/developers/server/http-api#submit-a-transaction
func (self *Client) Submit(ctx context.Context, tx *Transaction) (err error) {
	if len(tx.Signature) == 0 {
		return ErrTransactionNotSigned
	}

	_, err = self.Request(ctx).
		SetBody(tx).
		ForceContentType("application/json").
		Post("/tx")

	return
}
