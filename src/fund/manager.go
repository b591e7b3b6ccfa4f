package fund

import (
	"context"
	"errors"
	"math/big"

	"github.com/FAIR-Protocol/go-sdk/src/currency"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr/responses"
	"github.com/FAIR-Protocol/go-sdk/src/utils/config"
	"github.com/FAIR-Protocol/go-sdk/src/utils/logger"
	"github.com/FAIR-Protocol/go-sdk/src/utils/task"

	"github.com/sirupsen/logrus"
)

// Chain side result of a funding transaction
type FundResponse struct {
	Reward   string `json:"reward"`
	Target   string `json:"target"`
	Quantity string `json:"quantity"`
	Id       string `json:"id"`
}

// Manager drives the fund/withdraw lifecycle. Neither operation is
// idempotent: calling Fund twice creates two on-chain transactions.
// Confirmation tracking is left to the caller.
type Manager struct {
	config *config.Config
	log    *logrus.Entry

	registry *currency.Registry
	client   *bundlr.Client
}

func NewManager(config *config.Config, registry *currency.Registry, client *bundlr.Client) (self *Manager) {
	self = new(Manager)
	self.config = config
	self.log = logger.NewSublogger("fund")
	self.registry = registry
	self.client = client
	return
}

// Fund sends amount (in the chain's base unit) to the bundling service's
// receiving address. The fee estimate is scaled by multiplier, a knob that
// trades cost for priority on congested chains. Returns as soon as the
// broadcast succeeds, confirmation is the chain's business.
func (self *Manager) Fund(ctx context.Context, amount *big.Int, multiplier float64) (out *FundResponse, err error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, &currency.InvalidAmountError{Amount: amount.String()}
	}
	if multiplier <= 0 {
		multiplier = 1.0
	}

	c := self.registry.Currency()

	to, err := self.client.GetBundlerAddress(ctx, c.Name())
	if err != nil {
		return
	}

	fee, err := c.GetFee(ctx, amount, to)
	if err != nil {
		return
	}
	fee = ScaleFee(fee, multiplier)

	tx, err := c.CreateTx(ctx, amount, to, fee)
	if err != nil {
		return
	}

	txId, err := c.SendTx(ctx, tx)
	if err != nil {
		return
	}

	self.log.WithField("tx_id", txId).
		WithField("amount", amount.String()).
		WithField("fee", fee.String()).
		Info("Funding transaction broadcast")

	// The transaction is already on chain, so the credit notification is
	// retried. Service rejections are final.
	err = task.NewRetry().
		WithContext(ctx).
		WithMaxElapsedTime(self.config.Fund.RetryMaxElapsedTime).
		WithMaxInterval(self.config.Fund.RetryMaxInterval).
		WithOnError(func(err error) {
			self.log.WithError(err).WithField("tx_id", txId).Warn("Failed to notify service about funding tx, retrying")
		}).
		Run(func() error {
			err := self.client.SubmitFundTransaction(ctx, c.Name(), txId)
			var rejection *bundlr.ServiceRejectionError
			if errors.As(err, &rejection) {
				return task.Permanent(err)
			}
			return err
		})
	if err != nil {
		return
	}

	return &FundResponse{
		Reward:   fee.String(),
		Target:   to,
		Quantity: amount.String(),
		Id:       txId,
	}, nil
}

// Withdraw asks the bundling service to move funds from the service side
// balance back to the chain address. This is a request to a third party, not
// a chain transaction this client controls.
func (self *Manager) Withdraw(ctx context.Context, amount *big.Int) (out *responses.Withdraw, err error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, &currency.InvalidAmountError{Amount: amount.String()}
	}

	c := self.registry.Currency()

	if c.Address() == "" {
		err = c.Ready(ctx)
		if err != nil {
			return
		}
	}

	nonce, err := self.client.GetWithdrawalNonce(ctx, c.Name(), c.Address())
	if err != nil {
		return
	}

	request := &bundlr.WithdrawRequest{
		Currency: c.Name(),
		Amount:   amount.String(),
		Nonce:    nonce,
	}

	err = request.Sign(c.Signer())
	if err != nil {
		return nil, &currency.SigningError{Chain: c.Name(), Err: err}
	}

	return self.client.Withdraw(ctx, request)
}

// ScaleFee multiplies the fee estimate, rounding up. Underpaying network
// fees risks a stuck or rejected transaction.
func ScaleFee(fee *big.Int, multiplier float64) *big.Int {
	if multiplier == 1.0 {
		return fee
	}

	scaled := new(big.Float).Mul(new(big.Float).SetInt(fee), big.NewFloat(multiplier))
	out, accuracy := scaled.Int(nil)
	if accuracy == big.Below {
		out.Add(out, big.NewInt(1))
	}
	return out
}
