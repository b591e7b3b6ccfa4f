package currency

import (
	"context"
	"errors"
	"math/big"

	"github.com/FAIR-Protocol/go-sdk/src/utils/arweave"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"
	"github.com/FAIR-Protocol/go-sdk/src/utils/config"
	"github.com/FAIR-Protocol/go-sdk/src/utils/logger"

	"github.com/sirupsen/logrus"
)

func init() {
	Register("arweave", NewArweaveCurrency)
}

// Reference provider. Confirmation takes long, fees are paid in winston and
// depend on the payload size and the destination wallet.
type ArweaveCurrency struct {
	config *config.Config
	log    *logrus.Entry

	client *arweave.Client
	signer bundlr.Signer
	rates  *ratesClient

	address    string
	minConfirm int
}

func NewArweaveCurrency(config *config.Config) (out Currency, err error) {
	signer, err := bundlr.NewArweaveSigner(config.Currency.Wallet)
	if err != nil {
		return nil, &SigningError{Chain: "arweave", Err: err}
	}
	return NewArweaveCurrencyWithSigner(config, signer), nil
}

// Variant used with an external wallet, the signer is injected instead of
// being loaded from key material
func NewArweaveCurrencyWithSigner(config *config.Config, signer bundlr.Signer) (self *ArweaveCurrency) {
	self = new(ArweaveCurrency)
	self.config = config
	self.log = logger.NewSublogger("currency-arweave")
	self.client = arweave.NewClient(&config.Arweave)
	self.signer = signer
	self.rates = newRatesClient(&config.Currency)
	self.minConfirm = 5
	return
}

func (self *ArweaveCurrency) Name() string {
	return "arweave"
}

func (self *ArweaveCurrency) Ticker() string {
	return "AR"
}

func (self *ArweaveCurrency) IsSlow() bool {
	return true
}

func (self *ArweaveCurrency) NeedsFee() bool {
	return true
}

func (self *ArweaveCurrency) Base() (unit string, multiplier int64) {
	return "winston", 1_000_000_000_000
}

func (self *ArweaveCurrency) MinConfirm() int {
	return self.minConfirm
}

func (self *ArweaveCurrency) Address() string {
	return self.address
}

func (self *ArweaveCurrency) OwnerToAddress(owner []byte) (string, error) {
	if len(owner) == 0 {
		return "", &InvalidAddressError{Chain: "arweave", Address: ""}
	}
	return arweave.OwnerToAddress(owner), nil
}

func (self *ArweaveCurrency) GetPublicKey(ctx context.Context) (out []byte, err error) {
	// External wallets need a handshake before the key is known
	if remote, ok := self.signer.(*bundlr.RemoteArweaveSigner); ok && len(remote.GetOwner()) == 0 {
		err = remote.FetchPublicKey(ctx)
		if err != nil {
			return nil, &SigningError{Chain: "arweave", Err: err}
		}
	}
	return self.signer.GetOwner(), nil
}

func (self *ArweaveCurrency) Sign(data []byte) (out []byte, err error) {
	out, err = self.signer.Sign(data)
	if err != nil {
		return nil, &SigningError{Chain: "arweave", Err: err}
	}
	return
}

func (self *ArweaveCurrency) Signer() bundlr.Signer {
	return self.signer
}

func (self *ArweaveCurrency) Verify(pub, data, signature []byte) bool {
	return bundlr.Verify(bundlr.SignatureTypeArweave, pub, data, signature)
}

func (self *ArweaveCurrency) Price(ctx context.Context) (float64, error) {
	return self.rates.GetRate(ctx, self.Ticker())
}

// Fee for storing amount bytes, optionally transferring to a wallet.
// The node returns an integer winston price, so it is already rounded up.
func (self *ArweaveCurrency) GetFee(ctx context.Context, amount *big.Int, to string) (out *big.Int, err error) {
	numBytes := int64(0)
	if amount != nil {
		numBytes = amount.Int64()
	}

	out, err = self.client.GetPrice(ctx, numBytes, to)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "arweave", Op: "get price", Err: err}
	}
	return
}

func (self *ArweaveCurrency) CreateTx(ctx context.Context, amount *big.Int, to string, fee *big.Int) (out *PendingTx, err error) {
	target, err := arweave.Base64StringFromBase64(to)
	if err != nil || len(target) != 32 {
		return nil, &InvalidAddressError{Chain: "arweave", Address: to}
	}

	if fee == nil {
		fee, err = self.GetFee(ctx, big.NewInt(0), to)
		if err != nil {
			return
		}
	}

	anchor, err := self.client.GetLastTransaction(ctx)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "arweave", Op: "get anchor", Err: err}
	}
	lastTx, err := arweave.Base64StringFromBase64(anchor)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "arweave", Op: "get anchor", Err: arweave.ErrFailedToParse}
	}

	tx := &arweave.Transaction{
		Format:   2,
		LastTx:   lastTx,
		Target:   target,
		Quantity: amount.String(),
		DataSize: "0",
		Reward:   fee.String(),
	}

	err = tx.Sign(self.signer)
	if err != nil {
		return nil, &SigningError{Chain: "arweave", Err: err}
	}

	return &PendingTx{Id: tx.ID, Raw: tx}, nil
}

func (self *ArweaveCurrency) SendTx(ctx context.Context, tx *PendingTx) (txId string, err error) {
	native, ok := tx.Raw.(*arweave.Transaction)
	if !ok {
		err = errors.New("not an arweave transaction")
		return
	}

	err = self.client.Submit(ctx, native)
	if err != nil {
		return "", &ChainCommunicationError{Chain: "arweave", Op: "submit tx", Err: err}
	}

	return native.ID, nil
}

func (self *ArweaveCurrency) GetTx(ctx context.Context, txId string) (out *Tx, err error) {
	status, err := self.client.GetTransactionStatus(ctx, txId)
	if errors.Is(err, arweave.ErrPending) {
		// Accepted but not yet in a block
		return &Tx{Amount: new(big.Int), Pending: true}, nil
	}
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "arweave", Op: "get tx status", Err: err}
	}

	tx, err := self.client.GetTransactionById(ctx, txId)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "arweave", Op: "get tx", Err: err}
	}

	amount, ok := new(big.Int).SetString(tx.Quantity, 10)
	if !ok {
		amount = new(big.Int)
	}

	from, err := self.OwnerToAddress(tx.Owner)
	if err != nil {
		from = ""
		err = nil
	}

	return &Tx{
		From:        from,
		To:          tx.Target.Base64(),
		Amount:      amount,
		BlockHeight: big.NewInt(status.BlockHeight),
		Pending:     false,
		Confirmed:   status.NumberOfConfirmations >= int64(self.minConfirm),
	}, nil
}

func (self *ArweaveCurrency) GetCurrentHeight(ctx context.Context) (out *big.Int, err error) {
	info, err := self.client.GetNetworkInfo(ctx)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "arweave", Op: "get network info", Err: err}
	}
	return big.NewInt(info.Height), nil
}

func (self *ArweaveCurrency) Ready(ctx context.Context) (err error) {
	owner, err := self.GetPublicKey(ctx)
	if err != nil {
		return
	}

	self.address, err = self.OwnerToAddress(owner)
	if err != nil {
		return
	}

	self.log.WithField("address", self.address).Debug("Wallet ready")
	return
}
