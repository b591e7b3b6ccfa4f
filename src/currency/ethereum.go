package currency

import (
	"context"
	"errors"
	"math/big"

	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"
	"github.com/FAIR-Protocol/go-sdk/src/utils/config"
	"github.com/FAIR-Protocol/go-sdk/src/utils/logger"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ethereum_crypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
)

func init() {
	Register("ethereum", NewEthereumCurrency)
}

const transferGasLimit = 21000

// Fast chain, flat fee per transfer, sequential nonces. Only one funding
// transaction should be in flight per address.
type EthereumCurrency struct {
	config *config.Config
	log    *logrus.Entry

	client *ethclient.Client
	signer *bundlr.EthereumSigner
	rates  *ratesClient

	address    string
	chainId    *big.Int
	minConfirm int
}

func NewEthereumCurrency(config *config.Config) (out Currency, err error) {
	self := new(EthereumCurrency)
	self.config = config
	self.log = logger.NewSublogger("currency-ethereum")
	self.rates = newRatesClient(&config.Currency)
	self.minConfirm = 5
	self.chainId = big.NewInt(config.Ethereum.ChainId)

	self.signer, err = bundlr.NewEthereumSigner(config.Currency.Wallet)
	if err != nil {
		return nil, &SigningError{Chain: "ethereum", Err: err}
	}

	self.client, err = ethclient.Dial(config.Ethereum.ProviderUrl)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "ethereum", Op: "dial", Err: err}
	}

	return self, nil
}

func (self *EthereumCurrency) Name() string {
	return "ethereum"
}

func (self *EthereumCurrency) Ticker() string {
	return "ETH"
}

func (self *EthereumCurrency) IsSlow() bool {
	return false
}

func (self *EthereumCurrency) NeedsFee() bool {
	return true
}

func (self *EthereumCurrency) Base() (unit string, multiplier int64) {
	return "wei", 1_000_000_000_000_000_000
}

func (self *EthereumCurrency) MinConfirm() int {
	return self.minConfirm
}

func (self *EthereumCurrency) Address() string {
	return self.address
}

func (self *EthereumCurrency) OwnerToAddress(owner []byte) (string, error) {
	publicKey, err := ethereum_crypto.UnmarshalPubkey(owner)
	if err != nil {
		return "", &InvalidAddressError{Chain: "ethereum", Address: ""}
	}
	return ethereum_crypto.PubkeyToAddress(*publicKey).Hex(), nil
}

func (self *EthereumCurrency) GetPublicKey(ctx context.Context) ([]byte, error) {
	return self.signer.GetOwner(), nil
}

func (self *EthereumCurrency) Sign(data []byte) (out []byte, err error) {
	out, err = self.signer.Sign(data)
	if err != nil {
		return nil, &SigningError{Chain: "ethereum", Err: err}
	}
	return
}

func (self *EthereumCurrency) Signer() bundlr.Signer {
	return self.signer
}

func (self *EthereumCurrency) Verify(pub, data, signature []byte) bool {
	return bundlr.Verify(bundlr.SignatureTypeEthereum, pub, data, signature)
}

func (self *EthereumCurrency) Price(ctx context.Context) (float64, error) {
	return self.rates.GetRate(ctx, self.Ticker())
}

// Flat fee: suggested gas price times the fixed transfer gas limit
func (self *EthereumCurrency) GetFee(ctx context.Context, amount *big.Int, to string) (out *big.Int, err error) {
	gasPrice, err := self.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "ethereum", Op: "suggest gas price", Err: err}
	}

	return new(big.Int).Mul(gasPrice, big.NewInt(transferGasLimit)), nil
}

func (self *EthereumCurrency) CreateTx(ctx context.Context, amount *big.Int, to string, fee *big.Int) (out *PendingTx, err error) {
	if !common.IsHexAddress(to) {
		return nil, &InvalidAddressError{Chain: "ethereum", Address: to}
	}
	target := common.HexToAddress(to)

	if fee == nil {
		fee, err = self.GetFee(ctx, amount, to)
		if err != nil {
			return
		}
	}

	// Fee is the total, gas price is per unit. Round up to not underpay.
	gasPrice := new(big.Int).Div(
		new(big.Int).Add(fee, big.NewInt(transferGasLimit-1)),
		big.NewInt(transferGasLimit),
	)

	from := ethereum_crypto.PubkeyToAddress(self.signer.PrivateKey.PublicKey)
	nonce, err := self.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "ethereum", Op: "get nonce", Err: err}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      transferGasLimit,
		To:       &target,
		Value:    amount,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(self.chainId), self.signer.PrivateKey)
	if err != nil {
		return nil, &SigningError{Chain: "ethereum", Err: err}
	}

	return &PendingTx{Id: signedTx.Hash().Hex(), Raw: signedTx}, nil
}

func (self *EthereumCurrency) SendTx(ctx context.Context, tx *PendingTx) (txId string, err error) {
	native, ok := tx.Raw.(*types.Transaction)
	if !ok {
		err = errors.New("not an ethereum transaction")
		return
	}

	err = self.client.SendTransaction(ctx, native)
	if err != nil {
		return "", &ChainCommunicationError{Chain: "ethereum", Op: "send tx", Err: err}
	}

	return native.Hash().Hex(), nil
}

func (self *EthereumCurrency) GetTx(ctx context.Context, txId string) (out *Tx, err error) {
	tx, isPending, err := self.client.TransactionByHash(ctx, common.HexToHash(txId))
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "ethereum", Op: "get tx", Err: err}
	}

	from, err := types.Sender(types.LatestSignerForChainID(self.chainId), tx)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "ethereum", Op: "recover sender", Err: err}
	}

	to := ""
	if tx.To() != nil {
		to = tx.To().Hex()
	}

	observation := &Tx{
		From:    from.Hex(),
		To:      to,
		Amount:  tx.Value(),
		Pending: isPending,
	}

	if isPending {
		return observation, nil
	}

	receipt, err := self.client.TransactionReceipt(ctx, common.HexToHash(txId))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return observation, nil
		}
		return nil, &ChainCommunicationError{Chain: "ethereum", Op: "get receipt", Err: err}
	}

	head, err := self.client.BlockNumber(ctx)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "ethereum", Op: "get height", Err: err}
	}

	observation.BlockHeight = receipt.BlockNumber
	confirmations := new(big.Int).Sub(new(big.Int).SetUint64(head), receipt.BlockNumber)
	confirmations.Add(confirmations, big.NewInt(1))
	observation.Confirmed = confirmations.Cmp(big.NewInt(int64(self.minConfirm))) >= 0

	return observation, nil
}

func (self *EthereumCurrency) GetCurrentHeight(ctx context.Context) (out *big.Int, err error) {
	height, err := self.client.BlockNumber(ctx)
	if err != nil {
		return nil, &ChainCommunicationError{Chain: "ethereum", Op: "get height", Err: err}
	}
	return new(big.Int).SetUint64(height), nil
}

func (self *EthereumCurrency) Ready(ctx context.Context) (err error) {
	if self.chainId == nil || self.chainId.Sign() == 0 {
		self.chainId, err = self.client.ChainID(ctx)
		if err != nil {
			return &ChainCommunicationError{Chain: "ethereum", Op: "get chain id", Err: err}
		}
	}

	self.address, err = self.OwnerToAddress(self.signer.GetOwner())
	if err != nil {
		return
	}

	self.log.WithField("address", self.address).Debug("Wallet ready")
	return
}
