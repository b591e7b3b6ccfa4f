package currency

import (
	"context"
	"math/big"

	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"
)

// Currency unifies the signing, fee and transaction semantics of one chain.
// Components above it never special-case a chain, new chains plug in through
// the registry without touching the funding manager or the uploader.
type Currency interface {
	Name() string
	Ticker() string

	// Whether confirmation is expected to take long
	IsSlow() bool

	NeedsFee() bool

	// Smallest denomination and how many of it make one token
	Base() (unit string, multiplier int64)

	// Default number of confirmations before a transaction counts as final
	MinConfirm() int

	// Chain address of the loaded wallet, empty before Ready
	Address() string

	// Deterministic mapping from a public key to the chain's address format
	OwnerToAddress(owner []byte) (string, error)

	// Public key of the signer. May require a handshake with an external
	// wallet, cancelling the context leaves no partial state behind.
	GetPublicKey(ctx context.Context) ([]byte, error)

	Sign(data []byte) ([]byte, error)

	// The signer is owned by this provider and is never shared
	Signer() bundlr.Signer

	// Never panics, malformed input yields false
	Verify(pub, data, signature []byte) bool

	// Conversion rate of one token, display only
	Price(ctx context.Context) (float64, error)

	// Fee estimate for sending amount to the given address, rounded up.
	// Underestimating fees risks a stuck transaction.
	GetFee(ctx context.Context, amount *big.Int, to string) (*big.Int, error)

	// Builds and signs a native transaction without broadcasting it
	CreateTx(ctx context.Context, amount *big.Int, to string, fee *big.Int) (*PendingTx, error)

	// Broadcasts a previously created transaction
	SendTx(ctx context.Context, tx *PendingTx) (txId string, err error)

	// Current on-chain status, every call produces a fresh observation
	GetTx(ctx context.Context, txId string) (*Tx, error)

	GetCurrentHeight(ctx context.Context) (*big.Int, error)

	// One time initialization, derives the address from the signer's public
	// key. Must complete before any method that depends on the address.
	Ready(ctx context.Context) error
}

// On-chain transaction observation, read only
type Tx struct {
	From        string
	To          string
	Amount      *big.Int
	BlockHeight *big.Int
	Pending     bool

	// True only when not pending and confirmations reached the minimum
	Confirmed bool
}

// Native transaction built by CreateTx
type PendingTx struct {
	// May be empty until the transaction is broadcast
	Id string

	// Chain specific signed transaction
	Raw any
}
