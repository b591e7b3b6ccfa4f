package bundlr

import (
	"github.com/FAIR-Protocol/go-sdk/src/utils/arweave"
)

// Request to move funds from the service side balance back to the chain
// address. The service only accepts requests signed by the balance owner.
type WithdrawRequest struct {
	PublicKey arweave.Base64String `json:"publicKey"`
	Currency  string               `json:"currency"`
	Amount    string               `json:"amount"`
	Nonce     uint64               `json:"nonce"`
	Signature arweave.Base64String `json:"signature"`
	SigType   SignatureType        `json:"sigType"`
}

// Payload signed by the withdrawing wallet
func (self *WithdrawRequest) SignatureData() []byte {
	values := []any{
		self.Currency,
		self.Amount,
		uint64(self.Nonce),
	}

	deepHash := arweave.DeepHash(values)
	return deepHash[:]
}

func (self *WithdrawRequest) Sign(signer Signer) (err error) {
	self.PublicKey = signer.GetOwner()
	self.SigType = signer.GetType()
	self.Signature, err = signer.Sign(self.SignatureData())
	return
}
