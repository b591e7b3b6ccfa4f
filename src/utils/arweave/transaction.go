package arweave

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"math/big"
)

// Signs the payload of a native transaction. Implemented by bundlr.ArweaveSigner.
type TxSigner interface {
	Sign(data []byte) ([]byte, error)
	GetOwner() []byte
}

// Native Arweave transaction (format 2).
// https://docs.arweave.org/developers/server/http-api#transaction-format
type Transaction struct {
	Format    int          `json:"format"`
	ID        string       `json:"id"`
	LastTx    Base64String `json:"last_tx"`
	Owner     Base64String `json:"owner"`
	Tags      []Tag        `json:"tags"`
	Target    Base64String `json:"target"`
	Quantity  string       `json:"quantity"`
	Data      Base64String `json:"data"`
	DataSize  string       `json:"data_size"`
	DataRoot  Base64String `json:"data_root"`
	Reward    string       `json:"reward"`
	Signature Base64String `json:"signature"`
}

// Payload that gets signed, a deep hash of the fields in a fixed order
func (self *Transaction) SignatureData() (out []byte, err error) {
	if self.Format != 2 {
		err = ErrUnsupportedFormat
		return
	}

	tags := make([]any, 0, len(self.Tags))
	for _, tag := range self.Tags {
		tags = append(tags, []any{tag.Name, tag.Value})
	}

	values := []any{
		"2",
		self.Owner,
		self.Target,
		self.Quantity,
		self.Reward,
		self.LastTx,
		tags,
		self.DataSize,
		self.DataRoot,
	}

	hash := DeepHash(values)
	return hash[:], nil
}

func (self *Transaction) Sign(signer TxSigner) (err error) {
	self.Owner = signer.GetOwner()

	data, err := self.SignatureData()
	if err != nil {
		return
	}

	self.Signature, err = signer.Sign(data)
	if err != nil {
		return
	}

	id := sha256.Sum256(self.Signature)
	self.ID = base64.RawURLEncoding.EncodeToString(id[:])

	return
}

// Checks the RSA-PSS signature against the owner's public key
func (self *Transaction) Verify() (err error) {
	if len(self.Signature) == 0 || len(self.Owner) == 0 {
		return ErrTransactionNotSigned
	}

	id := sha256.Sum256(self.Signature)
	if self.ID != base64.RawURLEncoding.EncodeToString(id[:]) {
		return ErrFailedToParse
	}

	data, err := self.SignatureData()
	if err != nil {
		return
	}

	hashed := sha256.Sum256(data)
	ownerPublicKey := &rsa.PublicKey{
		N: new(big.Int).SetBytes(self.Owner),
		E: 65537, // "AQAB"
	}

	return rsa.VerifyPSS(ownerPublicKey, crypto.SHA256, hashed[:], self.Signature, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
}

// Address of the wallet that owns the transaction
func OwnerToAddress(owner Base64String) string {
	addr := sha256.Sum256(owner)
	return base64.RawURLEncoding.EncodeToString(addr[:])
}
