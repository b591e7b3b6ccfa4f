package bundlr

import (
	"crypto/ecdsa"
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethereum_crypto "github.com/ethereum/go-ethereum/crypto"
)

type EthereumSigner struct {
	PrivateKey *ecdsa.PrivateKey
	Owner      []byte
}

func NewEthereumSigner(privateKeyHex string) (self *EthereumSigner, err error) {
	self = new(EthereumSigner)

	// Parse the private key
	buf, err := hexutil.Decode(privateKeyHex)
	if err != nil {
		return
	}

	self.PrivateKey, err = ethereum_crypto.ToECDSA(buf)
	if err != nil {
		return
	}

	publicKeyECDSA, ok := self.PrivateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		err = ErrFailedToParseEthereumPublicKey
		return
	}
	self.Owner = ethereum_crypto.FromECDSAPub(publicKeyECDSA)

	return
}

func (self *EthereumSigner) Sign(data []byte) (signature []byte, err error) {
	hashed := sha256.Sum256(data)
	return ethereum_crypto.Sign(hashed[:], self.PrivateKey)
}

func (self *EthereumSigner) Verify(data []byte, signature []byte) (err error) {
	return CONFIG[SignatureTypeEthereum].Verify(self.Owner, data, signature)
}

func (self *EthereumSigner) GetOwner() []byte {
	return self.Owner
}

func (self *EthereumSigner) GetType() SignatureType {
	return SignatureTypeEthereum
}

func (self *EthereumSigner) GetSignatureLength() int {
	return CONFIG[SignatureTypeEthereum].Signature
}

func (self *EthereumSigner) GetOwnerLength() int {
	return CONFIG[SignatureTypeEthereum].Owner
}
