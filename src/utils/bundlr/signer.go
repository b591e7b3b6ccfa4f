package bundlr

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"math/big"

	ethereum_crypto "github.com/ethereum/go-ethereum/crypto"
)

// Signer produces signatures in one chain's cryptographic scheme.
// Each currency provider owns exactly one signer.
type Signer interface {
	Sign(data []byte) (signature []byte, err error)
	Verify(data []byte, signature []byte) (err error)
	GetOwner() []byte
	GetType() SignatureType
	GetSignatureLength() int
	GetOwnerLength() int
}

// Signature schemes supported in data items and receipts
var CONFIG = map[SignatureType]struct {
	Signature int
	Owner     int
	Verify    func(owner, data, signature []byte) error
}{
	SignatureTypeArweave: {
		Signature: 512,
		Owner:     512,
		Verify: func(owner, data, signature []byte) error {
			hashed := sha256.Sum256(data)
			ownerPublicKey := &rsa.PublicKey{
				N: new(big.Int).SetBytes(owner),
				E: 65537, // "AQAB"
			}

			return rsa.VerifyPSS(ownerPublicKey, crypto.SHA256, hashed[:], signature, &rsa.PSSOptions{
				SaltLength: rsa.PSSSaltLengthAuto,
				Hash:       crypto.SHA256,
			})
		},
	},
	SignatureTypeEthereum: {
		Signature: 65,
		Owner:     65,
		Verify: func(owner, data, signature []byte) (err error) {
			hashed := sha256.Sum256(data)

			// Check the owner is a valid public key
			publicKeyECDSA, err := ethereum_crypto.UnmarshalPubkey(owner)
			if err != nil {
				return ErrUnmarshalEthereumPubKey
			}
			publicKeyBytes := ethereum_crypto.FromECDSAPub(publicKeyECDSA)

			// Get the public key from the signature
			sigPublicKey, err := ethereum_crypto.Ecrecover(hashed[:], signature)
			if err != nil {
				return
			}

			// Check if the public key recovered from the signature matches the owner
			if !bytes.Equal(sigPublicKey, publicKeyBytes) {
				return ErrEthereumSignatureMismatch
			}

			return
		},
	},
}

// Checks a signature without constructing a signer.
// Returns false for malformed input, never panics.
func Verify(signatureType SignatureType, owner, data, signature []byte) bool {
	conf, ok := CONFIG[signatureType]
	if !ok {
		return false
	}
	if len(signature) != conf.Signature {
		return false
	}

	defer func() {
		// Crypto libs may panic on malformed points
		_ = recover()
	}()

	return conf.Verify(owner, data, signature) == nil
}
