package bundlr

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"os"
	"strings"

	"github.com/lestrrat-go/jwx/jwk"
)

// Signs with a locally loaded RSA wallet (JWK)
type ArweaveSigner struct {
	PrivateKey *rsa.PrivateKey
	Owner      []byte
}

func NewArweaveSigner(privateKeyJWK string) (self *ArweaveSigner, err error) {
	self = new(ArweaveSigner)

	// Wallet may be a path to the JWK file
	if !strings.HasPrefix(strings.TrimSpace(privateKeyJWK), "{") {
		var buf []byte
		/* #nosec */
		buf, err = os.ReadFile(privateKeyJWK)
		if err != nil {
			return
		}
		privateKeyJWK = string(buf)
	}

	key, err := jwk.ParseKey([]byte(privateKeyJWK))
	if err != nil {
		return
	}

	var rawKey interface{}
	err = key.Raw(&rawKey)
	if err != nil {
		return
	}

	var ok bool
	self.PrivateKey, ok = rawKey.(*rsa.PrivateKey)
	if !ok {
		err = errors.New("wallet is not an RSA private key")
		return
	}

	self.Owner = self.PrivateKey.PublicKey.N.Bytes()

	return
}

func NewArweaveSignerFromPrivateKey(privateKey *rsa.PrivateKey) (self *ArweaveSigner) {
	self = new(ArweaveSigner)
	self.PrivateKey = privateKey
	self.Owner = privateKey.PublicKey.N.Bytes()
	return
}

func (self *ArweaveSigner) Sign(data []byte) (signature []byte, err error) {
	hashed := sha256.Sum256(data)
	return rsa.SignPSS(rand.Reader, self.PrivateKey, crypto.SHA256, hashed[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
}

func (self *ArweaveSigner) Verify(data []byte, signature []byte) (err error) {
	return CONFIG[SignatureTypeArweave].Verify(self.Owner, data, signature)
}

func (self *ArweaveSigner) GetOwner() []byte {
	return self.Owner
}

func (self *ArweaveSigner) GetType() SignatureType {
	return SignatureTypeArweave
}

func (self *ArweaveSigner) GetSignatureLength() int {
	return CONFIG[SignatureTypeArweave].Signature
}

func (self *ArweaveSigner) GetOwnerLength() int {
	return CONFIG[SignatureTypeArweave].Owner
}
