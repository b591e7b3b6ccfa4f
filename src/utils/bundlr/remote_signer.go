package bundlr

import (
	"context"
)

type (
	// Asks the external wallet to sign the payload
	RemoteSignFunc func(ctx context.Context, data []byte) ([]byte, error)

	// Asks the external wallet for the raw public key
	RemotePublicKeyFunc func(ctx context.Context) ([]byte, error)
)

// Arweave signer backed by an external wallet. Signing and public key
// retrieval are delegated to injected callbacks, so the key material never
// enters the process. Satisfies the same contract as the local signer.
type RemoteArweaveSigner struct {
	ctx context.Context

	signFunc      RemoteSignFunc
	publicKeyFunc RemotePublicKeyFunc

	owner []byte
}

func NewRemoteArweaveSigner(ctx context.Context, signFunc RemoteSignFunc, publicKeyFunc RemotePublicKeyFunc) (self *RemoteArweaveSigner) {
	self = new(RemoteArweaveSigner)
	self.ctx = ctx
	self.signFunc = signFunc
	self.publicKeyFunc = publicKeyFunc
	return
}

// Performs the handshake with the external wallet.
// No state is kept when the context gets cancelled mid call.
func (self *RemoteArweaveSigner) FetchPublicKey(ctx context.Context) (err error) {
	owner, err := self.publicKeyFunc(ctx)
	if err != nil {
		return
	}
	self.owner = owner
	return
}

func (self *RemoteArweaveSigner) Sign(data []byte) (signature []byte, err error) {
	if len(self.owner) == 0 {
		err = self.FetchPublicKey(self.ctx)
		if err != nil {
			return
		}
	}
	return self.signFunc(self.ctx, data)
}

func (self *RemoteArweaveSigner) Verify(data []byte, signature []byte) (err error) {
	return CONFIG[SignatureTypeArweave].Verify(self.owner, data, signature)
}

func (self *RemoteArweaveSigner) GetOwner() []byte {
	return self.owner
}

func (self *RemoteArweaveSigner) GetType() SignatureType {
	return SignatureTypeArweave
}

func (self *RemoteArweaveSigner) GetSignatureLength() int {
	return CONFIG[SignatureTypeArweave].Signature
}

func (self *RemoteArweaveSigner) GetOwnerLength() int {
	return CONFIG[SignatureTypeArweave].Owner
}
