package bundlr

import (
	"encoding/base64"
	"strconv"

	"github.com/FAIR-Protocol/go-sdk/src/utils/arweave"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr/responses"
)

// Payload a service node signs when issuing a receipt.
// Field order is fixed and versioned, changing it breaks verification.
func receiptSignatureData(receipt *responses.Upload) []byte {
	values := []any{
		"Bundlr",
		receipt.Version,
		receipt.Id,
		strconv.FormatUint(receipt.DeadlineHeight, 10),
		strconv.FormatUint(receipt.Timestamp, 10),
	}

	deepHash := arweave.DeepHash(values)
	return deepHash[:]
}

// The wire format doesn't carry the signature type, it is implied by the
// signature length
func receiptSignatureType(signature []byte) (SignatureType, bool) {
	for signatureType, conf := range CONFIG {
		if conf.Signature == len(signature) {
			return signatureType, true
		}
	}
	return 0, false
}

// VerifyReceipt checks the receipt's signature against the service's known
// public key. Returns false for any structurally invalid receipt, it never
// panics. A receipt without a signature is unverifiable and gets rejected.
func VerifyReceipt(receipt *responses.Upload, publicKey []byte) bool {
	if receipt == nil || receipt.Id == "" || receipt.Signature == "" || len(publicKey) == 0 {
		return false
	}

	signature, err := base64.RawURLEncoding.DecodeString(receipt.Signature)
	if err != nil {
		return false
	}

	signatureType, ok := receiptSignatureType(signature)
	if !ok {
		return false
	}

	return Verify(signatureType, publicKey, receiptSignatureData(receipt), signature)
}
