package bundlr

import (
	"errors"
	"fmt"
)

var (
	ErrFailedToParse                  = errors.New("failed to parse response")
	ErrIdEmpty                        = errors.New("data item id is empty")
	ErrSignerNotSpecified             = errors.New("signer not specified")
	ErrPaymentRequired                = errors.New("not enough balance for the upload")
	ErrUnsupportedSignatureType       = errors.New("unsupported signature type")
	ErrUnmarshalEthereumPubKey        = errors.New("failed to unmarshal ethereum public key")
	ErrEthereumSignatureMismatch      = errors.New("ethereum signature mismatch")
	ErrFailedToParseEthereumPublicKey = errors.New("failed to parse ethereum public key")

	ErrNotEnoughBytesForSignatureType    = errors.New("not enough bytes for the signature type")
	ErrNotEnoughBytesForSignature        = errors.New("not enough bytes for the signature")
	ErrNotEnoughBytesForOwner            = errors.New("not enough bytes for the owner")
	ErrNotEnoughBytesForTargetFlag       = errors.New("not enough bytes for the target flag")
	ErrNotEnoughBytesForTarget           = errors.New("not enough bytes for the target")
	ErrNotEnoughBytesForAnchorFlag       = errors.New("not enough bytes for the anchor flag")
	ErrNotEnoughBytesForAnchor           = errors.New("not enough bytes for the anchor")
	ErrNotEnoughBytesForNumberOfTags     = errors.New("not enough bytes for the number of tags")
	ErrNotEnoughBytesForNumberOfTagBytes = errors.New("not enough bytes for the number of tag bytes")
	ErrNotEnoughBytesForTags             = errors.New("not enough bytes for the tags")

	ErrVerifyIdSignatureMismatch = errors.New("id does not match the signature")
	ErrVerifySignatureMismatch   = errors.New("signature verification failed")
	ErrVerifyBadAnchorLength     = errors.New("anchor needs to be 32 bytes long")
	ErrVerifyTooManyTags         = errors.New("too many tags")
	ErrVerifyTooLongTags         = errors.New("encoded tags are too long")
	ErrVerifyEmptyTagName        = errors.New("tag name is empty")
	ErrVerifyTooLongTagName      = errors.New("tag name is too long")
	ErrVerifyEmptyTagValue       = errors.New("tag value is empty")
	ErrVerifyTooLongTagValue     = errors.New("tag value is too long")
)

// The bundling service declined the request
type ServiceRejectionError struct {
	Op         string
	StatusCode int
	Reason     string
}

func (self *ServiceRejectionError) Error() string {
	return fmt.Sprintf("service rejected %s (status %d): %s", self.Op, self.StatusCode, self.Reason)
}
