package bundlr

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/FAIR-Protocol/go-sdk/src/utils/arweave"
	"github.com/FAIR-Protocol/go-sdk/src/utils/tool"
)

// Tag limits from ANS-104
const (
	maxTags         = 128
	maxTagNameSize  = 1024
	maxTagValueSize = 3072

	// Upper bound for the avro encoding of a maximal tag set
	maxTagsSize = maxTags * (maxTagNameSize + maxTagValueSize + 16)
)

// One unit of data stored by the bundling service.
// https://github.com/ArweaveTeam/arweave-standards/blob/master/ans/ANS-104.md
type DataItem struct {
	SignatureType SignatureType        `json:"signature_type"`
	Signature     arweave.Base64String `json:"signature"`
	Owner         arweave.Base64String `json:"owner"`  // public key of the signer
	Target        arweave.Base64String `json:"target"` // optional, 32 bytes
	Anchor        arweave.Base64String `json:"anchor"` // optional, 32 bytes
	Tags          Tags                 `json:"tags"`
	Data          arweave.Base64String `json:"data"`
	Id            arweave.Base64String `json:"id"`

	// Not in the standard, used internally
	tagsBytes []byte
}

func (self *DataItem) ensureTagsSerialized() (err error) {
	if len(self.tagsBytes) != 0 || len(self.Tags) == 0 {
		return nil
	}
	self.tagsBytes, err = self.Tags.Marshal()
	if err != nil {
		return err
	}
	return nil
}

// Size of the binary encoding
func (self *DataItem) Size() (out int) {
	conf, ok := CONFIG[self.SignatureType]
	if !ok {
		return -1
	}

	err := self.ensureTagsSerialized()
	if err != nil {
		return -1
	}

	out = 2 + conf.Signature + conf.Owner + 1 + 1 + 16 + len(self.tagsBytes) + len(self.Data)
	if len(self.Target) > 0 {
		out += len(self.Target)
	}
	if len(self.Anchor) > 0 {
		out += len(self.Anchor)
	}

	return
}

func (self *DataItem) signatureData() []byte {
	values := []any{
		"dataitem",
		"1",
		self.SignatureType.Bytes(),
		self.Owner,
		self.Target,
		self.Anchor,
		self.tagsBytes,
		self.Data,
	}

	deepHash := arweave.DeepHash(values)
	return deepHash[:]
}

func (self *DataItem) sign(signer Signer) (id, signature []byte, err error) {
	signature, err = signer.Sign(self.signatureData())
	if err != nil {
		return
	}

	// Data item id is the digest of the signature
	idArray := sha256.Sum256(signature)
	id = idArray[:]

	return
}

func (self *DataItem) Reader(signer Signer) (out *bytes.Buffer, err error) {
	// Don't try to allocate more than 4kB. Buffer will grow if needed anyway.
	initSize := tool.Max(4096, self.Size())
	out = bytes.NewBuffer(make([]byte, 0, initSize))

	err = self.Encode(signer, out)
	return
}

func (self *DataItem) Encode(signer Signer, out *bytes.Buffer) (err error) {
	// Tags
	err = self.ensureTagsSerialized()
	if err != nil {
		return
	}

	// Sign the item unless it already carries a signature
	if len(self.Owner) == 0 && len(self.Signature) == 0 && len(self.Id) == 0 {
		if signer == nil {
			err = ErrSignerNotSpecified
			return
		}
		self.SignatureType = signer.GetType()
		self.Owner = signer.GetOwner()

		self.Id, self.Signature, err = self.sign(signer)
		if err != nil {
			return
		}
	}

	// Serialization
	out.Write(ShortTo2ByteArray(int(self.SignatureType)))
	out.Write(self.Signature)
	out.Write(self.Owner)

	// Optional target
	if len(self.Target) == 0 {
		out.WriteByte(0)
	} else {
		out.WriteByte(1)
		out.Write(self.Target)
	}

	// Optional anchor
	if len(self.Anchor) == 0 {
		out.WriteByte(0)
	} else {
		out.WriteByte(1)
		out.Write(self.Anchor)
	}

	// Rest
	out.Write(LongTo8ByteArray(len(self.Tags)))
	out.Write(LongTo8ByteArray(len(self.tagsBytes)))
	out.Write(self.tagsBytes)
	out.Write(self.Data)

	return
}

func (self *DataItem) Unmarshal(buf []byte) (err error) {
	reader := bytes.NewReader(buf)
	return self.UnmarshalFromReader(reader)
}

// Reverse operation of Encode
func (self *DataItem) UnmarshalFromReader(reader io.Reader) (err error) {
	// Signature type
	signatureType := make([]byte, 2)
	_, err = io.ReadFull(reader, signatureType)
	if err != nil {
		return ErrNotEnoughBytesForSignatureType
	}
	self.SignatureType = SignatureType(binary.LittleEndian.Uint16(signatureType))

	conf, ok := CONFIG[self.SignatureType]
	if !ok {
		return ErrUnsupportedSignatureType
	}

	// Signature (length depends on the signature type)
	self.Signature = make([]byte, conf.Signature)
	_, err = io.ReadFull(reader, self.Signature)
	if err != nil {
		return ErrNotEnoughBytesForSignature
	}

	// Owner - public key (length depends on the signature type)
	self.Owner = make([]byte, conf.Owner)
	_, err = io.ReadFull(reader, self.Owner)
	if err != nil {
		return ErrNotEnoughBytesForOwner
	}

	// Target (it's optional)
	isTargetPresent := make([]byte, 1)
	_, err = io.ReadFull(reader, isTargetPresent)
	if err != nil {
		return ErrNotEnoughBytesForTargetFlag
	}

	if isTargetPresent[0] == 0 {
		self.Target = []byte{}
	} else {
		self.Target = make([]byte, 32)
		_, err = io.ReadFull(reader, self.Target)
		if err != nil {
			return ErrNotEnoughBytesForTarget
		}
	}

	// Anchor (it's optional)
	isAnchorPresent := make([]byte, 1)
	_, err = io.ReadFull(reader, isAnchorPresent)
	if err != nil {
		return ErrNotEnoughBytesForAnchorFlag
	}

	if isAnchorPresent[0] == 0 {
		self.Anchor = []byte{}
	} else {
		self.Anchor = make([]byte, 32)
		_, err = io.ReadFull(reader, self.Anchor)
		if err != nil {
			return ErrNotEnoughBytesForAnchor
		}
	}

	// Length of the tags slice
	numTagsBuffer := make([]byte, 8)
	_, err = io.ReadFull(reader, numTagsBuffer)
	if err != nil {
		return ErrNotEnoughBytesForNumberOfTags
	}
	// Bounds are checked before any allocation, the two length fields are
	// attacker controlled
	numTags := binary.LittleEndian.Uint64(numTagsBuffer)
	if numTags > maxTags {
		return ErrVerifyTooManyTags
	}

	// Size of encoded tags
	numTagsBytesBuffer := make([]byte, 8)
	_, err = io.ReadFull(reader, numTagsBytesBuffer)
	if err != nil {
		return ErrNotEnoughBytesForNumberOfTagBytes
	}
	numTagsBytes := binary.LittleEndian.Uint64(numTagsBytesBuffer)
	if numTagsBytes > maxTagsSize {
		return ErrVerifyTooLongTags
	}

	// Tags
	self.Tags = make(Tags, 0, numTags)
	if numTags > 0 {
		self.tagsBytes = make([]byte, numTagsBytes)
		_, err = io.ReadFull(reader, self.tagsBytes)
		if err != nil {
			return ErrNotEnoughBytesForTags
		}

		err = self.Tags.Unmarshal(self.tagsBytes)
		if err != nil {
			return
		}
	}

	// The rest is just data
	var data bytes.Buffer
	_, err = data.ReadFrom(reader)
	if err != nil {
		return
	}
	self.Data = data.Bytes()

	// Id is derived from the signature
	idArray := sha256.Sum256(self.Signature)
	self.Id = idArray[:]

	return
}

// https://github.com/ArweaveTeam/arweave-standards/blob/master/ans/ANS-104.md#21-verifying-a-dataitem
func (self *DataItem) Verify() (err error) {
	idArray := sha256.Sum256(self.Signature)
	if !bytes.Equal(idArray[:], self.Id) {
		return ErrVerifyIdSignatureMismatch
	}

	// an anchor isn't more than 32 bytes
	// with this lib it has to be 0 or 32 bytes
	if len(self.Anchor) != 0 && len(self.Anchor) != 32 {
		return ErrVerifyBadAnchorLength
	}

	// Tags
	if len(self.Tags) > maxTags {
		return ErrVerifyTooManyTags
	}

	for _, tag := range self.Tags {
		if len(tag.Name) == 0 {
			return ErrVerifyEmptyTagName
		}
		if len(tag.Name) > maxTagNameSize {
			return ErrVerifyTooLongTagName
		}
		if len(tag.Value) == 0 {
			return ErrVerifyEmptyTagValue
		}
		if len(tag.Value) > maxTagValueSize {
			return ErrVerifyTooLongTagValue
		}
	}

	return self.VerifySignature()
}

func (self *DataItem) VerifySignature() (err error) {
	err = self.ensureTagsSerialized()
	if err != nil {
		return
	}

	if !Verify(self.SignatureType, self.Owner, self.signatureData(), self.Signature) {
		return ErrVerifySignatureMismatch
	}
	return
}
