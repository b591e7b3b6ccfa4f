package arweave

import (
	"crypto/sha512"
	"strconv"
)

// DeepHash implements the Arweave deep hash algorithm over a nested list of
// byte blobs. Used for native transaction signatures, data item signatures,
// withdrawal requests and upload receipts.
// https://github.com/ArweaveTeam/arweave-standards/blob/master/ans/ANS-104.md
func DeepHash(data []any) [48]byte {
	tag := append([]byte("list"), []byte(strconv.Itoa(len(data)))...)
	return deepHashChunks(data, sha512.Sum384(tag))
}

func deepHashChunks(chunks []any, acc [48]byte) [48]byte {
	if len(chunks) == 0 {
		return acc
	}

	hashPair := make([]byte, 0, 96)
	hashPair = append(hashPair, acc[:]...)
	hashPair = append(hashPair, deepHashItem(chunks[0])...)
	newAcc := sha512.Sum384(hashPair)
	return deepHashChunks(chunks[1:], newAcc)
}

func deepHashItem(item any) []byte {
	switch v := item.(type) {
	case []any:
		h := DeepHash(v)
		return h[:]
	case []byte:
		return deepHashBlob(v)
	case Base64String:
		return deepHashBlob(v)
	case string:
		return deepHashBlob([]byte(v))
	case int:
		return deepHashBlob([]byte(strconv.Itoa(v)))
	case int64:
		return deepHashBlob([]byte(strconv.FormatInt(v, 10)))
	case uint64:
		return deepHashBlob([]byte(strconv.FormatUint(v, 10)))
	default:
		panic("unsupported deep hash type")
	}
}

func deepHashBlob(blob []byte) []byte {
	tag := append([]byte("blob"), []byte(strconv.Itoa(len(blob)))...)

	tagHashed := sha512.Sum384(tag)
	blobHashed := sha512.Sum384(blob)

	both := make([]byte, 0, 96)
	both = append(both, tagHashed[:]...)
	both = append(both, blobHashed[:]...)
	result := sha512.Sum384(both)
	return result[:]
}
