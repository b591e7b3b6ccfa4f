package arweave

import "errors"

var (
	ErrFailedToParse        = errors.New("failed to parse response")
	ErrNotFound             = errors.New("data not found")
	ErrPending              = errors.New("tx is pending")
	ErrUnsupportedFormat    = errors.New("unsupported transaction format")
	ErrTransactionNotSigned = errors.New("transaction is not signed")
)

type Error struct {
	Error string `json:"error"`
}
