package responses

import "github.com/FAIR-Protocol/go-sdk/src/utils/arweave"

type Balance struct {
	Balance arweave.BigInt `json:"balance"`
}
