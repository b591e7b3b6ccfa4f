package arweave

import (
	"encoding/json"
	"math/big"
)

// Big integer that (un)marshals from/to a decimal JSON string
type BigInt struct {
	big.Int
	Valid bool
}

func (self *BigInt) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		// Some endpoints return plain numbers
		s = string(data)
	}

	_, ok := self.SetString(s, 10)
	self.Valid = ok
	if !ok {
		return ErrFailedToParse
	}
	return nil
}

func (self *BigInt) MarshalJSON() (out []byte, err error) {
	return json.Marshal(self.String())
}
