package currency

import (
	"errors"
	"fmt"
)

var ErrNoRate = errors.New("no conversion rate available")

// Transient failure talking to the chain RPC, the caller may retry
type ChainCommunicationError struct {
	Chain string
	Op    string
	Err   error
}

func (self *ChainCommunicationError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", self.Chain, self.Op, self.Err)
}

func (self *ChainCommunicationError) Unwrap() error {
	return self.Err
}

// Signing failed (user rejection, missing key). Not retried.
type SigningError struct {
	Chain string
	Err   error
}

func (self *SigningError) Error() string {
	return fmt.Sprintf("%s: signing failed: %v", self.Chain, self.Err)
}

func (self *SigningError) Unwrap() error {
	return self.Err
}

// Input validation failure, surfaces before any network call
type InvalidAmountError struct {
	Amount string
}

func (self *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %q must be a positive integer in the chain's base unit", self.Amount)
}

type InvalidAddressError struct {
	Chain   string
	Address string
}

func (self *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid %s address: %q", self.Chain, self.Address)
}
