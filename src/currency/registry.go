package currency

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/FAIR-Protocol/go-sdk/src/utils/config"
)

type Constructor func(config *config.Config) (Currency, error)

var (
	mtx          sync.RWMutex
	constructors = make(map[string]Constructor)
)

// Register makes a currency available under the given name.
// Providers register themselves in their init function.
func Register(name string, constructor Constructor) {
	mtx.Lock()
	defer mtx.Unlock()
	constructors[name] = constructor
}

func New(name string, config *config.Config) (Currency, error) {
	mtx.RLock()
	constructor, ok := constructors[name]
	mtx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown currency: %s (supported: %v)", name, Names())
	}
	return constructor(config)
}

func Names() (out []string) {
	mtx.RLock()
	defer mtx.RUnlock()
	for name := range constructors {
		out = append(out, name)
	}
	sort.Strings(out)
	return
}

// Registry holds the active currency provider together with the
// chain-agnostic settings. One registry per logical identity.
type Registry struct {
	currency   Currency
	minConfirm int
	pollDelay  time.Duration
}

func NewRegistry(config *config.Config) (self *Registry, err error) {
	self = new(Registry)

	self.currency, err = New(config.Currency.Name, config)
	if err != nil {
		return nil, err
	}

	self.minConfirm = config.Currency.MinConfirm
	if self.minConfirm <= 0 {
		self.minConfirm = self.currency.MinConfirm()
	}
	self.pollDelay = config.Currency.PollDelay

	return
}

// Registry around an already constructed provider, used with injected signers
func NewRegistryWithCurrency(config *config.Config, currency Currency) (self *Registry) {
	self = new(Registry)
	self.currency = currency
	self.minConfirm = config.Currency.MinConfirm
	if self.minConfirm <= 0 {
		self.minConfirm = currency.MinConfirm()
	}
	self.pollDelay = config.Currency.PollDelay
	return
}

func (self *Registry) Currency() Currency {
	return self.currency
}

func (self *Registry) MinConfirm() int {
	return self.minConfirm
}

func (self *Registry) PollDelay() time.Duration {
	return self.pollDelay
}
