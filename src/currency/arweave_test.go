package currency

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/FAIR-Protocol/go-sdk/src/utils/arweave"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"
	"github.com/FAIR-Protocol/go-sdk/src/utils/config"
	"github.com/FAIR-Protocol/go-sdk/src/utils/tool"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestArweaveCurrencyTestSuite(t *testing.T) {
	suite.Run(t, new(ArweaveCurrencyTestSuite))
}

type ArweaveCurrencyTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	mux    *http.ServeMux
	server *httptest.Server

	signer   *bundlr.ArweaveSigner
	currency *ArweaveCurrency
}

func (s *ArweaveCurrencyTestSuite) SetupSuite() {
	key, err := rsa.GenerateKey(rand.Reader, 4096)
	require.Nil(s.T(), err)
	s.signer = bundlr.NewArweaveSignerFromPrivateKey(key)
}

func (s *ArweaveCurrencyTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)

	conf := config.Default()
	conf.Arweave.NodeUrl = s.server.URL
	conf.Arweave.LimiterBurstSize = 100
	s.currency = NewArweaveCurrencyWithSigner(conf, s.signer)
}

func (s *ArweaveCurrencyTestSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
}

func (s *ArweaveCurrencyTestSuite) TestGetFee() {
	s.mux.HandleFunc("GET /price/1024/some-target", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "65595508")
	})

	// For this chain the amount doubles as the byte count to be priced
	fee, err := s.currency.GetFee(s.ctx, big.NewInt(1024), "some-target")
	require.Nil(s.T(), err)
	require.EqualValues(s.T(), 65595508, fee.Int64())
}

func (s *ArweaveCurrencyTestSuite) TestGetFeeMonotonic() {
	s.mux.HandleFunc("GET /price/{bytes}", func(w http.ResponseWriter, r *http.Request) {
		numBytes, err := strconv.ParseInt(r.PathValue("bytes"), 10, 64)
		require.Nil(s.T(), err)
		_, _ = io.WriteString(w, strconv.FormatInt(numBytes*64, 10))
	})

	small, err := s.currency.GetFee(s.ctx, big.NewInt(1024), "")
	require.Nil(s.T(), err)
	large, err := s.currency.GetFee(s.ctx, big.NewInt(2048), "")
	require.Nil(s.T(), err)
	require.Equal(s.T(), 1, large.Cmp(small))
}

func (s *ArweaveCurrencyTestSuite) TestCreateAndSendTx() {
	target := base64.RawURLEncoding.EncodeToString(tool.RandomBytes(32))
	anchor := base64.RawURLEncoding.EncodeToString(tool.RandomBytes(48))

	s.mux.HandleFunc("GET /tx_anchor", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, anchor)
	})

	var submitted arweave.Transaction
	s.mux.HandleFunc("POST /tx", func(w http.ResponseWriter, r *http.Request) {
		require.Nil(s.T(), json.NewDecoder(r.Body).Decode(&submitted))
	})

	tx, err := s.currency.CreateTx(s.ctx, big.NewInt(1000), target, big.NewInt(321))
	require.Nil(s.T(), err)
	require.NotEmpty(s.T(), tx.Id)

	txId, err := s.currency.SendTx(s.ctx, tx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), tx.Id, txId)

	require.Equal(s.T(), "1000", submitted.Quantity)
	require.Equal(s.T(), "321", submitted.Reward)
	require.Nil(s.T(), submitted.Verify())
}

func (s *ArweaveCurrencyTestSuite) TestCreateTxBadAddress() {
	_, err := s.currency.CreateTx(s.ctx, big.NewInt(1000), "not-a-valid-address!", big.NewInt(1))

	var invalid *InvalidAddressError
	require.True(s.T(), errors.As(err, &invalid))
}

func (s *ArweaveCurrencyTestSuite) TestGetTxPending() {
	s.mux.HandleFunc("GET /tx/pending-id/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, "Pending")
	})

	tx, err := s.currency.GetTx(s.ctx, "pending-id")
	require.Nil(s.T(), err)
	require.True(s.T(), tx.Pending)
	require.False(s.T(), tx.Confirmed)
}

func (s *ArweaveCurrencyTestSuite) TestGetTxConfirmed() {
	s.mux.HandleFunc("GET /tx/mined-id/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"block_height":1000,"number_of_confirmations":12}`)
	})
	s.mux.HandleFunc("GET /tx/mined-id", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(&arweave.Transaction{
			Format:   2,
			Quantity: "1000",
			Owner:    arweave.Base64String(s.signer.GetOwner()),
		})
	})

	tx, err := s.currency.GetTx(s.ctx, "mined-id")
	require.Nil(s.T(), err)
	require.False(s.T(), tx.Pending)
	require.True(s.T(), tx.Confirmed)
	require.Equal(s.T(), "1000", tx.Amount.String())
	require.EqualValues(s.T(), 1000, tx.BlockHeight.Int64())
}

func (s *ArweaveCurrencyTestSuite) TestGetTxFewConfirmations() {
	s.mux.HandleFunc("GET /tx/young-id/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"block_height":1000,"number_of_confirmations":2}`)
	})
	s.mux.HandleFunc("GET /tx/young-id", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(&arweave.Transaction{Format: 2, Quantity: "0"})
	})

	tx, err := s.currency.GetTx(s.ctx, "young-id")
	require.Nil(s.T(), err)
	require.False(s.T(), tx.Pending)
	require.False(s.T(), tx.Confirmed)
}

func (s *ArweaveCurrencyTestSuite) TestReady() {
	require.Empty(s.T(), s.currency.Address())
	require.Nil(s.T(), s.currency.Ready(s.ctx))

	expected, err := s.currency.OwnerToAddress(s.signer.GetOwner())
	require.Nil(s.T(), err)
	require.Equal(s.T(), expected, s.currency.Address())
}
