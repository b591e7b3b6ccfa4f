package arweave

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FAIR-Protocol/go-sdk/src/utils/config"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

type ClientTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	mux    *http.ServeMux
	server *httptest.Server
	client *Client
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)

	conf := config.Default().Arweave
	conf.NodeUrl = s.server.URL
	conf.LimiterBurstSize = 100
	s.client = NewClient(&conf)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
}

func (s *ClientTestSuite) TestGetTransactionStatus() {
	s.mux.HandleFunc("GET /tx/confirmed/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"block_height":1000,"block_indep_hash":"hash","number_of_confirmations":12}`)
	})
	s.mux.HandleFunc("GET /tx/pending/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, "Pending")
	})

	status, err := s.client.GetTransactionStatus(s.ctx, "confirmed")
	require.Nil(s.T(), err)
	require.EqualValues(s.T(), 1000, status.BlockHeight)
	require.EqualValues(s.T(), 12, status.NumberOfConfirmations)

	_, err = s.client.GetTransactionStatus(s.ctx, "pending")
	require.ErrorIs(s.T(), err, ErrPending)

	_, err = s.client.GetTransactionStatus(s.ctx, "unknown")
	require.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *ClientTestSuite) TestGetPrice() {
	s.mux.HandleFunc("GET /price/1024", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "65595508")
	})
	s.mux.HandleFunc("GET /price/1024/some-target", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "65595509")
	})

	price, err := s.client.GetPrice(s.ctx, 1024, "")
	require.Nil(s.T(), err)
	require.EqualValues(s.T(), 65595508, price.Int64())

	price, err = s.client.GetPrice(s.ctx, 1024, "some-target")
	require.Nil(s.T(), err)
	require.EqualValues(s.T(), 65595509, price.Int64())
}

func (s *ClientTestSuite) TestGetLastTransaction() {
	s.mux.HandleFunc("GET /tx_anchor", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "anchor-value")
	})

	anchor, err := s.client.GetLastTransaction(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), "anchor-value", anchor)
}

func (s *ClientTestSuite) TestGetBalance() {
	s.mux.HandleFunc("GET /wallet/some-address/balance", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "10000000000")
	})

	balance, err := s.client.GetBalance(s.ctx, "some-address")
	require.Nil(s.T(), err)
	require.Equal(s.T(), "10000000000", balance.String())
}

func (s *ClientTestSuite) TestSubmitRequiresSignature() {
	err := s.client.Submit(s.ctx, &Transaction{Format: 2})
	require.ErrorIs(s.T(), err, ErrTransactionNotSigned)
}
