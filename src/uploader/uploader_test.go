package uploader

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/FAIR-Protocol/go-sdk/src/currency"
	"github.com/FAIR-Protocol/go-sdk/src/utils/arweave"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr/responses"
	"github.com/FAIR-Protocol/go-sdk/src/utils/config"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestUploaderTestSuite(t *testing.T) {
	suite.Run(t, new(UploaderTestSuite))
}

// Only the methods the uploader touches are implemented
type stubCurrency struct {
	currency.Currency
	signer bundlr.Signer
}

func (self *stubCurrency) Name() string          { return "ethereum" }
func (self *stubCurrency) MinConfirm() int       { return 5 }
func (self *stubCurrency) Signer() bundlr.Signer { return self.signer }

type UploaderTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	mux    *http.ServeMux
	server *httptest.Server

	conf     *config.Config
	uploader *Uploader
	uploads  int32
}

func (s *UploaderTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.uploads = 0
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)

	s.conf = config.Default()
	s.conf.Bundlr.Url = s.server.URL
	s.conf.Bundlr.LimiterBurstSize = 1000
	s.conf.Uploader.RetryMaxElapsedTime = 200 * time.Millisecond
	s.conf.Uploader.RetryMaxInterval = 50 * time.Millisecond

	signer, err := bundlr.NewEthereumSigner("0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	require.Nil(s.T(), err)

	registry := currency.NewRegistryWithCurrency(s.conf, &stubCurrency{signer: signer})
	s.uploader = NewUploader(s.conf, registry, bundlr.NewClient(&s.conf.Bundlr))
}

func (s *UploaderTestSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
}

// Accepts every data item and echoes its id back
func (s *UploaderTestSuite) serveUpload() {
	s.mux.HandleFunc("POST /tx/ethereum", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.uploads, 1)

		item, err := s.parseItem(r)
		require.Nil(s.T(), err)

		_ = json.NewEncoder(w).Encode(responses.Upload{Id: item.Id.Base64(), Timestamp: 1})
	})
}

func (s *UploaderTestSuite) parseItem(r *http.Request) (*bundlr.DataItem, error) {
	item := &bundlr.DataItem{}
	err := item.UnmarshalFromReader(r.Body)
	if err != nil {
		return nil, err
	}
	return item, item.VerifySignature()
}

func (s *UploaderTestSuite) TestUpload() {
	s.serveUpload()

	response, err := s.uploader.Upload(s.ctx, []byte("hello"), nil, nil)
	require.Nil(s.T(), err)
	require.NotEmpty(s.T(), response.Id)
	require.Equal(s.T(), responses.UploadStatusAccepted, response.Status)
}

func (s *UploaderTestSuite) TestUploadFileContentType() {
	var tags bundlr.Tags
	s.mux.HandleFunc("POST /tx/ethereum", func(w http.ResponseWriter, r *http.Request) {
		item, err := s.parseItem(r)
		require.Nil(s.T(), err)
		tags = item.Tags
		_ = json.NewEncoder(w).Encode(responses.Upload{Id: item.Id.Base64()})
	})

	path := filepath.Join(s.T().TempDir(), "hello.txt")
	require.Nil(s.T(), os.WriteFile(path, []byte("hello"), 0o644))

	_, err := s.uploader.UploadFile(s.ctx, path, nil, nil)
	require.Nil(s.T(), err)

	require.Len(s.T(), tags, 1)
	require.Equal(s.T(), ContentTypeTagName, tags[0].Name)
	require.True(s.T(), strings.HasPrefix(tags[0].Value, "text/plain"))
}

func (s *UploaderTestSuite) TestUploadWithReceipt() {
	key, err := rsa.GenerateKey(rand.Reader, 4096)
	require.Nil(s.T(), err)
	serviceSigner := bundlr.NewArweaveSignerFromPrivateKey(key)

	s.mux.HandleFunc("POST /tx/ethereum", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(s.T(), "receipt", r.Header.Get("x-proof-type"))

		item, err := s.parseItem(r)
		require.Nil(s.T(), err)

		receipt := responses.Upload{
			Id:             item.Id.Base64(),
			Timestamp:      1700000000000,
			Version:        "1.0.0",
			DeadlineHeight: 1500000,
			Public:         base64.RawURLEncoding.EncodeToString(serviceSigner.GetOwner()),
		}
		payload := arweave.DeepHash([]any{
			"Bundlr",
			receipt.Version,
			receipt.Id,
			strconv.FormatUint(receipt.DeadlineHeight, 10),
			strconv.FormatUint(receipt.Timestamp, 10),
		})
		signature, err := serviceSigner.Sign(payload[:])
		require.Nil(s.T(), err)
		receipt.Signature = base64.RawURLEncoding.EncodeToString(signature)

		_ = json.NewEncoder(w).Encode(receipt)
	})

	response, err := s.uploader.Upload(s.ctx, []byte("hello"), nil, &bundlr.UploadOptions{GetReceiptSignature: true})
	require.Nil(s.T(), err)
	require.EqualValues(s.T(), 1500000, response.DeadlineHeight)
}

func (s *UploaderTestSuite) TestUploadBadReceipt() {
	key, err := rsa.GenerateKey(rand.Reader, 4096)
	require.Nil(s.T(), err)
	serviceSigner := bundlr.NewArweaveSignerFromPrivateKey(key)

	s.mux.HandleFunc("POST /tx/ethereum", func(w http.ResponseWriter, r *http.Request) {
		item, err := s.parseItem(r)
		require.Nil(s.T(), err)

		// Signature does not match the receipt fields
		receipt := responses.Upload{
			Id:             item.Id.Base64(),
			Timestamp:      1700000000000,
			Version:        "1.0.0",
			DeadlineHeight: 1500000,
			Public:         base64.RawURLEncoding.EncodeToString(serviceSigner.GetOwner()),
			Signature:      base64.RawURLEncoding.EncodeToString(make([]byte, 512)),
		}
		_ = json.NewEncoder(w).Encode(receipt)
	})

	_, err = s.uploader.Upload(s.ctx, []byte("hello"), nil, &bundlr.UploadOptions{GetReceiptSignature: true})
	require.ErrorIs(s.T(), err, ErrReceiptInvalid)
}
