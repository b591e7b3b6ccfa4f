package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/FAIR-Protocol/go-sdk/src/currency"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr/responses"
	"github.com/FAIR-Protocol/go-sdk/src/utils/config"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestFolderTestSuite(t *testing.T) {
	suite.Run(t, new(FolderTestSuite))
}

type FolderTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	mux    *http.ServeMux
	server *httptest.Server

	conf     *config.Config
	uploader *Uploader

	uploads     int32
	priceQuotes int32
}

func (s *FolderTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.uploads = 0
	s.priceQuotes = 0
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

func (s *FolderTestSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
}

// Folder with a duplicate, identical contents should be uploaded only once
func (s *FolderTestSuite) folder() string {
	dir := s.T().TempDir()
	require.Nil(s.T(), os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644))
	require.Nil(s.T(), os.MkdirAll(filepath.Join(dir, "img"), 0o755))
	require.Nil(s.T(), os.WriteFile(filepath.Join(dir, "img", "a.png"), []byte("png-bytes"), 0o644))
	require.Nil(s.T(), os.WriteFile(filepath.Join(dir, "img", "copy.png"), []byte("png-bytes"), 0o644))
	return dir
}

func (s *FolderTestSuite) serve(failData []byte) {
	s.mux.HandleFunc("GET /price/ethereum/{bytes}", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.priceQuotes, 1)
		_, _ = io.WriteString(w, "12345")
	})
	s.mux.HandleFunc("POST /tx/ethereum", func(w http.ResponseWriter, r *http.Request) {
		item := &bundlr.DataItem{}
		require.Nil(s.T(), item.UnmarshalFromReader(r.Body))

		if failData != nil && bytes.Equal(item.Data, failData) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		atomic.AddInt32(&s.uploads, 1)
		_ = json.NewEncoder(w).Encode(responses.Upload{Id: item.Id.Base64()})
	})
}

func (s *FolderTestSuite) TestUploadFolder() {
	s.serve(nil)

	result, err := s.uploader.UploadFolder(s.ctx, s.folder(), &FolderOptions{IndexFile: "index.html"})
	require.Nil(s.T(), err)

	require.NotEmpty(s.T(), result.ManifestId)
	require.Len(s.T(), result.Ids, 3)
	require.Equal(s.T(), result.Ids["img/a.png"], result.Ids["img/copy.png"])

	require.Equal(s.T(), "index.html", result.Manifest.Index.Path)
	require.Len(s.T(), result.Manifest.Paths, 3)

	// Two distinct contents plus the manifest itself
	require.EqualValues(s.T(), 3, atomic.LoadInt32(&s.uploads))
}

// Identical files scheduled into the same concurrent batch still collapse
// into a single upload with a shared id, even against a slow server
func (s *FolderTestSuite) TestDuplicatesInSameBatch() {
	s.mux.HandleFunc("POST /tx/ethereum", func(w http.ResponseWriter, r *http.Request) {
		item := &bundlr.DataItem{}
		require.Nil(s.T(), item.UnmarshalFromReader(r.Body))

		time.Sleep(25 * time.Millisecond)
		atomic.AddInt32(&s.uploads, 1)
		_ = json.NewEncoder(w).Encode(responses.Upload{Id: item.Id.Base64()})
	})

	dir := s.T().TempDir()
	require.Nil(s.T(), os.WriteFile(filepath.Join(dir, "a.bin"), []byte("same-bytes"), 0o644))
	require.Nil(s.T(), os.WriteFile(filepath.Join(dir, "b.bin"), []byte("same-bytes"), 0o644))

	result, err := s.uploader.UploadFolder(s.ctx, dir, &FolderOptions{BatchSize: 2})
	require.Nil(s.T(), err)

	require.Equal(s.T(), result.Ids["a.bin"], result.Ids["b.bin"])

	// One content plus the manifest
	require.EqualValues(s.T(), 2, atomic.LoadInt32(&s.uploads))
}

func (s *FolderTestSuite) TestBatchSizeOne() {
	s.serve(nil)

	result, err := s.uploader.UploadFolder(s.ctx, s.folder(), &FolderOptions{BatchSize: 1})
	require.Nil(s.T(), err)
	require.Len(s.T(), result.Ids, 3)
}

func (s *FolderTestSuite) TestPreflightRejection() {
	s.serve(nil)

	var quoted *big.Int
	_, err := s.uploader.UploadFolder(s.ctx, s.folder(), &FolderOptions{
		Preflight: func(price *big.Int) (bool, error) {
			quoted = price
			return false, nil
		},
	})

	require.ErrorIs(s.T(), err, ErrUploadRejected)
	require.Equal(s.T(), "12345", quoted.String())

	// Nothing was uploaded, the only network call was the price quote
	require.EqualValues(s.T(), 0, atomic.LoadInt32(&s.uploads))
	require.EqualValues(s.T(), 1, atomic.LoadInt32(&s.priceQuotes))
}

func (s *FolderTestSuite) TestPartialFailureDropsPath() {
	s.serve([]byte("<html></html>"))

	result, err := s.uploader.UploadFolder(s.ctx, s.folder(), nil)

	var partial *PartialBatchFailure
	require.ErrorAs(s.T(), err, &partial)
	require.Contains(s.T(), partial.Failed, "index.html")

	require.NotNil(s.T(), result)
	require.NotEmpty(s.T(), result.ManifestId)
	require.Len(s.T(), result.Ids, 2)

	_, present := result.Manifest.Paths["index.html"]
	require.False(s.T(), present)
}

func (s *FolderTestSuite) TestPartialFailureKeepDeleted() {
	s.serve([]byte("<html></html>"))

	keep := true
	result, err := s.uploader.UploadFolder(s.ctx, s.folder(), &FolderOptions{KeepDeleted: &keep})

	var partial *PartialBatchFailure
	require.ErrorAs(s.T(), err, &partial)

	// The failed path stays in the manifest as a null entry
	entry, present := result.Manifest.Paths["index.html"]
	require.True(s.T(), present)
	require.Nil(s.T(), entry)
	require.Len(s.T(), result.Manifest.Paths, 3)
}

func (s *FolderTestSuite) TestKeepDeletedConfigDefault() {
	s.serve([]byte("<html></html>"))
	s.conf.Uploader.KeepDeleted = true

	result, err := s.uploader.UploadFolder(s.ctx, s.folder(), nil)

	var partial *PartialBatchFailure
	require.ErrorAs(s.T(), err, &partial)

	_, present := result.Manifest.Paths["index.html"]
	require.True(s.T(), present)
}

func (s *FolderTestSuite) TestKeepDeletedPerCallOverride() {
	s.serve([]byte("<html></html>"))
	s.conf.Uploader.KeepDeleted = true

	// An explicit per call value wins over the configured default
	keep := false
	result, err := s.uploader.UploadFolder(s.ctx, s.folder(), &FolderOptions{KeepDeleted: &keep})

	var partial *PartialBatchFailure
	require.ErrorAs(s.T(), err, &partial)

	_, present := result.Manifest.Paths["index.html"]
	require.False(s.T(), present)
}

func (s *FolderTestSuite) TestEmptyFolder() {
	_, err := s.uploader.UploadFolder(s.ctx, s.T().TempDir(), nil)
	require.ErrorIs(s.T(), err, ErrNothingToUpload)
}

func (s *FolderTestSuite) TestMissingIndexFile() {
	_, err := s.uploader.UploadFolder(s.ctx, s.folder(), &FolderOptions{IndexFile: "nope.html"})
	require.NotNil(s.T(), err)
}

func TestManifestNullSentinel(t *testing.T) {
	manifest := NewManifest()
	manifest.Paths["ok.txt"] = &ManifestPath{Id: "abc"}
	manifest.Paths["gone.txt"] = nil

	buf, err := manifest.Marshal()
	require.NoError(t, err)
	require.Contains(t, string(buf), `"gone.txt":null`)
	require.Contains(t, string(buf), `"ok.txt":{"id":"abc"}`)
	require.Contains(t, string(buf), `"manifest":"arweave/paths"`)
}
