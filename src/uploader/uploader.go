package uploader

import (
	"context"
	"encoding/base64"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/FAIR-Protocol/go-sdk/src/currency"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"
	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr/responses"
	"github.com/FAIR-Protocol/go-sdk/src/utils/config"
	"github.com/FAIR-Protocol/go-sdk/src/utils/logger"
	"github.com/FAIR-Protocol/go-sdk/src/utils/tool"

	"github.com/sirupsen/logrus"
)

const ContentTypeTagName = "Content-Type"

// Uploader signs data items with the active currency's signer and submits
// them to the bundling service
type Uploader struct {
	config *config.Config
	log    *logrus.Entry

	registry *currency.Registry
	client   *bundlr.Client
}

func NewUploader(config *config.Config, registry *currency.Registry, client *bundlr.Client) (self *Uploader) {
	self = new(Uploader)
	self.config = config
	self.log = logger.NewSublogger("uploader")
	self.registry = registry
	self.client = client
	return
}

func (self *Uploader) Client() *bundlr.Client {
	return self.client
}

// Upload signs and submits one data item. A random anchor makes every call
// produce a distinct signature, so resubmitting the same bytes is a new item
// rather than a duplicate.
func (self *Uploader) Upload(ctx context.Context, data []byte, tags bundlr.Tags, opts *bundlr.UploadOptions) (out *responses.Upload, err error) {
	c := self.registry.Currency()

	item := &bundlr.DataItem{
		Data:   data,
		Tags:   tags,
		Anchor: tool.RandomBytes(32),
	}

	out, _, err = self.client.Upload(ctx, c.Name(), c.Signer(), item, opts)
	if err != nil {
		return
	}

	if opts != nil && opts.GetReceiptSignature && out.Status == responses.UploadStatusAccepted {
		var publicKey []byte
		publicKey, err = base64.RawURLEncoding.DecodeString(out.Public)
		if err != nil || !bundlr.VerifyReceipt(out, publicKey) {
			err = ErrReceiptInvalid
			return
		}
	}

	return
}

// UploadFile uploads the file's contents, tagging it with a Content-Type
// derived from the extension unless the caller tagged it already
func (self *Uploader) UploadFile(ctx context.Context, path string, tags bundlr.Tags, opts *bundlr.UploadOptions) (out *responses.Upload, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	if !hasContentType(tags) {
		tags = append(tags, bundlr.Tag{Name: ContentTypeTagName, Value: detectContentType(path, data)})
	}

	return self.Upload(ctx, data, tags, opts)
}

func hasContentType(tags bundlr.Tags) bool {
	for _, tag := range tags {
		if tag.Name == ContentTypeTagName {
			return true
		}
	}
	return false
}

func detectContentType(path string, data []byte) string {
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return contentType
}
