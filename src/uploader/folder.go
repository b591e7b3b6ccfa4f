package uploader

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"sync"

	"github.com/FAIR-Protocol/go-sdk/src/utils/bundlr"
	"github.com/FAIR-Protocol/go-sdk/src/utils/task"
	"github.com/FAIR-Protocol/go-sdk/src/utils/tool"

	"github.com/gammazero/workerpool"
)

type FolderOptions struct {
	// Number of concurrent item uploads. A batch must fully finish before the
	// next one starts. 0 means the configured default.
	BatchSize int

	// Keep permanently failed paths in the manifest as null entries
	// instead of dropping them. Nil means the configured default.
	KeepDeleted *bool

	// Relative path served when the manifest itself is requested
	IndexFile string

	// Extra tags attached to the manifest item
	ManifestTags bundlr.Tags

	// Called with the total price quote before anything is uploaded.
	// Returning false aborts the whole upload.
	Preflight func(price *big.Int) (bool, error)

	// Progress callback, called once per finished item
	OnProgress func(path, id string)
}

type FolderResult struct {
	// Id of the manifest item, empty when the manifest upload failed
	ManifestId string

	Manifest *Manifest

	// Item id per relative path, successful uploads only
	Ids map[string]string

	// Total bytes across all enumerated files
	Bytes int64
}

type folderEntry struct {
	relPath    string
	absPath    string
	size       int64
	contentKey [32]byte
}

// UploadFolder uploads every regular file under dir as its own data item and
// finishes with a path manifest. Files with identical contents are uploaded
// once and share an id. Items are processed in fixed-size batches, each item
// retried with backoff on its own.
func (self *Uploader) UploadFolder(ctx context.Context, dir string, opts *FolderOptions) (out *FolderResult, err error) {
	if opts == nil {
		opts = &FolderOptions{}
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = self.config.Uploader.BatchSize
	}
	keepDeleted := self.config.Uploader.KeepDeleted
	if opts.KeepDeleted != nil {
		keepDeleted = *opts.KeepDeleted
	}

	entries, totalBytes, err := self.enumerate(dir)
	if err != nil {
		return
	}
	if len(entries) == 0 {
		return nil, ErrNothingToUpload
	}

	if opts.IndexFile != "" {
		found := false
		for _, entry := range entries {
			if entry.relPath == opts.IndexFile {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("index file %s is not part of the folder", opts.IndexFile)
		}
	}

	c := self.registry.Currency()

	// Price the whole folder up front so the caller can bail out before a
	// single item hits the network
	if opts.Preflight != nil {
		var price *big.Int
		price, err = self.client.GetPrice(ctx, c.Name(), totalBytes)
		if err != nil {
			return
		}

		var ok bool
		ok, err = opts.Preflight(price)
		if err != nil {
			return
		}
		if !ok {
			return nil, ErrUploadRejected
		}
	}

	// Identical contents collapse into one representative entry before any
	// worker starts, so concurrent uploads within a batch can't race into
	// uploading the same bytes twice
	groups := make(map[[32]byte][]string, len(entries))
	unique := make([]*folderEntry, 0, len(entries))
	for _, entry := range entries {
		if _, seen := groups[entry.contentKey]; !seen {
			unique = append(unique, entry)
		}
		groups[entry.contentKey] = append(groups[entry.contentKey], entry.relPath)
	}

	var (
		mtx    sync.Mutex
		ids    = make(map[string]string, len(entries))
		failed = make(map[string]error)
	)

	pool := workerpool.New(batchSize)
	defer pool.StopWait()

	for start := 0; start < len(unique); start += batchSize {
		batch := unique[start:tool.Min(start+batchSize, len(unique))]

		var wg sync.WaitGroup
		wg.Add(len(batch))
		for _, entry := range batch {
			entry := entry
			pool.Submit(func() {
				defer wg.Done()

				id, uploadErr := self.uploadEntry(ctx, entry)

				// Every path sharing this content gets the same outcome
				paths := groups[entry.contentKey]

				mtx.Lock()
				for _, path := range paths {
					if uploadErr != nil {
						failed[path] = uploadErr
					} else {
						ids[path] = id
					}
				}
				mtx.Unlock()

				if uploadErr == nil && opts.OnProgress != nil {
					for _, path := range paths {
						opts.OnProgress(path, id)
					}
				}
			})
		}

		// The next batch starts only after the whole current one is done
		wg.Wait()

		if ctx.Err() != nil {
			err = ctx.Err()
			return
		}
	}

	manifest := NewManifest()
	if opts.IndexFile != "" {
		manifest.Index = &ManifestIndex{Path: opts.IndexFile}
	}
	for path, id := range ids {
		manifest.Paths[path] = &ManifestPath{Id: id}
	}
	if keepDeleted {
		for path := range failed {
			manifest.Paths[path] = nil
		}
	}

	out = &FolderResult{
		Manifest: manifest,
		Ids:      ids,
		Bytes:    totalBytes,
	}

	manifestData, err := manifest.Marshal()
	if err != nil {
		return
	}

	tags := append(bundlr.Tags{{Name: ContentTypeTagName, Value: ManifestContentType}}, opts.ManifestTags...)
	response, err := self.Upload(ctx, manifestData, tags, nil)
	if err != nil {
		err = fmt.Errorf("failed to upload the manifest: %w", err)
		return
	}
	out.ManifestId = response.Id

	if len(failed) > 0 {
		err = &PartialBatchFailure{Failed: failed}
	}
	return
}

// enumerate walks dir and returns its regular files in lexical path order
func (self *Uploader) enumerate(dir string) (entries []*folderEntry, totalBytes int64, err error) {
	root := os.DirFS(dir)
	err = fs.WalkDir(root, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
		if err != nil {
			return err
		}

		entries = append(entries, &folderEntry{
			relPath:    path,
			absPath:    filepath.Join(dir, filepath.FromSlash(path)),
			size:       info.Size(),
			contentKey: sha256.Sum256(data),
		})
		totalBytes += info.Size()
		return nil
	})
	return
}

func (self *Uploader) uploadEntry(ctx context.Context, entry *folderEntry) (id string, err error) {
	err = task.NewRetry().
		WithContext(ctx).
		WithMaxElapsedTime(self.config.Uploader.RetryMaxElapsedTime).
		WithMaxInterval(self.config.Uploader.RetryMaxInterval).
		WithOnError(func(err error) {
			self.log.WithError(err).WithField("path", entry.relPath).Warn("Item upload failed, retrying")
		}).
		Run(func() error {
			response, err := self.UploadFile(ctx, entry.absPath, nil, nil)
			if err != nil {
				if err == bundlr.ErrPaymentRequired {
					// More retries won't refill the balance
					return task.Permanent(err)
				}
				return err
			}
			id = response.Id
			return nil
		})
	return
}
