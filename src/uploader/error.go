package uploader

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrReceiptInvalid  = errors.New("receipt signature does not verify against the service public key")
	ErrUploadRejected  = errors.New("upload rejected in preflight")
	ErrNothingToUpload = errors.New("folder contains no files")
)

// PartialBatchFailure reports a folder upload where some items permanently
// failed. The accompanying result is still usable, failed paths are either
// dropped from the manifest or kept as null entries.
type PartialBatchFailure struct {
	// Last error per relative path, after retries were exhausted
	Failed map[string]error
}

func (self *PartialBatchFailure) Error() string {
	paths := make([]string, 0, len(self.Failed))
	for path := range self.Failed {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return fmt.Sprintf("%d item(s) failed to upload: %s", len(self.Failed), strings.Join(paths, ", "))
}
