package responses

// Client side interpretation of the upload call
type UploadStatus string

const (
	// Item stored, receipt fields filled in
	UploadStatusAccepted UploadStatus = "accepted"

	// An item with the same signature was uploaded before, service keeps the original
	UploadStatusAlreadyReceived UploadStatus = "already_received"
)

type ValidatorSignature struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

// Receipt for an accepted data item. Signature fields are only present when a
// signed receipt was requested.
type Upload struct {
	// Id of the stored data item
	Id string `json:"id"`

	// UNIX timestamp (millisecond precision) of when the service received the item
	Timestamp uint64 `json:"timestamp"`

	// Receipt version
	Version string `json:"version"`

	// Public key of the service node that signed the receipt
	Public string `json:"public,omitempty"`

	// Signature over the deep hash of the receipt fields
	Signature string `json:"signature,omitempty"`

	// Max block height by which the service promises inclusion
	DeadlineHeight uint64 `json:"deadlineHeight,omitempty"`

	ValidatorSignatures []ValidatorSignature `json:"validatorSignatures,omitempty"`

	Owner               string   `json:"owner,omitempty"`
	DataCaches          []string `json:"dataCaches,omitempty"`
	FastFinalityIndexes []string `json:"fastFinalityIndexes,omitempty"`

	// Filled in by the client, not part of the wire format
	Status UploadStatus `json:"-"`
}
