package uploader

import "encoding/json"

const (
	ManifestType        = "arweave/paths"
	ManifestVersion     = "0.1.0"
	ManifestContentType = "application/x.arweave-manifest+json"
)

type ManifestIndex struct {
	Path string `json:"path"`
}

type ManifestPath struct {
	Id string `json:"id"`
}

// Manifest maps relative paths to data item ids, making an uploaded folder
// addressable through a gateway as {manifestId}/{path}.
// A nil *ManifestPath marks a path whose upload permanently failed and
// serializes as null, so a later re-upload can spot the hole.
type Manifest struct {
	Manifest string                   `json:"manifest"`
	Version  string                   `json:"version"`
	Index    *ManifestIndex           `json:"index,omitempty"`
	Paths    map[string]*ManifestPath `json:"paths"`
}

func NewManifest() *Manifest {
	return &Manifest{
		Manifest: ManifestType,
		Version:  ManifestVersion,
		Paths:    make(map[string]*ManifestPath),
	}
}

func (self *Manifest) Marshal() ([]byte, error) {
	return json.Marshal(self)
}
