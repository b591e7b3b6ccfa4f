package responses

type Info struct {
	Version string `json:"version"`
	Gateway string `json:"gateway"`

	// Service's receiving address per supported chain
	Addresses map[string]string `json:"addresses"`
}
