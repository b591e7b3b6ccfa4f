package responses

type Withdraw struct {
	TxId      string `json:"tx_id"`
	Requested int64  `json:"requested"`
	Fee       int64  `json:"fee"`
	Final     int64  `json:"final"`
}
