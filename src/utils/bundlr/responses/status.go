package responses

type Status struct {
	Status string `json:"status"`
}
