package request

// Ping holds the request body of a domain latency probe.
type Ping struct {
	Domain string `json:"domain" validate:"required,max=253"`
}
