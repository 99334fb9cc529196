package platform

import "github.com/google/uuid"

const probeIDPrefix = "probe_"

// NewProbeID returns a time-ordered id used to correlate a queued ping
// with its log lines. It falls back to a random UUID if the clock
// sequence cannot be read.
func NewProbeID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return probeIDPrefix + id.String()
}
