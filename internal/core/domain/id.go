package domain

import "github.com/google/uuid"

// =============================================================================
// ID Generation
// =============================================================================

// NewID returns a prefixed short identifier, e.g. "sch_1a2b3c4d".
// The prefix makes entity kinds recognizable in logs and API payloads.
func NewID(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}
