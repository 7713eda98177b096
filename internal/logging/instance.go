package logging

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateInstanceID creates an identifier for one running instance.
// Format: YYYYMMDD_HHMMSS_xxxx (timestamp + 4 random hex chars)
// Example: 20261014_205106_a7b3
func GenerateInstanceID() string {
	now := time.Now()
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return now.Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// ShortInstanceID extracts the short ID (last 4 hex chars) from a full instance ID.
// Example: "20261014_205106_a7b3" -> "a7b3"
func ShortInstanceID(id string) string {
	if len(id) < 4 {
		return id
	}
	return id[len(id)-4:]
}
