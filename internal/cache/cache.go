package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching rendered reports
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ReportKey generates a cache key for a rendered report. Keyed by job id and
// format so the same job cached in different formats never collides.
func ReportKey(jobID, format string) string {
	hash := sha256.Sum256([]byte(jobID + "|" + format))
	return "graphlens:v1:" + hex.EncodeToString(hash[:])
}
