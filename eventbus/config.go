package eventbus

import (
	"os"
	"strings"
)

const defaultGroupID = "savoriq-processor"

// Brokers returns KAFKA_BOOTSTRAP_SERVERS. ok is false when no broker is
// configured; callers then score reviews inline instead of publishing.
func Brokers() (brokers string, ok bool) {
	v := strings.TrimSpace(os.Getenv("KAFKA_BOOTSTRAP_SERVERS"))
	return v, v != ""
}

// GroupID returns KAFKA_GROUP_ID or the processor default.
func GroupID() string {
	if v := strings.TrimSpace(os.Getenv("KAFKA_GROUP_ID")); v != "" {
		return v
	}
	return defaultGroupID
}
