package cache

import "strings"

// KeyPrefix namespaces every key this service writes, so the Redis
// instance can be shared with other admin services.
const KeyPrefix = "iqadmin"

// Key joins parts under KeyPrefix with ":". Empty parts are skipped.
func Key(parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, KeyPrefix)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return strings.Join(segments, ":")
}

// TestListKey is where the full IQ test catalog is cached.
func TestListKey() string {
	return Key("catalog", "tests", "all")
}
