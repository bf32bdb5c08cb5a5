package keys

import (
	"strings"
)

const (
	// PfxAuctionParams is used for prefixing cached auction parameters
	PfxAuctionParams = "auctionParams"
	// PfxToken is used for prefixing token metadata
	PfxToken = "token"
	// PfxHealthCheck is used for prefixing health probes
	PfxHealthCheck = "healthCheck"
	// PfxKeeperLock is used for prefixing keeper job locks
	PfxKeeperLock = "keeperLock"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the first component of a key
func GetPrefix(key string) string {
	s := strings.SplitN(key, ":", 2)
	if len(s) > 1 {
		return s[0]
	}
	return ""
}
