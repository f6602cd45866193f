package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Service is a users API instance found on the local network.
type Service struct {
	// Instance is the advertised instance name (e.g., "userdeck-fakeapi")
	Instance string

	// Hostname is the mDNS hostname (e.g., "devbox.local.")
	Hostname string

	// IP is the preferred address, IPv4 when one was announced
	IP string

	Port int

	// Metadata holds the TXT record pairs. Known keys: "path", "version", "users".
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("%s (%s) at %s", s.Instance, s.Hostname, s.BaseURL())
}

// BaseURL returns the URL to hand to the gateway client.
func (s *Service) BaseURL() string {
	return "http://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
