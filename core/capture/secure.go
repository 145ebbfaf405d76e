package capture

import (
	"net"
	"net/url"
	"strings"
)

// secureOriginOrLocal reports whether the backend origin is served over a
// secure transport or points at a recognized local-development host.
func secureOriginOrLocal(origin *url.URL) bool {
	if origin == nil {
		return false
	}

	switch origin.Scheme {
	case "https", "wss":
		return true
	case "http", "ws":
		return isLocalDevelopmentHost(origin.Hostname())
	}

	return false
}

func isLocalDevelopmentHost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback()
	}

	return false
}
