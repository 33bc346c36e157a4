// Package endpoint resolves where the comic generation stream lives.
package endpoint

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Loopback is substituted for "localhost" so the stream targets the IPv4
// loopback the backend binds to.
const Loopback = "127.0.0.1"

// Endpoint addresses the generation stream.
type Endpoint struct {
	Scheme string
	Host   string // already resolved, see ResolveHost
	Port   int
	Path   string
}

// New builds an Endpoint from the host the client considers itself served
// from. The host is passed through ResolveHost.
func New(scheme, pageHost string, port int, path string) Endpoint {
	return Endpoint{
		Scheme: scheme,
		Host:   ResolveHost(pageHost),
		Port:   port,
		Path:   path,
	}
}

// ResolveHost maps the page hostname to the API host: localhost becomes
// 127.0.0.1, anything else is reused so LAN access keeps working. A port
// suffix and IPv6 brackets are stripped.
func ResolveHost(pageHost string) string {
	host := strings.TrimSpace(hostWithoutPort(pageHost))
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	if host == "" || strings.EqualFold(host, "localhost") {
		return Loopback
	}
	return host
}

// URL returns the stream URL for topic. The topic is escaped the way
// encodeURIComponent does it (spaces as %20).
func (e Endpoint) URL(topic string) string {
	return e.BaseURL() + strings.TrimPrefix(e.Path, "/") + "?topic=" + EscapeTopic(topic)
}

// BaseURL returns scheme://host:port/ for resolving relative links served by
// the backend, such as panel images.
func (e Endpoint) BaseURL() string {
	u := url.URL{
		Scheme: e.Scheme,
		Host:   net.JoinHostPort(e.Host, strconv.Itoa(e.Port)),
		Path:   "/",
	}
	return u.String()
}

// EscapeTopic percent-encodes a topic for the query string.
func EscapeTopic(topic string) string {
	return strings.ReplaceAll(url.QueryEscape(topic), "+", "%20")
}

func hostWithoutPort(hostport string) string {
	if hostport == "" {
		return ""
	}
	if strings.Contains(hostport, ":") {
		host, _, err := net.SplitHostPort(hostport)
		if err == nil {
			return host
		}
	}
	return hostport
}
