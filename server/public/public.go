package public

import (
	"fmt"
	"net"
	"os"
)

var (
	// Listener is the local listen address of the HTTP server
	Listener string

	// Addr is the externally reachable base URL of the HTTP server
	Addr string
)

func genericInterface(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}

// SetListener stores the listen address and derives the public address unless already set
func SetListener(addr string) (string, error) {
	Listener = addr

	if Addr == "" {
		return SetAddr(addr)
	}

	return Addr, nil
}

// SetAddr derives the public address from the listen address. Generic or
// loopback hosts are replaced by the hostname.
func SetAddr(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}

	if host == "" || genericInterface(host) {
		if host, err = os.Hostname(); err != nil {
			return "", err
		}
	}

	Addr = fmt.Sprintf("http://%s", net.JoinHostPort(host, port))

	return Addr, nil
}
