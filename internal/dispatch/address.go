package dispatch

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SanitizeAddress turns an operator or master supplied address into a base
// URL of the form scheme://host[:port]. A bare host:port gets http://.
func SanitizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", errors.New("address is empty")
	}
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("missing host in %q", address)
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return "", fmt.Errorf("invalid port %q", p)
		}
	}
	if u.Path != "" && u.Path != "/" {
		return "", fmt.Errorf("address must not contain a path, got %q", u.Path)
	}
	if u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return "", fmt.Errorf("address must be scheme://host[:port], got %q", address)
	}

	return u.Scheme + "://" + u.Host, nil
}
