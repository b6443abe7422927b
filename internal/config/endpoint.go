package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	DefaultEndpoint = "ws://localhost:3005"
	// DefaultEndpointPath is used when only an origin is given.
	DefaultEndpointPath = "/ws/full"
)

var ErrEndpoint = errors.New("invalid endpoint")

// ValidateEndpoint accepts only ws:// and wss:// URLs that name a host.
func ValidateEndpoint(value string) error {
	_, err := NormalizeEndpoint(value)

	return err
}

// NormalizeEndpoint validates value and fills in the default path for bare origins, so
// ws://localhost:3005 becomes ws://localhost:3005/ws/full. Explicit paths are kept.
func NormalizeEndpoint(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: Invalid URL", ErrEndpoint)
	}

	parsed, errParse := url.Parse(trimmed)
	if errParse != nil {
		return "", fmt.Errorf("%w: Invalid URL", errors.Join(errParse, ErrEndpoint))
	}

	if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
		return "", fmt.Errorf("%w: URL must start with ws:// or wss://", ErrEndpoint)
	}

	if parsed.Hostname() == "" {
		return "", fmt.Errorf("%w: URL must include a hostname", ErrEndpoint)
	}

	if parsed.Path == "" || parsed.Path == "/" {
		parsed.Path = DefaultEndpointPath
		parsed.RawPath = ""
	}

	return parsed.String(), nil
}
