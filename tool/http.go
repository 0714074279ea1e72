package tool

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultTimeout bounds every round trip to the box. Enigma2 boxes answer
// status queries in well under a second on a LAN; anything longer means the
// box is off or unreachable.
var DefaultTimeout = 10 * time.Second

// NewHTTPClient creates an HTTP client for talking to a box. Boxes running
// OpenWebif over HTTPS almost always carry a self-signed certificate, so
// verification is skipped.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     30 * time.Second,
			DisableKeepAlives:   false,
		},
	}
}
