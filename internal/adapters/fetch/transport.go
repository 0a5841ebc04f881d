package fetch

import (
	"net"
	"net/http"
	"time"
)

// noProxyTransport mirrors http.DefaultTransport with Proxy left nil, so
// HTTP_PROXY and friends are ignored.
func noProxyTransport() *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
