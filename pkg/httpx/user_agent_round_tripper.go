package httpx

import (
	"fmt"
	"net/http"
)

// UserAgentRoundTripper sets a fixed User-Agent on every outgoing request
// that does not carry one.
type UserAgentRoundTripper struct {
	next      http.RoundTripper
	userAgent string
}

func NewUserAgentRoundTripper(
	next http.RoundTripper,
	userAgent string,
) UserAgentRoundTripper {
	return UserAgentRoundTripper{
		next:      next,
		userAgent: userAgent,
	}
}

func (rt UserAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", rt.userAgent)
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
