package transport

import (
	"net/http"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}

// QueryAuth implements API key as query parameter authentication.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, apiKey string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, apiKey)
	req.URL.RawQuery = query.Encode()
}

// ParseAuth returns the authenticator for a scheme name: "bearer" (default),
// "none", "query:<param>" or "header:<name>".
func ParseAuth(scheme string) Authenticator {
	switch {
	case scheme == "" || scheme == "bearer":
		return &BearerAuth{}
	case scheme == "none":
		return &NoAuth{}
	case len(scheme) > len("query:") && scheme[:len("query:")] == "query:":
		return &QueryAuth{Param: scheme[len("query:"):]}
	case len(scheme) > len("header:") && scheme[:len("header:")] == "header:":
		return &HeaderAuth{Header: scheme[len("header:"):]}
	default:
		return &BearerAuth{}
	}
}
