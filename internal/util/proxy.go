// Package util holds small helpers shared by the LLM provider clients.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds a proxy selector for an http.Transport from explicit
// proxy URLs. With no explicit URLs the standard environment variables
// (HTTP_PROXY, HTTPS_PROXY, NO_PROXY) apply; explicit URLs win over them
// so a provider can be routed through a dedicated egress proxy without
// touching the process environment.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		switch {
		case req.URL.Scheme == "https" && httpsProxy != "":
			return url.Parse(httpsProxy)
		case httpProxy != "":
			return url.Parse(httpProxy)
		default:
			return http.ProxyFromEnvironment(req)
		}
	}
}
