// Package web hosts the networking-side bridges: page settings, proxy
// resolution, the persistent cookie jar, and the on-disk page cache.
package web

import (
	"fmt"
	"net/http"
	"net/url"
)

// ProxyFunc reports the proxy to use for a request, or nil for direct.
type ProxyFunc func(*http.Request) (*url.URL, error)

// ResolveProxy maps the proxy setting to a ProxyFunc.
//
//	"system" - honor HTTP_PROXY/HTTPS_PROXY/NO_PROXY
//	"none"   - always direct
//	URL      - fixed proxy, scheme http, https or socks5
func ResolveProxy(setting string) (ProxyFunc, error) {
	switch setting {
	case "", "system":
		return http.ProxyFromEnvironment, nil
	case "none":
		return func(*http.Request) (*url.URL, error) { return nil, nil }, nil
	}

	u, err := url.Parse(setting)
	if err != nil {
		return nil, fmt.Errorf("parse proxy %q: %w", setting, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	return http.ProxyURL(u), nil
}
