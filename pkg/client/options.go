package client

import "net/http"

type callOptions struct {
	header http.Header
	params map[string]string
}

// CallOption configures a single call.
type CallOption func(*callOptions)

// CacheControl sends directive verbatim in the Cache-Control header.
func CacheControl(directive string) CallOption {
	return func(o *callOptions) {
		o.header.Set("Cache-Control", directive)
	}
}

// NoStore asks every cache between client and server to fetch fresh data.
func NoStore() CallOption {
	return CacheControl("no-store")
}

// Header sets a request header for this call.
func Header(key, value string) CallOption {
	return func(o *callOptions) {
		o.header.Set(key, value)
	}
}

// PathParam fills the {name} placeholder of the route path.
func PathParam(name, value string) CallOption {
	return func(o *callOptions) {
		if o.params == nil {
			o.params = make(map[string]string)
		}
		o.params[name] = value
	}
}
