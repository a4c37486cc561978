package ghost

import "net/url"

// Request describes one Admin API call.  Path is relative to the admin root
// (e.g. "posts/"); query parameters are carried as typed values and encoded
// once, which keeps ids, filters and tags safely escaped.
type Request struct {
	Path   string
	Method string
	Query  url.Values
	Body   interface{}
}

// resolve builds the absolute request URL for the given site root and API
// version: {base}/ghost/api/{version}/admin/{path}?{query}.
func (r *Request) resolve(baseURL, version string) string {
	u := baseURL + "/ghost/api/" + version + "/admin/" + r.Path
	if encoded := r.Query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// sourceQuery returns the query every posts call starts from; source=html
// makes Ghost accept and return HTML content directly.
func sourceQuery() url.Values {
	return url.Values{"source": []string{"html"}}
}
