// Package request provides a read-mostly view of an inbound HTTP request built
// from CGI-style server variables and pre-parsed header, query, body and cookie
// data.
//
// Server variables are read through the Env interface, never from ambient
// process state. MapEnv serves tests and custom gateways, HTTPEnv derives the
// variables from a net/http request, and ProcessEnv reads them from the
// environment of a CGI process.
//
// # Construction
//
// From net/http:
//
//	func handle(w http.ResponseWriter, hr *http.Request) {
//		req, err := request.FromHTTP(hr, request.WithTrustedProxies("10.0.0.0/8"))
//		if err != nil {
//			http.Error(w, err.Error(), http.StatusBadRequest)
//			return
//		}
//		// ...
//	}
//
// From a CGI invocation (meta-variables in the environment, body on stdin):
//
//	req, err := request.FromCGI(request.ProcessEnv{}, os.Stdin)
//
// From raw data, with an explicit body loading step:
//
//	req, err := request.New(request.ProcessEnv{}, request.Input{
//		Headers: headers,
//		Query:   query,
//		Data:    form,
//		Cookies: cookies,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := req.LoadBody(os.Stdin); err != nil {
//		// ...
//	}
//
// LoadBody only reads PUT bodies; it parses them as URL-encoded forms and
// merges the fields into the data parameters.
//
// # Derived Facts
//
//	req.FullURI()        // "https://example.com:8443/users/1?tab=posts"
//	req.URI(false, true) // "/users/1?tab=posts"
//	req.Path()           // "/users/1"
//	req.Method()         // _method query param, then _method body param, then REQUEST_METHOD
//	req.IsSecure()       // HTTPS=on or X-Forwarded-Proto: https
//	req.IP()             // Client-IP, then X-Forwarded-For (first entry), then REMOTE_ADDR
//	req.IsAjax()         // X-Requested-With: XMLHttpRequest
//
// # Proxy Headers
//
// X-Forwarded-Proto, X-Forwarded-For and Client-IP are trusted by default so
// that requests behind a load balancer work without setup. Clients can forge
// these headers. When the application is reachable directly, pass
// WithoutProxyHeaders; behind known proxies, pass WithTrustedProxies with
// their addresses so the headers are honoured only when REMOTE_ADDR matches.
// Config exposes the same settings through environment variables.
//
// # Cookies
//
// Cookies are exposed through a read-only params.Reader. They are client
// state and only the request itself populates them.
package request
