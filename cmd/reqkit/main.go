// Command reqkit serves and inspects request views.
//
//	reqkit serve      echo every HTTP request back as JSON
//	reqkit inspect    print the request view of a CGI invocation
//	reqkit version    print build information
//
// Configuration comes from the environment (or a .env file): SERVER_* for
// the listener, REQUEST_* for proxy trust and body limits, LOG_* for logging
// and RATE_LIMIT_* for the per-client limiter.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
