// Package reqkit is a request-scoped toolkit for HTTP services: ordered
// parameter stores, a request view built from CGI-style server variables,
// stoppable events with a synchronous dispatcher and a JSON response envelope.
//
// This file indexes the packages of the module; the root package has no code.
//
// # Getting Documentation
//
//	go doc github.com/dmitrymomot/reqkit/core/request
//	go doc -all github.com/dmitrymomot/reqkit/core/params
//
// # Core Packages
//
//	github.com/dmitrymomot/reqkit/core/params   - Ordered string-keyed stores of tagged JSON-like values
//	github.com/dmitrymomot/reqkit/core/request  - Request view: headers, query, data, cookies, URI, method, scheme and client IP
//	github.com/dmitrymomot/reqkit/core/response - JSON envelope, HTTP errors and error handlers
//	github.com/dmitrymomot/reqkit/core/event    - Stoppable events with parameter payloads and a synchronous dispatcher
//	github.com/dmitrymomot/reqkit/core/handler  - Handler, response, error handler and middleware function types
//	github.com/dmitrymomot/reqkit/core/server   - net/http adapter and server with graceful shutdown
//	github.com/dmitrymomot/reqkit/core/binder   - Binding of query and body parameters to tagged structs
//	github.com/dmitrymomot/reqkit/core/health   - Liveness and readiness handlers
//	github.com/dmitrymomot/reqkit/core/config   - Environment configuration loading with .env support
//	github.com/dmitrymomot/reqkit/core/logger   - slog construction and attribute helpers
//
// # Middleware
//
//	github.com/dmitrymomot/reqkit/middleware    - Request ID, client IP, logging, rate limiting and metrics
//
// # Utilities
//
//	github.com/dmitrymomot/reqkit/pkg/clientip  - Address chain parsing and trusted proxy matching
//
// # Commands
//
//	github.com/dmitrymomot/reqkit/cmd/reqkit    - CLI: echo server, CGI request inspector, version
package reqkit
