// Package handler defines the function types shared by the response,
// middleware and server packages.
//
// A HandlerFunc receives a *request.Request and returns a Response. The
// Response is a deferred render step: it runs against the http.ResponseWriter
// after the handler and all middleware have returned, and any error it returns
// goes to the ErrorHandler installed by the server adapter.
//
//	func showUser(req *request.Request) handler.Response {
//		if !req.Query().Has("id") {
//			return response.Error(response.ErrBadRequest.WithMessage("id is required"))
//		}
//		env, err := response.NewJSON(map[string]any{"id": req.QueryParam("id", params.Null())})
//		if err != nil {
//			return response.Error(err)
//		}
//		return env.Response()
//	}
//
// Middleware wraps a HandlerFunc. Chain applies a list of them with the first
// one outermost:
//
//	h := handler.Chain(showUser,
//		middleware.Logging(log),
//		middleware.ClientIP(),
//	)
package handler
