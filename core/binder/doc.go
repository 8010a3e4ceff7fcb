// Package binder copies request parameters into tagged Go structs.
//
// Query binds the query store with `query` tags; Data binds the body store
// with `form` tags. Params binds any params.Reader, such as an event payload
// or a decoded JSON envelope.
//
//	type CreateUser struct {
//		Name    string   `form:"name"`
//		Age     int      `form:"age"`
//		Roles   []string `form:"roles"`
//		Address struct {
//			City string `form:"city"`
//		} `form:"address"`
//	}
//
//	func create(req *request.Request) handler.Response {
//		var in CreateUser
//		if err := binder.Data()(req, &in); err != nil {
//			return response.Error(response.ErrBadRequest.WithError(err))
//		}
//		// ...
//	}
//
// Missing and null parameters leave fields untouched. Lists bind to slices,
// and a comma-separated string also fills a slice. Nested maps bind to struct
// fields. Strings have control characters removed.
package binder
