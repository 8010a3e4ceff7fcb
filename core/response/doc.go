// Package response provides handler responses, with the JSON envelope as the
// main one.
//
// # JSON Envelope
//
// A JSON envelope stores its content as JSON text. Values passed to NewJSON
// or SetContent are encoded right away; the structured value is not kept.
//
//	env, err := response.NewJSON(map[string]any{"user": user}, response.WithStatus(http.StatusCreated))
//	if err != nil {
//		return response.Error(err)
//	}
//
//	env.Content()         // `{"user":{...}}`
//	env.Decode(true)      // map[string]any tree
//	env.Decode(false)     // params.Value, object key order kept
//	env.Get("user.name")  // gjson.Result
//	env.Set("meta.v", 2)  // edits the stored text in place
//
//	return env.Response()
//
// The content type is always application/json. Status 204 and 304 are
// rendered without a body.
//
// # Errors
//
// Error hands an error to the adapter's error handler instead of writing a
// response. HTTPError carries the status, a machine-readable code and a
// message; JSONErrorHandler renders it as
//
//	{"code": "not_found", "message": "Not Found", "details": {...}}
//
// Errors that are not HTTPError values become 500 responses unless they
// implement StatusCode() int.
package response
