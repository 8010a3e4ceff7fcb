package response

import "errors"

var (
	ErrEncode      = errors.New("failed to encode json content")
	ErrDecode      = errors.New("failed to decode json content")
	ErrInvalidPath = errors.New("invalid json path")
)
