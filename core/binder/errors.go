package binder

import "errors"

var (
	// ErrUnsupportedMediaType indicates the request Content-Type does not
	// match what the binder expects.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrFailedToParseJSON indicates JSON request body parsing failed.
	ErrFailedToParseJSON = errors.New("failed to parse json")

	// ErrFailedToParseForm indicates form data parsing failed.
	ErrFailedToParseForm = errors.New("failed to parse form")

	// ErrFailedToParseQuery indicates query parameter parsing failed.
	ErrFailedToParseQuery = errors.New("failed to parse query")

	// ErrFailedToParsePath indicates path parameter parsing failed.
	ErrFailedToParsePath = errors.New("failed to parse path params")

	// ErrMissingContentType indicates the request has no Content-Type
	// header but the binder requires one.
	ErrMissingContentType = errors.New("missing content type")
)
