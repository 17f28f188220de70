package service

import "errors"

// Pipeline failure classes, matched with errors.Is at the API boundary.
// Handlers map them to HTTP statuses and a generic per-mode notification;
// the detailed cause is only ever written to the log.
var (
	// ErrEmptyInput rejects a generation with no usable text or image.
	ErrEmptyInput = errors.New("empty input")

	// ErrImageEncoding marks an unreadable or unsupported image source.
	ErrImageEncoding = errors.New("image encoding failed")

	// ErrModelInvocation covers transport, auth, quota, and empty-response
	// failures from the upstream model API.
	ErrModelInvocation = errors.New("model invocation failed")

	// ErrNoJSONFound means the model response contains no object at all.
	ErrNoJSONFound = errors.New("no JSON found in response")

	// ErrMalformedJSON means an object was isolated but did not decode.
	ErrMalformedJSON = errors.New("malformed JSON in response")

	// ErrGenerationInFlight rejects a generation while another one runs.
	ErrGenerationInFlight = errors.New("generation already in flight")

	// ErrCaptionNotFound means a copy request named an unknown caption ID.
	ErrCaptionNotFound = errors.New("caption not found")
)
