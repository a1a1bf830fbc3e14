package protocol

import "errors"

var (
	// ErrTruncated reports a buffer shorter than a layer's fixed header.
	ErrTruncated = errors.New("protocol: truncated data")
	// ErrMalformedAttribute reports a route attribute claiming more payload than remains.
	ErrMalformedAttribute = errors.New("protocol: malformed attribute")
)
