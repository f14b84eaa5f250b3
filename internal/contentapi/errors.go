package contentapi

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrMalformedResponse marks a 2xx response whose body could not be decoded.
var ErrMalformedResponse = errors.New("malformed response")

// NetworkError reports that a request never reached the backend or its
// response never came back.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network unavailable: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response. Message holds the raw response text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// ParseError is returned together with an empty result when a successful
// response does not carry the expected JSON.
type ParseError struct {
	Op          string
	ContentType string
	Err         error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, ErrMalformedResponse, e.Err)
	}
	return fmt.Sprintf("%s: %v: unexpected content type %q", e.Op, ErrMalformedResponse, e.ContentType)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrMalformedResponse }

// IsMalformed reports whether err came from an undecodable success response.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// StatusCode returns the HTTP status carried by an APIError, or 0.
func StatusCode(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// Lenient drops malformed-response errors so the caller keeps the empty
// result, logging a warning instead. Other errors pass through unchanged.
func Lenient(err error) error {
	if err != nil && IsMalformed(err) {
		log.Warn().Err(err).Msg("[CONTENT API] malformed response treated as empty result")
		return nil
	}
	return err
}
