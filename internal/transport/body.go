package transport

import (
	"errors"
	"io"
	"net/http"
)

// DefaultMaxResponseBodyBytes caps buffered response bodies to 10MB.
// Streaming bodies are not subject to the cap; they are consumed line by
// line.
const DefaultMaxResponseBodyBytes int64 = 10 * 1024 * 1024

var ErrResponseBodyTooLarge = errors.New("response body too large")

// ReadLimitedBody reads up to maxBytes from reader and returns
// ErrResponseBodyTooLarge when exceeded.
func ReadLimitedBody(reader io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(reader)
	}

	limited := io.LimitReader(reader, maxBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return body, err
	}
	if int64(len(body)) > maxBytes {
		body = body[:int(maxBytes)]
		return body, ErrResponseBodyTooLarge
	}
	return body, nil
}

// ReadErrorBody drains and closes a failed response's body through the size
// cap. A partial read still yields whatever was captured.
func ReadErrorBody(resp *http.Response) []byte {
	defer resp.Body.Close()
	body, _ := ReadLimitedBody(resp.Body, DefaultMaxResponseBodyBytes)
	return body
}
