package transport

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestReadLimitedBody_AllowsWithinLimit(t *testing.T) {
	body, err := ReadLimitedBody(strings.NewReader("hello"), 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if string(body) != "hello" {
		t.Fatalf("unexpected body: %s", string(body))
	}
}

func TestReadLimitedBody_RejectsOversize(t *testing.T) {
	body, err := ReadLimitedBody(strings.NewReader("helloworld"), 5)
	if !errors.Is(err, ErrResponseBodyTooLarge) {
		t.Fatalf("expected ErrResponseBodyTooLarge, got %v", err)
	}
	if string(body) != "hello" {
		t.Fatalf("unexpected body: %s", string(body))
	}
}

func TestReadLimitedBody_NoLimitReadsAll(t *testing.T) {
	body, err := ReadLimitedBody(strings.NewReader("helloworld"), 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if string(body) != "helloworld" {
		t.Fatalf("unexpected body: %s", string(body))
	}
}

func TestReadErrorBody_DrainsAndCloses(t *testing.T) {
	closed := false
	resp := &http.Response{
		Body: &trackingCloser{Reader: strings.NewReader(`{"error":{"message":"nope"}}`), onClose: func() { closed = true }},
	}

	body := ReadErrorBody(resp)
	if !strings.Contains(string(body), "nope") {
		t.Errorf("body = %s", body)
	}
	if !closed {
		t.Error("response body not closed")
	}
}

type trackingCloser struct {
	io.Reader
	onClose func()
}

func (t *trackingCloser) Close() error {
	t.onClose()
	return nil
}
