package domain

import (
	"fmt"
	"net/http"
)

// StatusError reports a request that completed with a status outside the 2xx
// range. The message format is part of the contract with the presentation
// layer, which renders it verbatim.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	if text := http.StatusText(e.Code); text != "" {
		return fmt.Sprintf("API error: %d %s", e.Code, text)
	}
	return fmt.Sprintf("API error: %d", e.Code)
}

// DecodeError reports a response body that did not match the expected shape.
type DecodeError struct {
	Err error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e DecodeError) Unwrap() error {
	return e.Err
}
