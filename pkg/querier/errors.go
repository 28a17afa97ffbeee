package querier

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork marks transport failures and non-2xx responses.
	ErrNetwork = errors.New("network error")
	// ErrParse marks bodies that are not valid JSON of the expected shape.
	ErrParse = errors.New("parse error")
	// ErrEmptyInput is returned for literal queries that are blank after trimming.
	ErrEmptyInput = errors.New("empty input")
	// ErrClosed is returned by queriers used after Close.
	ErrClosed = errors.New("querier is closed")
)

// StatusError is wrapped together with ErrNetwork when API responds with non-2xx code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response code: %d %s", e.Code, http.StatusText(e.Code))
}
