package kanjiapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUpstreamFetch is matched by every failure to fetch data from the kanji API
var ErrUpstreamFetch = errors.New("failed to fetch data from kanji API")

// FetchError describes a failed request to the kanji API
//
// StatusCode is zero when no response was received.
type FetchError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("kanji API %s returned status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("kanji API %s: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports every FetchError as ErrUpstreamFetch
func (e *FetchError) Is(target error) bool {
	return target == ErrUpstreamFetch
}

// IsNotFound reports whether err is a kanji API "404 Not Found" response
func IsNotFound(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound
}
