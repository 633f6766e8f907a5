package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBodySize caps JSON bodies read by JSONObject.
const DefaultMaxBodySize int64 = 1 << 20

// JSONObject creates a binder that decodes a non-empty JSON object body into v.
//
// The Content-Type header is not inspected: browser form scripts are not
// consistent about setting it. Anything that is not an object with at least
// one member (scalars, arrays, null, {}) is rejected with ErrInvalidJSON.
// Unknown members are ignored.
//
// A maxBytes of zero or less uses DefaultMaxBodySize.
func JSONObject(maxBytes int64) func(r *http.Request, v any) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(r *http.Request, v any) error {
		if r.Body == nil || r.Body == http.NoBody {
			return fmt.Errorf("%w: %w", ErrInvalidJSON, ErrEmptyBody)
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		if int64(len(raw)) > maxBytes {
			return fmt.Errorf("%w: %w", ErrInvalidJSON, ErrBodyTooLarge)
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return fmt.Errorf("%w: %w", ErrInvalidJSON, ErrEmptyBody)
		}

		var members map[string]json.RawMessage
		if err := json.Unmarshal(raw, &members); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return fmt.Errorf("%w: expected a JSON object, got %s", ErrInvalidJSON, typeErr.Value)
			}
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		if len(members) == 0 {
			return fmt.Errorf("%w: object has no members", ErrInvalidJSON)
		}

		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return nil
	}
}
