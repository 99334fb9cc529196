package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds request bodies; the API only accepts small JSON objects.
const maxBodyBytes = 64 << 10

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a JSON body into v and validates its struct tags. Decoding
// errors are prefixed "invalid JSON", tag failures "validation error".
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// IsValidationError reports whether err came from struct validation rather
// than from JSON decoding.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// RequireID returns s or an error when a path parameter is empty.
func RequireID(s string) (string, error) {
	if s == "" {
		return "", errors.New("missing required ID")
	}
	return s, nil
}
