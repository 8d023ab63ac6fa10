package request

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/edvin/customer-api/internal/platform"
)

var validate = validator.New()

// Decode parses the JSON body into v and runs struct tag validation on it.
// model.CustomerRequest carries no validate tags: the customer service checks
// it with ordered rules and its own messages, so Decode only parses it.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

func RequireID(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("missing required ID")
	}
	return s, nil
}

// RequireCustomerID is RequireID plus a UUID format check.
func RequireCustomerID(s string) (string, error) {
	if _, err := RequireID(s); err != nil {
		return "", err
	}
	return platform.ParseID(s)
}
