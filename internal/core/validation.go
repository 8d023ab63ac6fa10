package core

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/edvin/customer-api/internal/model"
)

var validate = validator.New()

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

func init() {
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimFunc(fl.Field().String(), isBlankRune) != ""
	})
	validate.RegisterValidation("customer_email", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
}

// isBlankRune reports whether r is whitespace for the blank-name rule. The
// no-break spaces U+00A0, U+2007 and U+202F count as content.
func isBlankRune(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	case '\t', '\n', '\v', '\f', '\r', '\u001c', '\u001d', '\u001e', '\u001f':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// ValidateEmail checks that email looks like local-part@domain. The request
// layer calls it too, before handing a create request to the service.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "customer_email"); err != nil {
		return invalidArgument("Invalid email format: " + email)
	}
	return nil
}

// ValidateRequestEmail is ValidateEmail for a decoded request. A request that
// carried no email reports the value as null.
func ValidateRequestEmail(req *model.CustomerRequest) error {
	if req.EmailAbsent {
		return invalidArgument("Invalid email format: null")
	}
	return ValidateEmail(req.Email)
}

// ValidateCustomerRequest checks a create or update request. Rules run in
// order and the first failure is returned.
func ValidateCustomerRequest(req *model.CustomerRequest) error {
	if req == nil {
		return invalidArgument("Request must not be null")
	}
	if err := validate.Var(req.Name, "notblank"); err != nil {
		return invalidArgument("Name must not be blank")
	}
	if err := ValidateRequestEmail(req); err != nil {
		return err
	}
	if req.AnnualSpend == nil || req.AnnualSpend.IsNegative() {
		return invalidArgument("Annual spend must not be null or negative")
	}
	if req.LastPurchaseDate == nil {
		return invalidArgument("Last purchase date must not be null")
	}
	return nil
}
