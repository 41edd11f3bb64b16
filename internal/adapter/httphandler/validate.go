package httphandler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/niksmo/drago-decor/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterAlias("usage", oneOf(domain.Usages))
	v.RegisterAlias("finish", oneOf(domain.Finishes))
	v.RegisterAlias("order_status", oneOf(domain.OrderStatuses))
	v.RegisterAlias("tier", oneOf(domain.Tiers))
	return v
}

func oneOf[T ~string](values []T) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = string(v)
	}
	return "oneof=" + strings.Join(s, " ")
}

// validateRequest checks the validate tags of req and reports the failures
// located under "body".
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var vs domain.Violations
	for _, fe := range fieldErrs {
		typ, msg := describe(fe)
		vs.Add(typ, msg, fieldLoc(fe.Namespace())...)
	}
	return vs.Err()
}

func describe(fe validator.FieldError) (typ, msg string) {
	switch fe.ActualTag() {
	case "required":
		return domain.ViolationMissing, "Field required"
	case "oneof":
		return domain.ViolationLiteral, "Input should be " + quoteChoices(fe.Param())
	case "gte", "min":
		return domain.ViolationGreaterEqual,
			"Input should be greater than or equal to " + fe.Param()
	case "lte", "max":
		return domain.ViolationLessEqual,
			"Input should be less than or equal to " + fe.Param()
	case "http_url":
		return domain.ViolationURL, "Input should be a valid URL"
	}
	return domain.ViolationValue, fmt.Sprintf("Value error, failed on %q", fe.Tag())
}

func quoteChoices(param string) string {
	choices := strings.Fields(param)
	for i, c := range choices {
		choices[i] = "'" + c + "'"
	}
	if n := len(choices); n > 1 {
		return strings.Join(choices[:n-1], ", ") + " or " + choices[n-1]
	}
	return strings.Join(choices, "")
}

// fieldLoc turns a namespace such as "productRequest.variants[0].stock"
// into ["body", "variants", 0, "stock"].
func fieldLoc(namespace string) []any {
	loc := []any{"body"}

	segments := strings.Split(namespace, ".")
	for _, seg := range segments[1:] {
		name, rest, _ := strings.Cut(seg, "[")
		if name != "" {
			loc = append(loc, name)
		}
		for rest != "" {
			var idx string
			idx, rest, _ = strings.Cut(rest, "]")
			if n, err := strconv.Atoi(idx); err == nil {
				loc = append(loc, n)
			} else {
				loc = append(loc, idx)
			}
			rest = strings.TrimPrefix(rest, "[")
		}
	}
	return loc
}
