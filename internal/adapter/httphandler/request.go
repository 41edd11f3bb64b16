package httphandler

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/niksmo/drago-decor/internal/core/domain"
)

const (
	maxJSONBodyBytes = 1 << 20

	// largest magnitude a float64 holds with integer precision
	maxExactInteger = 1 << 53
)

// integer decodes a JSON number without a fractional part. Integral
// floats such as 2.0 are accepted.
type integer int

func (n *integer) UnmarshalJSON(b []byte) error {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactInteger {
		return &json.UnmarshalTypeError{
			Value: string(b), Type: reflect.TypeFor[int](),
		}
	}
	*n = integer(f)
	return nil
}

// decodeJSON decodes the request body into v. Malformed JSON and type
// mismatches are reported as [domain.ValidationError].
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	err := json.NewDecoder(body).Decode(v)
	if err == nil {
		return nil
	}

	var (
		vs      domain.Violations
		typeErr *json.UnmarshalTypeError
		maxErr  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxErr):
		return err
	case errors.Is(err, io.EOF):
		vs.Missing("body")
	case errors.As(err, &typeErr):
		loc := []any{"body"}
		if typeErr.Field != "" {
			for _, f := range strings.Split(typeErr.Field, ".") {
				loc = append(loc, f)
			}
		}
		vs.Add(domain.ViolationType,
			"Input should be a valid "+kindName(typeErr.Type), loc...)
	default:
		vs.Add(domain.ViolationJSON, "JSON decode error", "body")
	}
	return vs.Err()
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "list"
	}
	return "dictionary"
}

// queryLimit reads the "limit" query parameter. Zero means no limit.
func queryLimit(q url.Values, def int, vs *domain.Violations) int {
	raw := q.Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		vs.Add(domain.ViolationType,
			"Input should be a valid integer", "query", "limit")
		return def
	}
	if n < 0 {
		vs.Add(domain.ViolationGreaterEqual,
			"Input should be greater than or equal to 0", "query", "limit")
		return def
	}
	return n
}

func queryFloat(q url.Values, name string, vs *domain.Violations) *float64 {
	raw := q.Get(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		vs.Add(domain.ViolationType,
			"Input should be a valid number", "query", name)
		return nil
	}
	return &f
}
