package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/niksmo/drago-decor/internal/core/port"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported store scheme")
	ErrInvalidField      = errors.New("invalid field path")
)

// Open connects to the document store addressed by dsn.
//
// The scheme selects the implementation: mongodb and mongodb+srv for
// [MongoStore], postgres and postgresql for [SQLStore], memory for
// [MemoryStore]. dbName selects the Mongo database and names the memory
// store; PostgreSQL takes the database from the dsn.
func Open(ctx context.Context, dsn, dbName string) (port.DocumentStore, error) {
	const op = "storage.Open"

	if dsn == "" {
		return nil, fmt.Errorf("%s: %w", op, port.ErrStoreUnavailable)
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var s port.DocumentStore
	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		s, err = NewMongoStore(ctx, dsn, dbName)
	case "postgres", "postgresql":
		s, err = NewSQLStore(ctx, dsn)
	case "memory":
		s = NewMemoryStore(dbName)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

var fieldPathRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)*$`)

func checkField(field string) error {
	if !fieldPathRe.MatchString(field) {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}

// normalize converts v to its JSON data model representation so that
// every store returns the same value types.
func normalize(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
