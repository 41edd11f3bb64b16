package storage

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/niksmo/drago-decor/internal/core/port"
)

var _ port.DocumentStore = (*MemoryStore)(nil)

type memoryDoc struct {
	id   string
	body map[string]any
}

// MemoryStore keeps documents in process memory. Documents live until
// the process exits.
type MemoryStore struct {
	name string

	mu          sync.RWMutex
	collections map[string][]memoryDoc
}

func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{
		name:        name,
		collections: make(map[string][]memoryDoc),
	}
}

func (s *MemoryStore) Name() string {
	return s.name
}

func (s *MemoryStore) Insert(
	ctx context.Context, collection string, doc any,
) (string, error) {
	const op = "MemoryStore.Insert"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	body, err := normalize(doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, port.ErrStoreWrite, err)
	}
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(
		s.collections[collection], memoryDoc{id, body},
	)
	return id, nil
}

func (s *MemoryStore) Find(
	ctx context.Context, collection string, f domain.Filter, limit int,
) ([]domain.Document, error) {
	const op = "MemoryStore.Find"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range f {
		if err := checkField(p.Field); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0)
	for _, d := range s.collections[collection] {
		if limit > 0 && len(docs) == limit {
			break
		}
		if !matchAll(d.body, f) {
			continue
		}
		out := domain.Document(maps.Clone(d.body))
		out[domain.DocumentIDField] = d.id
		docs = append(docs, out)
	}
	return docs, nil
}

func (s *MemoryStore) Collections(
	ctx context.Context, limit int,
) ([]string, error) {
	const op = "MemoryStore.Collections"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	names := slices.Sorted(maps.Keys(s.collections))
	s.mu.RUnlock()

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func (s *MemoryStore) Close(context.Context) {
	slog.Info("memory store is closed", "op", "MemoryStore.Close")
}

func matchAll(body map[string]any, f domain.Filter) bool {
	for _, p := range f {
		if !matchPath(body, strings.Split(p.Field, "."), p) {
			return false
		}
	}
	return true
}

func matchPath(v any, path []string, p domain.Predicate) bool {
	if arr, ok := v.([]any); ok {
		for _, el := range arr {
			if matchPath(el, path, p) {
				return true
			}
		}
		return false
	}

	if len(path) == 0 {
		return matchValue(v, p)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	child, ok := obj[path[0]]
	if !ok {
		return false
	}
	return matchPath(child, path[1:], p)
}

func matchValue(v any, p domain.Predicate) bool {
	switch p.Op {
	case domain.OpEq:
		return reflect.DeepEqual(v, jsonScalar(p.Value))
	case domain.OpContainsFold:
		s, ok := v.(string)
		needle, _ := p.Value.(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(needle))
	case domain.OpGTE, domain.OpLTE:
		n, ok := v.(float64)
		bound, okBound := jsonScalar(p.Value).(float64)
		if !ok || !okBound {
			return false
		}
		if p.Op == domain.OpGTE {
			return n >= bound
		}
		return n <= bound
	}
	return false
}

// jsonScalar maps Go numeric and string kinds onto the JSON data model.
func jsonScalar(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	}
	return v
}
