package domain

// Op is the kind of a field-level predicate.
type Op int

const (
	OpEq Op = iota
	OpContainsFold
	OpGTE
	OpLTE
)

func (op Op) String() string {
	switch op {
	case OpEq:
		return "eq"
	case OpContainsFold:
		return "contains_fold"
	case OpGTE:
		return "gte"
	case OpLTE:
		return "lte"
	}
	return "unknown"
}

// A Predicate is one condition on a document field.
//
// Field is a dotted path. When a path segment names an array, the
// predicate holds if any element satisfies the rest of the path.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Filter is a conjunction of predicates. An empty Filter matches all.
type Filter []Predicate

func Eq(field string, v any) Predicate {
	return Predicate{Field: field, Op: OpEq, Value: v}
}

func ContainsFold(field string, s string) Predicate {
	return Predicate{Field: field, Op: OpContainsFold, Value: s}
}

func GTE(field string, v float64) Predicate {
	return Predicate{Field: field, Op: OpGTE, Value: v}
}

func LTE(field string, v float64) Predicate {
	return Predicate{Field: field, Op: OpLTE, Value: v}
}

// Document is a stored record: the entity fields plus "id".
type Document map[string]any

const DocumentIDField = "id"

func (d Document) ID() string {
	id, _ := d[DocumentIDField].(string)
	return id
}

// StoreStatus is a snapshot of the document store connectivity.
type StoreStatus struct {
	Configured  bool
	Name        string
	Collections []string
	Err         error
}
