package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var ErrMissingOpt = errors.New("required option is not set")

// event is an Avro record published by the storefront.
type event interface {
	schemaText() string
}

// Encoder writes events of type T as Avro prefixed with the registry
// wire header of the schema ID.
type Encoder[T event] struct {
	srSerde *sr.Serde
}

// Encode fails for values that are not of type T.
func (e Encoder[T]) Encode(v any) ([]byte, error) {
	return e.srSerde.Encode(v)
}

type Opt func(*encoderOpts) error

type encoderOpts struct {
	subject string
	si      SchemaIdentifier
}

func SubjectOpt(subject string) Opt {
	return func(o *encoderOpts) error {
		if subject == "" {
			return errors.New("subject is empty string")
		}
		o.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(o *encoderOpts) error {
		if si == nil {
			return errors.New("schema identifier is nil")
		}
		o.si = si
		return nil
	}
}

// NewEncoder resolves the schema ID of T under the subject and returns
// an encoder for T. Both options are required.
func NewEncoder[T event](ctx context.Context, opts ...Opt) (Encoder[T], error) {
	var zero T
	op := fmt.Sprintf("NewEncoder[%T]", zero)

	var o encoderOpts
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return Encoder[T]{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if o.subject == "" || o.si == nil {
		return Encoder[T]{}, fmt.Errorf("%s: %w", op, ErrMissingOpt)
	}

	text := zero.schemaText()
	avroSchema, err := avro.Parse(text)
	if err != nil {
		return Encoder[T]{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := o.si.DetermineID(ctx, o.subject, text)
	if err != nil {
		return Encoder[T]{}, fmt.Errorf("%s: %w", op, err)
	}

	var srSerde sr.Serde
	srSerde.Register(id, zero, sr.EncodeFn(func(v any) ([]byte, error) {
		return avro.Marshal(avroSchema, v)
	}))
	return Encoder[T]{&srSerde}, nil
}
