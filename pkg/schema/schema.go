package schema

import (
	"context"

	"github.com/twmb/franz-go/pkg/sr"
)

// SchemaIdentifier returns the registry ID of the schema text under subject.
type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject string, schemaText string) (int, error)
}

type registryIdentifier struct {
	cl *sr.Client
}

// NewSchemaIdentifier registers schemas in the schema registry.
// Registering an already known schema returns its existing ID.
func NewSchemaIdentifier(cl *sr.Client) SchemaIdentifier {
	return registryIdentifier{cl}
}

func (r registryIdentifier) DetermineID(
	ctx context.Context, subject string, schemaText string,
) (int, error) {
	ss, err := r.cl.CreateSchema(ctx, subject, sr.Schema{
		Schema: schemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, err
	}
	return ss.ID, nil
}
