package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMigrateURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://decor:secret@db:5432/decor?sslmode=disable",
			"pgx5://decor:secret@db:5432/decor?sslmode=disable"},
		{"postgresql://db/decor", "pgx5://db/decor"},
		{"decor:secret@db:5432/decor", "pgx5://decor:secret@db:5432/decor"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := toMigrateURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Mongo", func(t *testing.T) {
		_, err := toMigrateURL("mongodb://localhost:27017")
		assert.Error(t, err)
	})
}
