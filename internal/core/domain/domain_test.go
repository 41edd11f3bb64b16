package domain_test

import (
	"testing"

	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func violationsOf(t *testing.T, err error) []domain.Violation {
	t.Helper()
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	return vErr.Violations
}

func TestCoverage(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		assert.Equal(t, 4.0, domain.Coverage(20, 2, 10))
	})

	t.Run("YieldBelowFloor", func(t *testing.T) {
		assert.Equal(t, 100.0, domain.Coverage(10, 1, 0.05))
	})

	t.Run("ZeroYield", func(t *testing.T) {
		assert.Equal(t, 200.0, domain.Coverage(10, 2, 0))
	})

	t.Run("Rounding", func(t *testing.T) {
		assert.Equal(t, 3.33, domain.Coverage(10, 1, 3))
	})

	t.Run("HalfToEven", func(t *testing.T) {
		assert.Equal(t, 0.12, domain.Coverage(0.125, 1, 1))
		assert.Equal(t, 0.38, domain.Coverage(0.375, 1, 1))
		assert.Equal(t, 2.67, domain.Coverage(2.675, 1, 1))
	})
}

func TestComplementary(t *testing.T) {
	t.Run("Black", func(t *testing.T) {
		p, err := domain.Complementary("#000000")
		require.NoError(t, err)
		assert.Equal(t, "#FFFFFF", p.Complementary)
		assert.Equal(t, []string{"#FFFFFF", "#FFFFFF", "#FFFFFF"}, p.Suggestions)
	})

	t.Run("Triad", func(t *testing.T) {
		p, err := domain.Complementary("#336699")
		require.NoError(t, err)
		assert.Equal(t, "#CC9966", p.Complementary)
		assert.Equal(t, []string{"#CC9966", "#CC6699", "#99CC66"}, p.Suggestions)
	})

	t.Run("LowercaseInput", func(t *testing.T) {
		p, err := domain.Complementary("#aabbcc")
		require.NoError(t, err)
		assert.Equal(t, "#554433", p.Complementary)
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		for _, in := range []string{"336699", "#3366", "", "#3366999", "#GGHHII", "#+12345"} {
			_, err := domain.Complementary(in)
			assert.ErrorIs(t, err, domain.ErrInvalidColorFormat, in)
		}
	})
}

func TestViolations(t *testing.T) {
	var vs domain.Violations
	assert.NoError(t, vs.Err())

	vs.Missing("body", "name")
	vs.Add(domain.ViolationGreaterEqual,
		"Input should be greater than or equal to 0", "body", "variants", 0, "stock")

	got := violationsOf(t, vs.Err())
	assert.Equal(t, []domain.Violation{
		{Loc: []any{"body", "name"}, Msg: "Field required", Type: domain.ViolationMissing},
		{
			Loc:  []any{"body", "variants", 0, "stock"},
			Msg:  "Input should be greater than or equal to 0",
			Type: domain.ViolationGreaterEqual,
		},
	}, got)
	assert.EqualError(t, vs.Err(), "validation failed: body.name: Field required; "+
		"body.variants.0.stock: Input should be greater than or equal to 0")
}

func TestProductQueryFilter(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, domain.ProductQuery{Limit: 50}.Filter())
	})

	t.Run("All", func(t *testing.T) {
		q := domain.ProductQuery{
			Category: "pitture",
			Usage:    "interno",
			Text:     "vel",
			Color:    "#FFFFFF",
			Finish:   "opaco",
			MinPrice: ptr(10.0),
			MaxPrice: ptr(20.0),
		}
		assert.Equal(t, domain.Filter{
			domain.Eq("category", "pitture"),
			domain.Eq("usage", "interno"),
			domain.ContainsFold("title", "vel"),
			domain.Eq("variants.hex", "#FFFFFF"),
			domain.Eq("variants.finish", "opaco"),
			domain.GTE("base_price", 10),
			domain.LTE("base_price", 20),
		}, q.Filter())
	})

	t.Run("OnlyUpperBound", func(t *testing.T) {
		q := domain.ProductQuery{MaxPrice: ptr(0.0)}
		assert.Equal(t, domain.Filter{domain.LTE("base_price", 0)}, q.Filter())
	})
}
