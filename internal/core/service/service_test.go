package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/niksmo/drago-decor/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (s *MockStore) Insert(
	ctx context.Context, collection string, doc any,
) (string, error) {
	args := s.Called(ctx, collection, doc)
	return args.String(0), args.Error(1)
}

func (s *MockStore) Find(
	ctx context.Context, collection string, f domain.Filter, limit int,
) ([]domain.Document, error) {
	args := s.Called(ctx, collection, f, limit)
	docs, _ := args.Get(0).([]domain.Document)
	return docs, args.Error(1)
}

func (s *MockStore) Collections(ctx context.Context, limit int) ([]string, error) {
	args := s.Called(ctx, limit)
	cs, _ := args.Get(0).([]string)
	return cs, args.Error(1)
}

func (s *MockStore) Name() string { return "decor" }

func (s *MockStore) Close(context.Context) {}

type MockEventsProducer struct {
	mock.Mock
}

func (p *MockEventsProducer) ProduceOrderPlaced(
	ctx context.Context, id string, o domain.Order,
) error {
	return p.Called(ctx, id, o).Error(0)
}

func (p *MockEventsProducer) ProduceContactReceived(
	ctx context.Context, id string, m domain.ContactMessage,
) error {
	return p.Called(ctx, id, m).Error(0)
}

func (p *MockEventsProducer) Close() {}

func TestNoStore(t *testing.T) {
	s := New(nil, nil)
	ctx := t.Context()

	_, err := s.CreateCategory(ctx, domain.Category{Name: "Pitture", Slug: "pitture"})
	assert.ErrorIs(t, err, port.ErrStoreUnavailable)

	_, err = s.ListProducts(ctx, domain.ProductQuery{})
	assert.ErrorIs(t, err, port.ErrStoreUnavailable)

	_, err = s.PlaceOrder(ctx, domain.Order{})
	assert.ErrorIs(t, err, port.ErrStoreUnavailable)

	assert.Equal(t, domain.StoreStatus{}, s.Diagnose(ctx))
}

func TestCanceledContext(t *testing.T) {
	store := new(MockStore)
	s := New(store, nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := s.CreateReview(ctx, domain.Review{ProductID: "p1", Rating: 4})
	assert.ErrorIs(t, err, context.Canceled)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestListCaps(t *testing.T) {
	store := new(MockStore)
	s := New(store, nil)
	ctx := t.Context()

	store.On("Find", ctx, domain.CategoryCollection, domain.Filter(nil), 50).
		Return([]domain.Document{}, nil)
	store.On("Find", ctx, domain.ReviewCollection,
		domain.Filter{domain.Eq("product_id", "p1")}, 100).
		Return([]domain.Document{{"id": "r1"}}, nil)
	store.On("Find", ctx, domain.BlogPostCollection, domain.Filter(nil), 20).
		Return([]domain.Document{}, nil)

	_, err := s.ListCategories(ctx)
	require.NoError(t, err)

	docs, err := s.ListReviews(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "r1", docs[0].ID())

	_, err = s.ListBlogPosts(ctx, 20)
	require.NoError(t, err)

	store.AssertExpectations(t)
}

func TestPlaceOrder(t *testing.T) {
	order := domain.Order{
		UserEmail: "ada@example.com",
		Items:     []domain.CartItem{{ProductID: "p1", Quantity: 1, UnitPrice: 10}},
		Total:     10,
		Status:    domain.OrderPending,
	}

	t.Run("PublishesEvent", func(t *testing.T) {
		store := new(MockStore)
		events := new(MockEventsProducer)
		ctx := t.Context()
		store.On("Insert", ctx, domain.OrderCollection, order).Return("o1", nil)
		events.On("ProduceOrderPlaced", mock.Anything, "o1", order).Return(nil)

		id, err := New(store, events).PlaceOrder(ctx, order)
		require.NoError(t, err)
		assert.Equal(t, "o1", id)
		store.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("EventFailureIgnored", func(t *testing.T) {
		store := new(MockStore)
		events := new(MockEventsProducer)
		ctx := t.Context()
		store.On("Insert", ctx, domain.OrderCollection, order).Return("o1", nil)
		events.On("ProduceOrderPlaced", mock.Anything, "o1", order).
			Return(errors.New("broker down"))

		id, err := New(store, events).PlaceOrder(ctx, order)
		require.NoError(t, err)
		assert.Equal(t, "o1", id)
		events.AssertExpectations(t)
	})

	t.Run("StoreFailureSkipsEvent", func(t *testing.T) {
		store := new(MockStore)
		events := new(MockEventsProducer)
		ctx := t.Context()
		store.On("Insert", ctx, domain.OrderCollection, order).
			Return("", port.ErrStoreWrite)

		_, err := New(store, events).PlaceOrder(ctx, order)
		assert.ErrorIs(t, err, port.ErrStoreWrite)
		events.AssertNotCalled(t, "ProduceOrderPlaced",
			mock.Anything, mock.Anything, mock.Anything)
	})
}

// blockingProducer waits for its context like a producer facing a
// broker that never answers.
type blockingProducer struct {
	deadlines chan bool
}

func (p blockingProducer) wait(ctx context.Context) error {
	_, ok := ctx.Deadline()
	p.deadlines <- ok
	<-ctx.Done()
	return ctx.Err()
}

func (p blockingProducer) ProduceOrderPlaced(
	ctx context.Context, _ string, _ domain.Order,
) error {
	return p.wait(ctx)
}

func (p blockingProducer) ProduceContactReceived(
	ctx context.Context, _ string, _ domain.ContactMessage,
) error {
	return p.wait(ctx)
}

func (p blockingProducer) Close() {}

func TestHangingBroker(t *testing.T) {
	newService := func(store port.DocumentStore) (Service, blockingProducer) {
		events := blockingProducer{deadlines: make(chan bool, 1)}
		s := New(store, events)
		s.eventTimeout = 50 * time.Millisecond
		return s, events
	}

	t.Run("OrderStoredWithinTimeout", func(t *testing.T) {
		store := new(MockStore)
		store.On("Insert", mock.Anything, domain.OrderCollection, mock.Anything).
			Return("o1", nil)
		s, events := newService(store)

		start := time.Now()
		id, err := s.PlaceOrder(t.Context(), domain.Order{Status: domain.OrderPending})
		require.NoError(t, err)
		assert.Equal(t, "o1", id)
		assert.Less(t, time.Since(start), time.Second)
		assert.True(t, <-events.deadlines)
		store.AssertExpectations(t)
	})

	t.Run("RequestCanceledAfterInsert", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		store := new(MockStore)
		store.On("Insert", mock.Anything, domain.ContactMessageCollection, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return("m1", nil)
		s, events := newService(store)

		id, err := s.ReceiveContactMessage(ctx, domain.ContactMessage{Name: "Ada"})
		require.NoError(t, err)
		assert.Equal(t, "m1", id)
		assert.True(t, <-events.deadlines)
	})
}

func TestReceiveContactMessage(t *testing.T) {
	msg := domain.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Ciao"}
	store := new(MockStore)
	events := new(MockEventsProducer)
	ctx := t.Context()
	store.On("Insert", ctx, domain.ContactMessageCollection, msg).Return("m1", nil)
	events.On("ProduceContactReceived", mock.Anything, "m1", msg).Return(nil)

	id, err := New(store, events).ReceiveContactMessage(ctx, msg)
	require.NoError(t, err)
	assert.Equal(t, "m1", id)
	events.AssertExpectations(t)
}

func TestDiagnose(t *testing.T) {
	t.Run("Collections", func(t *testing.T) {
		store := new(MockStore)
		ctx := t.Context()
		store.On("Collections", ctx, 10).Return([]string{"order", "product"}, nil)

		got := New(store, nil).Diagnose(ctx)
		assert.Equal(t, domain.StoreStatus{
			Configured:  true,
			Name:        "decor",
			Collections: []string{"order", "product"},
		}, got)
	})

	t.Run("ListingError", func(t *testing.T) {
		store := new(MockStore)
		ctx := t.Context()
		listErr := errors.New("auth failed")
		store.On("Collections", ctx, 10).Return(nil, listErr)

		got := New(store, nil).Diagnose(ctx)
		assert.True(t, got.Configured)
		assert.ErrorIs(t, got.Err, listErr)
		assert.Nil(t, got.Collections)
	})
}
