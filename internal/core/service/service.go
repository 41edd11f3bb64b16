package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/niksmo/drago-decor/internal/core/port"
)

var _ port.Catalog = (*Service)(nil)
var _ port.OrderPlacer = (*Service)(nil)
var _ port.Content = (*Service)(nil)
var _ port.Professionals = (*Service)(nil)
var _ port.Diagnostician = (*Service)(nil)

const (
	categoriesLimit  = 50
	reviewsLimit     = 100
	collectionsLimit = 10

	defaultEventTimeout = 2 * time.Second
)

// Service implements the storefront use cases on top of a document store.
//
// A nil store means no store is configured: writes and reads fail with
// [port.ErrStoreUnavailable]. A nil events producer disables events.
type Service struct {
	store        port.DocumentStore
	events       port.EventsProducer
	eventTimeout time.Duration
}

func New(store port.DocumentStore, events port.EventsProducer) Service {
	return Service{store, events, defaultEventTimeout}
}

// publish runs produce detached from the request context and bounded by
// the event timeout. The document is already stored when it runs.
func (s Service) publish(
	ctx context.Context, produce func(context.Context) error,
) error {
	ctx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), s.eventTimeout,
	)
	defer cancel()
	return produce(ctx)
}

func (s Service) insert(
	ctx context.Context, op, collection string, doc any,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if s.store == nil {
		return "", fmt.Errorf("%s: %w", op, port.ErrStoreUnavailable)
	}
	id, err := s.store.Insert(ctx, collection, doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

func (s Service) find(
	ctx context.Context, op, collection string, f domain.Filter, limit int,
) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.store == nil {
		return nil, fmt.Errorf("%s: %w", op, port.ErrStoreUnavailable)
	}
	docs, err := s.store.Find(ctx, collection, f, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return docs, nil
}

func (s Service) CreateCategory(
	ctx context.Context, c domain.Category,
) (string, error) {
	const op = "Service.CreateCategory"
	return s.insert(ctx, op, domain.CategoryCollection, c)
}

func (s Service) ListCategories(ctx context.Context) ([]domain.Document, error) {
	const op = "Service.ListCategories"
	return s.find(ctx, op, domain.CategoryCollection, nil, categoriesLimit)
}

func (s Service) CreateProduct(
	ctx context.Context, p domain.Product,
) (string, error) {
	const op = "Service.CreateProduct"
	return s.insert(ctx, op, domain.ProductCollection, p)
}

func (s Service) ListProducts(
	ctx context.Context, q domain.ProductQuery,
) ([]domain.Document, error) {
	const op = "Service.ListProducts"
	return s.find(ctx, op, domain.ProductCollection, q.Filter(), q.Limit)
}

func (s Service) CreateReview(
	ctx context.Context, r domain.Review,
) (string, error) {
	const op = "Service.CreateReview"
	return s.insert(ctx, op, domain.ReviewCollection, r)
}

func (s Service) ListReviews(
	ctx context.Context, productID string,
) ([]domain.Document, error) {
	const op = "Service.ListReviews"
	f := domain.Filter{domain.Eq("product_id", productID)}
	return s.find(ctx, op, domain.ReviewCollection, f, reviewsLimit)
}

// PlaceOrder stores the order and announces it. The announcement is best
// effort: the stored order is the source of truth.
func (s Service) PlaceOrder(
	ctx context.Context, o domain.Order,
) (string, error) {
	const op = "Service.PlaceOrder"

	id, err := s.insert(ctx, op, domain.OrderCollection, o)
	if err != nil {
		return "", err
	}

	if s.events != nil {
		err := s.publish(ctx, func(ctx context.Context) error {
			return s.events.ProduceOrderPlaced(ctx, id, o)
		})
		if err != nil {
			slog.Error("failed to produce order event",
				"op", op, "orderID", id, "err", err)
		}
	}
	return id, nil
}

func (s Service) CreateBlogPost(
	ctx context.Context, p domain.BlogPost,
) (string, error) {
	const op = "Service.CreateBlogPost"
	return s.insert(ctx, op, domain.BlogPostCollection, p)
}

func (s Service) ListBlogPosts(
	ctx context.Context, limit int,
) ([]domain.Document, error) {
	const op = "Service.ListBlogPosts"
	return s.find(ctx, op, domain.BlogPostCollection, nil, limit)
}

func (s Service) ReceiveContactMessage(
	ctx context.Context, m domain.ContactMessage,
) (string, error) {
	const op = "Service.ReceiveContactMessage"

	id, err := s.insert(ctx, op, domain.ContactMessageCollection, m)
	if err != nil {
		return "", err
	}

	if s.events != nil {
		err := s.publish(ctx, func(ctx context.Context) error {
			return s.events.ProduceContactReceived(ctx, id, m)
		})
		if err != nil {
			slog.Error("failed to produce contact event",
				"op", op, "messageID", id, "err", err)
		}
	}
	return id, nil
}

func (s Service) CreateProfessional(
	ctx context.Context, p domain.Professional,
) (string, error) {
	const op = "Service.CreateProfessional"
	return s.insert(ctx, op, domain.ProfessionalCollection, p)
}

func (s Service) ListProfessionals(
	ctx context.Context, limit int,
) ([]domain.Document, error) {
	const op = "Service.ListProfessionals"
	return s.find(ctx, op, domain.ProfessionalCollection, nil, limit)
}

// Diagnose never fails: listing errors are reported in the status.
func (s Service) Diagnose(ctx context.Context) domain.StoreStatus {
	if s.store == nil {
		return domain.StoreStatus{}
	}

	status := domain.StoreStatus{Configured: true, Name: s.store.Name()}
	cs, err := s.store.Collections(ctx, collectionsLimit)
	if err != nil {
		status.Err = err
		return status
	}
	status.Collections = cs
	return status
}
