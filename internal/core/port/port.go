package port

import (
	"context"
	"errors"

	"github.com/niksmo/drago-decor/internal/core/domain"
)

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrStoreWrite       = errors.New("store write failed")
)

type closer interface {
	Close(context.Context)
}

// DocumentStore is a collection-oriented document database.
//
// Find returns an empty slice, not an error, when nothing matches.
// A limit less than or equal to zero means no limit.
type DocumentStore interface {
	Insert(ctx context.Context, collection string, doc any) (string, error)
	Find(
		ctx context.Context, collection string, f domain.Filter, limit int,
	) ([]domain.Document, error)
	Collections(ctx context.Context, limit int) ([]string, error)
	Name() string
	closer
}

type EventsProducer interface {
	ProduceOrderPlaced(ctx context.Context, id string, o domain.Order) error
	ProduceContactReceived(
		ctx context.Context, id string, m domain.ContactMessage,
	) error
	Close()
}

type Catalog interface {
	CreateCategory(context.Context, domain.Category) (string, error)
	ListCategories(context.Context) ([]domain.Document, error)
	CreateProduct(context.Context, domain.Product) (string, error)
	ListProducts(context.Context, domain.ProductQuery) ([]domain.Document, error)
	CreateReview(context.Context, domain.Review) (string, error)
	ListReviews(ctx context.Context, productID string) ([]domain.Document, error)
}

type OrderPlacer interface {
	PlaceOrder(context.Context, domain.Order) (string, error)
}

type Content interface {
	CreateBlogPost(context.Context, domain.BlogPost) (string, error)
	ListBlogPosts(ctx context.Context, limit int) ([]domain.Document, error)
	ReceiveContactMessage(context.Context, domain.ContactMessage) (string, error)
}

type Professionals interface {
	CreateProfessional(context.Context, domain.Professional) (string, error)
	ListProfessionals(ctx context.Context, limit int) ([]domain.Document, error)
}

type Diagnostician interface {
	Diagnose(context.Context) domain.StoreStatus
}
