package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/niksmo/drago-decor/internal/core/port"
)

const productsDefaultLimit = 50

type CatalogHandler struct {
	catalog port.Catalog
}

func RegisterCatalog(mux *http.ServeMux, catalog port.Catalog) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /api/categories", h.GetCategories)
	mux.HandleFunc("POST /api/categories", h.PostCategory)
	mux.HandleFunc("GET /api/products", h.GetProducts)
	mux.HandleFunc("POST /api/products", h.PostProduct)
	mux.HandleFunc("GET /api/reviews/{product_id}", h.GetReviews)
	mux.HandleFunc("POST /api/reviews", h.PostReview)
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"

	docs, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeDocuments(w, docs)
}

func (h CatalogHandler) PostCategory(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostCategory"

	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, op, err)
		return
	}
	c, err := req.toDomain()
	if err != nil {
		writeError(w, op, err)
		return
	}

	id, err := h.catalog.CreateCategory(r.Context(), c)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{id})
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"

	q := r.URL.Query()
	var vs domain.Violations
	query := domain.ProductQuery{
		Category: q.Get("category"),
		Usage:    q.Get("usage"),
		Text:     q.Get("q"),
		Color:    q.Get("color"),
		Finish:   q.Get("finish"),
		MinPrice: queryFloat(q, "min_price", &vs),
		MaxPrice: queryFloat(q, "max_price", &vs),
		Limit:    queryLimit(q, productsDefaultLimit, &vs),
	}
	if err := vs.Err(); err != nil {
		writeError(w, op, err)
		return
	}

	docs, err := h.catalog.ListProducts(r.Context(), query)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeDocuments(w, docs)
}

func (h CatalogHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostProduct"

	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, op, err)
		return
	}
	p, err := req.toDomain()
	if err != nil {
		writeError(w, op, err)
		return
	}

	id, err := h.catalog.CreateProduct(r.Context(), p)
	if err != nil {
		writeError(w, op, err)
		return
	}
	slog.Info("product created", "op", op, "id", id, "nVariants", len(p.Variants))
	writeJSON(w, http.StatusOK, idResponse{id})
}

func (h CatalogHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetReviews"

	docs, err := h.catalog.ListReviews(r.Context(), r.PathValue("product_id"))
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeDocuments(w, docs)
}

func (h CatalogHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostReview"

	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, op, err)
		return
	}
	rv, err := req.toDomain()
	if err != nil {
		writeError(w, op, err)
		return
	}

	id, err := h.catalog.CreateReview(r.Context(), rv)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{id})
}
