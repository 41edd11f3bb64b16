package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/drago-decor/internal/core/port"
)

type OrdersHandler struct {
	placer port.OrderPlacer
}

func RegisterOrders(mux *http.ServeMux, placer port.OrderPlacer) {
	h := OrdersHandler{placer}
	mux.HandleFunc("POST /api/orders", h.PostOrder)
}

func (h OrdersHandler) PostOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PostOrder"
	log := slog.With("op", op)

	var req orderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, op, err)
		return
	}
	o, err := req.toDomain()
	if err != nil {
		writeError(w, op, err)
		return
	}

	id, err := h.placer.PlaceOrder(r.Context(), o)
	if err != nil {
		writeError(w, op, err)
		return
	}
	log.Info("order placed", "id", id, "nItems", len(o.Items))
	writeJSON(w, http.StatusOK, idResponse{id})
}
