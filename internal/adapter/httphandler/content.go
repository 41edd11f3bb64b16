package httphandler

import (
	"net/http"

	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/niksmo/drago-decor/internal/core/port"
)

const (
	blogDefaultLimit          = 20
	professionalsDefaultLimit = 50

	contactReceivedStatus = "received"
)

type ContentHandler struct {
	content port.Content
}

func RegisterContent(mux *http.ServeMux, content port.Content) {
	h := ContentHandler{content}
	mux.HandleFunc("GET /api/blog", h.GetBlogPosts)
	mux.HandleFunc("POST /api/blog", h.PostBlogPost)
	mux.HandleFunc("POST /api/contact", h.PostContact)
}

func (h ContentHandler) GetBlogPosts(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.GetBlogPosts"

	var vs domain.Violations
	limit := queryLimit(r.URL.Query(), blogDefaultLimit, &vs)
	if err := vs.Err(); err != nil {
		writeError(w, op, err)
		return
	}

	docs, err := h.content.ListBlogPosts(r.Context(), limit)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeDocuments(w, docs)
}

func (h ContentHandler) PostBlogPost(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.PostBlogPost"

	var req blogPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, op, err)
		return
	}
	p, err := req.toDomain()
	if err != nil {
		writeError(w, op, err)
		return
	}

	id, err := h.content.CreateBlogPost(r.Context(), p)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{id})
}

func (h ContentHandler) PostContact(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.PostContact"

	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, op, err)
		return
	}
	m, err := req.toDomain()
	if err != nil {
		writeError(w, op, err)
		return
	}

	id, err := h.content.ReceiveContactMessage(r.Context(), m)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{ID: id, Status: contactReceivedStatus})
}

type ProfessionalsHandler struct {
	professionals port.Professionals
}

func RegisterProfessionals(mux *http.ServeMux, professionals port.Professionals) {
	h := ProfessionalsHandler{professionals}
	mux.HandleFunc("GET /api/professionals", h.GetProfessionals)
	mux.HandleFunc("POST /api/professionals", h.PostProfessional)
}

func (h ProfessionalsHandler) GetProfessionals(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProfessionalsHandler.GetProfessionals"

	var vs domain.Violations
	limit := queryLimit(r.URL.Query(), professionalsDefaultLimit, &vs)
	if err := vs.Err(); err != nil {
		writeError(w, op, err)
		return
	}

	docs, err := h.professionals.ListProfessionals(r.Context(), limit)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeDocuments(w, docs)
}

func (h ProfessionalsHandler) PostProfessional(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProfessionalsHandler.PostProfessional"

	var req professionalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, op, err)
		return
	}
	p, err := req.toDomain()
	if err != nil {
		writeError(w, op, err)
		return
	}

	id, err := h.professionals.CreateProfessional(r.Context(), p)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{id})
}
