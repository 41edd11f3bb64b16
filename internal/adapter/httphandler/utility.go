package httphandler

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/niksmo/drago-decor/internal/core/domain"
)

const (
	DefaultMaxUploadBytes = 10 << 20

	imageFormField     = "image"
	defaultContentType = "application/octet-stream"
)

// UtilityHandler serves the paint calculators and the visualizer.
type UtilityHandler struct {
	maxUploadBytes int64
}

func RegisterUtility(mux *http.ServeMux, maxUploadBytes int64) {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	h := UtilityHandler{maxUploadBytes}
	mux.HandleFunc("POST /api/coverage", h.PostCoverage)
	mux.HandleFunc("GET /api/visualizer/complementary", h.GetComplementary)
	mux.HandleFunc("POST /api/visualizer/apply", h.PostApply)
}

func (h UtilityHandler) PostCoverage(w http.ResponseWriter, r *http.Request) {
	const op = "UtilityHandler.PostCoverage"

	var req coverageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, op, err)
		return
	}

	if err := validateRequest(req); err != nil {
		writeError(w, op, err)
		return
	}

	litri := domain.Coverage(
		*req.MQ,
		int(orDefault(req.Mano, domain.DefaultCoats)),
		orDefault(req.ResaMQLitro, domain.DefaultYieldPerLiter),
	)
	if math.IsInf(litri, 0) || math.IsNaN(litri) {
		var vs domain.Violations
		vs.Add(domain.ViolationFinite, "Input should be a finite number", "body", "mq")
		writeError(w, op, vs.Err())
		return
	}
	writeJSON(w, http.StatusOK, coverageResponse{litri})
}

func (h UtilityHandler) GetComplementary(w http.ResponseWriter, r *http.Request) {
	const op = "UtilityHandler.GetComplementary"

	q := r.URL.Query()
	if !q.Has("color") {
		var vs domain.Violations
		vs.Missing("query", "color")
		writeError(w, op, vs.Err())
		return
	}

	palette, err := domain.Complementary(q.Get("color"))
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, palette)
}

// PostApply echoes the uploaded image back. The color and finish query
// parameters are accepted but not applied yet.
func (h UtilityHandler) PostApply(w http.ResponseWriter, r *http.Request) {
	const op = "UtilityHandler.PostApply"
	log := slog.With("op", op)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	data, contentType, err := readImagePart(r)
	if err != nil {
		writeError(w, op, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}
	log.Info("image echoed", "bytes", len(data), "contentType", contentType)
}

func readImagePart(r *http.Request) ([]byte, string, error) {
	missing := func() error {
		var vs domain.Violations
		vs.Missing("body", imageFormField)
		return vs.Err()
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", missing()
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", missing()
		}
		if err != nil {
			return nil, "", uploadErr(err, missing)
		}

		if part.FormName() != imageFormField {
			part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, "", uploadErr(err, missing)
		}

		contentType := part.Header.Get("Content-Type")
		if contentType == "" {
			contentType = defaultContentType
		}
		return data, contentType, nil
	}
}

// uploadErr keeps size limit errors and reports any other malformed
// upload as a missing image.
func uploadErr(err error, missing func() error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	return missing()
}
