package httphandler

import (
	"net/http"
	"os"

	"github.com/niksmo/drago-decor/internal/core/port"
)

const (
	brandName = "Drago Decor"

	backendRunning      = "✅ Running"
	databaseWorking     = "✅ Connected & Working"
	databaseErrorPrefix = "⚠️  Connected but Error: "
	databaseNotInit     = "⚠️  Available but not initialized"
	statusConnected     = "Connected"
	statusNotConnected  = "Not Connected"
	envSet              = "✅ Set"
	envNotSet           = "❌ Not Set"

	maxDiagnosticErrLen = 50
)

// LookupEnv reports whether an environment variable is present.
type LookupEnv func(key string) (string, bool)

type DiagnosticsHandler struct {
	diag      port.Diagnostician
	lookupEnv LookupEnv
}

// RegisterDiagnostics serves the root greeting and the store
// diagnostics. A nil lookupEnv reads the process environment.
func RegisterDiagnostics(
	mux *http.ServeMux, diag port.Diagnostician, lookupEnv LookupEnv,
) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	h := DiagnosticsHandler{diag, lookupEnv}
	mux.HandleFunc("GET /{$}", h.GetRoot)
	mux.HandleFunc("GET /test", h.GetTest)
}

func (h DiagnosticsHandler) GetRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{Brand: brandName, Status: "ok"})
}

func (h DiagnosticsHandler) GetTest(w http.ResponseWriter, r *http.Request) {
	resp := diagnosticsResponse{
		Backend:          backendRunning,
		Database:         databaseNotInit,
		ConnectionStatus: statusNotConnected,
		Collections:      []string{},
		DatabaseURL:      h.presence("DATABASE_URL"),
		DatabaseName:     h.presence("DATABASE_NAME"),
	}

	status := h.diag.Diagnose(r.Context())
	if status.Configured {
		resp.ConnectionStatus = statusConnected
		if status.Err != nil {
			resp.Database = databaseErrorPrefix + truncate(status.Err.Error())
		} else {
			resp.Database = databaseWorking
			if status.Collections != nil {
				resp.Collections = status.Collections
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h DiagnosticsHandler) presence(key string) string {
	if v, ok := h.lookupEnv(key); ok && v != "" {
		return envSet
	}
	return envNotSet
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDiagnosticErrLen {
		return s
	}
	return string(runes[:maxDiagnosticErrLen])
}
