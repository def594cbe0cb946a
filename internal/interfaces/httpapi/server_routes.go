package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Index)
	mux.HandleFunc("POST /search", handler.Submit)
	mux.HandleFunc("GET /panel", handler.Panel)
}

func registerAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/panel", handler.GetPanel)
	// Synchronous search; the result is also written to the shared panel.
	mux.HandleFunc("GET /v1/players/{lastName}/{firstName}/card", handler.GetPlayerCard)
}
