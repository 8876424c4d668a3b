package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerDashboardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Page)
	mux.HandleFunc("GET /v1/dashboard", handler.GetDashboard)
	mux.HandleFunc("GET /v1/dashboard/charts", handler.GetCharts)
	mux.HandleFunc("GET /v1/dashboard/teams/{team}", handler.GetTeam)
	mux.HandleFunc("POST /v1/dashboard/refresh", handler.RefreshDashboard)
}
