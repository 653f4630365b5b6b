package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

const apiPrefix = "/api/v1"

func SetupRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix(apiPrefix).Subrouter()

	api.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/wallet-config", handler.GetWalletConfig).Methods(http.MethodGet)
	api.HandleFunc("/chains", handler.ListChains).Methods(http.MethodGet)
	api.HandleFunc("/chains/{chainID}", handler.GetChain).Methods(http.MethodGet)
	api.HandleFunc("/chains/{chainID}/status", handler.GetChainStatus).Methods(http.MethodGet)
	api.HandleFunc("/jobs", handler.ListJobs).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{name}", handler.GetJobStatus).Methods(http.MethodGet)
	api.HandleFunc("/scheduler/start", handler.StartScheduler).Methods(http.MethodPost)
	api.HandleFunc("/scheduler/stop", handler.StopScheduler).Methods(http.MethodPost)
}

func NewRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware(handler.logger))
	router.Use(corsMiddleware)
	SetupRoutes(router, handler)
	return router
}
