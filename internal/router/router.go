package router

import (
	"net/http"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/handlers"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/middleware"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/services"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(service services.AnalysisService, logger *utils.Logger, maxFileSize int64) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	h := handlers.NewAnalysisHandler(service, logger, maxFileSize)

	r.HandleFunc("/", h.Root).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/analyze", h.Analyze).Methods(http.MethodPost, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/analyze", h.Analyze).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/analyses", h.ListAnalyses).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/analyses/{id}", h.GetAnalysis).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/analyses/{id}/report", h.GetReport).Methods(http.MethodGet, http.MethodOptions)

	return r
}
