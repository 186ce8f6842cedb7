package http

import (
	"context"
	"net/http"
	"time"

	"carrotrent-backend/internal/config"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/metrics"

	"github.com/gorilla/mux"
)

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterOptions struct {
	Auth    *AuthMiddleware
	Limiter *RateLimiter // optional
	DB      Pinger
	// MetricsPath exposes Prometheus metrics when non-empty.
	MetricsPath string
}

// Handlers bundles the REST handlers mounted under /api/v1.
type Handlers struct {
	Rentals     *RentalHandler
	Accounts    *AccountHandler
	Vehicles    *VehicleHandler
	Departments *DepartmentHandler
}

// NewRouter wires the REST API, health and metrics endpoints.
func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	router := mux.NewRouter()
	router.Use(metrics.InstrumentHandler)
	router.Use(opts.Auth.Handler)
	if opts.Limiter != nil {
		router.Use(opts.Limiter.Handler)
	}

	RegisterRoutes(router, h)

	router.HandleFunc("/healthz", healthHandler(opts.DB)).Methods(http.MethodGet).Name(config.RouteHealth)
	if opts.MetricsPath != "" {
		router.Handle(opts.MetricsPath, metrics.Handler()).Methods(http.MethodGet).Name(config.RouteMetrics)
	}
	return router
}

func RegisterRoutes(router *mux.Router, h Handlers) {
	api := router.PathPrefix("/api/v1").Subrouter()
	accounts, rentals, vehicles, departments := h.Accounts, h.Rentals, h.Vehicles, h.Departments

	api.HandleFunc("/account/register", accounts.Register).Methods(http.MethodPost).Name(config.RouteAccountRegister)
	api.HandleFunc("/account/login", accounts.Login).Methods(http.MethodPost).Name(config.RouteAccountLogin)
	api.HandleFunc("/account/verify/{id}", accounts.VerifyUser).Methods(http.MethodPost).Name(config.RouteAccountVerify)
	api.HandleFunc("/account/unverified", accounts.ListUnverifiedUsers).Methods(http.MethodGet).Name(config.RouteAccountUnverified)
	api.HandleFunc("/account/register/{departmentId}/employee", accounts.RegisterEmployee).Methods(http.MethodPost).Name(config.RouteAccountEmployee)

	// filters must be registered before {id}
	api.HandleFunc("/vehicle/filters", vehicles.GetFilterOptions).Methods(http.MethodGet).Name(config.RouteVehicleFilters)
	api.HandleFunc("/vehicle", vehicles.ListVehicles).Methods(http.MethodGet).Name(config.RouteVehicleList)
	api.HandleFunc("/vehicle", vehicles.CreateVehicle).Methods(http.MethodPost).Name(config.RouteVehicleCreate)
	api.HandleFunc("/vehicle/{id}", vehicles.GetVehicle).Methods(http.MethodGet).Name(config.RouteVehicleGet)
	api.HandleFunc("/vehicle/{id}", vehicles.UpdateVehicle).Methods(http.MethodPut).Name(config.RouteVehicleUpdate)
	api.HandleFunc("/vehicle/{id}", vehicles.DeleteVehicle).Methods(http.MethodDelete).Name(config.RouteVehicleDelete)

	api.HandleFunc("/rent", rentals.CreateRental).Methods(http.MethodPost).Name(config.RouteRentCreate)
	api.HandleFunc("/rent/my", rentals.ListMyRentals).Methods(http.MethodGet).Name(config.RouteRentListMine)
	api.HandleFunc("/rent/my/archived", rentals.ListMyArchivedRentals).Methods(http.MethodGet).Name(config.RouteRentListMyArchived)
	api.HandleFunc("/rent/{id}", rentals.GetRental).Methods(http.MethodGet).Name(config.RouteRentGet)
	api.HandleFunc("/rent/{id}/cancel", rentals.CancelRental).Methods(http.MethodPost).Name(config.RouteRentCancel)
	api.HandleFunc("/rent/{id}/issue", rentals.IssueRental).Methods(http.MethodPost).Name(config.RouteRentIssue)
	api.HandleFunc("/rent/{id}/receive", rentals.ReceiveRental).Methods(http.MethodPost).Name(config.RouteRentReceive)

	api.HandleFunc("/department", departments.ListDepartments).Methods(http.MethodGet).Name(config.RouteDepartmentList)
	api.HandleFunc("/department/{id}", departments.GetDepartment).Methods(http.MethodGet).Name(config.RouteDepartmentGet)
	api.HandleFunc("/department/{id}/rents", rentals.ListDepartmentRentals).Methods(http.MethodGet).Name(config.RouteDepartmentRents)
	api.HandleFunc("/department/{id}/rents/archived", rentals.ListDepartmentArchivedRentals).Methods(http.MethodGet).Name(config.RouteDepartmentArchived)
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				logger.Fault("HealthCheck", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
