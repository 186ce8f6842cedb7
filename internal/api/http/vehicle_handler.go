package http

import (
	"net/http"

	"carrotrent-backend/internal/service"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if _, err := h.vehicleSvc.CreateVehicle(r.Context(), ActorFromContext(r.Context()), req.toInput()); err != nil {
		respondError(w, r, "CreateVehicle", err, modeCommand)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateVehicleRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.vehicleSvc.UpdateVehicle(r.Context(), ActorFromContext(r.Context()), id, req.toInput()); err != nil {
		respondError(w, r, "UpdateVehicle", err, modeCommand)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.vehicleSvc.DeleteVehicle(r.Context(), ActorFromContext(r.Context()), id); err != nil {
		respondError(w, r, "DeleteVehicle", err, modeCommand)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.vehicleSvc.GetVehicle(r.Context(), id)
	if err != nil {
		respondError(w, r, "GetVehicle", err, modeQuery)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	filter, ok := decodeVehicleFilter(w, r)
	if !ok {
		return
	}

	vehicles, err := h.vehicleSvc.ListVehicles(r.Context(), filter)
	if err != nil {
		respondError(w, r, "ListVehicles", err, modeQuery)
		return
	}
	writeJSON(w, http.StatusOK, vehiclesResponse{Vehicles: vehicles})
}

func (h *VehicleHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.vehicleSvc.GetFilterOptions(r.Context())
	if err != nil {
		respondError(w, r, "GetFilterOptions", err, modeQuery)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}
