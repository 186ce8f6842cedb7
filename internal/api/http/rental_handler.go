package http

import (
	"net/http"

	"carrotrent-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var req createRentRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if _, err := h.rentalSvc.CreateRental(r.Context(), ActorFromContext(r.Context()), req.toInput()); err != nil {
		respondError(w, r, "CreateRental", err, modeCommand)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RentalHandler) ListMyRentals(w http.ResponseWriter, r *http.Request) {
	h.listMine(w, r, false)
}

func (h *RentalHandler) ListMyArchivedRentals(w http.ResponseWriter, r *http.Request) {
	h.listMine(w, r, true)
}

func (h *RentalHandler) listMine(w http.ResponseWriter, r *http.Request, archived bool) {
	rents, err := h.rentalSvc.ListMyRentals(r.Context(), ActorFromContext(r.Context()), archived)
	if err != nil {
		respondError(w, r, "ListMyRentals", err, modeCommand)
		return
	}
	writeJSON(w, http.StatusOK, rentsResponse{Rents: rents})
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.rentalSvc.GetRental(r.Context(), ActorFromContext(r.Context()), id)
	if err != nil {
		respondError(w, r, "GetRental", err, modeQuery)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *RentalHandler) CancelRental(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := h.rentalSvc.CancelRental(r.Context(), ActorFromContext(r.Context()), id); err != nil {
		respondError(w, r, "CancelRental", err, modeCommand)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *RentalHandler) IssueRental(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := h.rentalSvc.IssueRental(r.Context(), ActorFromContext(r.Context()), id); err != nil {
		respondError(w, r, "IssueRental", err, modeCommand)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *RentalHandler) ReceiveRental(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	cost, err := h.rentalSvc.ReceiveRental(r.Context(), ActorFromContext(r.Context()), id)
	if err != nil {
		respondError(w, r, "ReceiveRental", err, modeCommand)
		return
	}
	writeJSON(w, http.StatusOK, cost)
}

func (h *RentalHandler) ListDepartmentRentals(w http.ResponseWriter, r *http.Request) {
	h.listDepartment(w, r, false)
}

func (h *RentalHandler) ListDepartmentArchivedRentals(w http.ResponseWriter, r *http.Request) {
	h.listDepartment(w, r, true)
}

func (h *RentalHandler) listDepartment(w http.ResponseWriter, r *http.Request, archived bool) {
	deptID, ok := pathID(w, r)
	if !ok {
		return
	}

	rents, err := h.rentalSvc.ListDepartmentRentals(r.Context(), ActorFromContext(r.Context()), deptID, archived)
	if err != nil {
		respondError(w, r, "ListDepartmentRentals", err, modeQuery)
		return
	}
	writeJSON(w, http.StatusOK, rentsResponse{Rents: rents})
}
