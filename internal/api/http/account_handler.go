package http

import (
	"net/http"

	"carrotrent-backend/internal/service"
)

type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.accountSvc.Register(r.Context(), req.toInput())
	if err != nil {
		respondError(w, r, "Register", err, modeCommand)
		return
	}
	writeJSON(w, http.StatusOK, registerResponse{Login: res.Login, Token: res.Token})
}

// RegisterEmployee creates a staff account in the {departmentId} department.
func (h *AccountHandler) RegisterEmployee(w http.ResponseWriter, r *http.Request) {
	deptID, ok := pathUUID(w, r, "departmentId")
	if !ok {
		return
	}
	var req registerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	acc, err := h.accountSvc.RegisterEmployee(r.Context(), ActorFromContext(r.Context()), deptID, req.toInput())
	if err != nil {
		respondError(w, r, "RegisterEmployee", err, modeCommand)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.accountSvc.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		respondError(w, r, "Login", err, modeCommand)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AccountHandler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.accountSvc.VerifyUser(r.Context(), ActorFromContext(r.Context()), id); err != nil {
		respondError(w, r, "VerifyUser", err, modeCommand)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) ListUnverifiedUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accountSvc.ListUnverifiedUsers(r.Context(), ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, "ListUnverifiedUsers", err, modeQuery)
		return
	}
	writeJSON(w, http.StatusOK, unverifiedUsersResponse{Users: users})
}
