package http

import (
	"net/http"

	"carrotrent-backend/internal/service"
)

type DepartmentHandler struct {
	departmentSvc service.DepartmentService
}

func NewDepartmentHandler(departmentSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentSvc: departmentSvc}
}

func (h *DepartmentHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.departmentSvc.ListDepartments(r.Context())
	if err != nil {
		respondError(w, r, "ListDepartments", err, modeQuery)
		return
	}
	writeJSON(w, http.StatusOK, departmentsResponse{Departments: depts})
}

func (h *DepartmentHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.departmentSvc.GetDepartment(r.Context(), id)
	if err != nil {
		respondError(w, r, "GetDepartment", err, modeQuery)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
