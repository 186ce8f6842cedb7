package domain

import (
	"strings"

	"github.com/google/uuid"
)

type Department struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	ManagerID   uuid.UUID   `json:"manager_id"`
	EmployeeIDs []uuid.UUID `json:"employee_ids"`
	Address     Address     `json:"address"`
}

// HasStaffMember reports whether userID is the manager or one of the employees.
func (d *Department) HasStaffMember(userID uuid.UUID) bool {
	if d == nil || userID == uuid.Nil {
		return false
	}
	if d.ManagerID == userID {
		return true
	}
	for _, id := range d.EmployeeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Line renders "Street HouseNumber, PostCode City", skipping empty parts.
func (a Address) Line() string {
	street := strings.TrimSpace(a.Street + " " + a.HouseNumber)
	if a.ApartmentNumber != "" {
		street += "/" + a.ApartmentNumber
	}
	town := strings.TrimSpace(a.PostCode + " " + a.City)
	switch {
	case street == "":
		return town
	case town == "":
		return street
	}
	return street + ", " + town
}
