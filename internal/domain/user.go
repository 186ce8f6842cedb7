package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUnverified Role = "Unverified"
	RoleClient     Role = "Client"
	RoleEmployee   Role = "Employee"
	RoleManager    Role = "Manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUnverified, RoleClient, RoleEmployee, RoleManager:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to rental company personnel.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleManager
}

type Address struct {
	PostCode        string `json:"post_code"`
	City            string `json:"city"`
	Street          string `json:"street"`
	HouseNumber     string `json:"house_number"`
	ApartmentNumber string `json:"apartment_number,omitempty"`
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Login        string     `json:"login"`
	PasswordHash string     `json:"-"`
	RoleID       uuid.UUID  `json:"role_id"`
	Role         Role       `json:"role"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Pesel        string     `json:"pesel"`
	PhoneNumber  string     `json:"phone_number"`
	Email        string     `json:"email"`
	Address      Address    `json:"address"`
	CreatedOn    time.Time  `json:"created_on"`
}

func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}
