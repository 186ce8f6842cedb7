package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models returned to API callers.

type RentalSummary struct {
	ID        uuid.UUID    `json:"id"`
	Status    RentalStatus `json:"status"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Vehicle   string       `json:"vehicle"`
}

type RentalVehicle struct {
	ID               uuid.UUID `json:"id"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	YearOfProduction int       `json:"yearOfProduction"`
}

type RentalDetail struct {
	ID           uuid.UUID     `json:"id"`
	Status       RentalStatus  `json:"status"`
	StartDate    time.Time     `json:"startDate"`
	EndDate      time.Time     `json:"endDate"`
	ClientID     uuid.UUID     `json:"clientId"`
	ClientName   string        `json:"clientName"`
	RenterID     *uuid.UUID    `json:"renterId"`
	RenterName   string        `json:"renterName"`
	ReceiverID   *uuid.UUID    `json:"receiverId"`
	ReceiverName string        `json:"receiverName"`
	Vehicle      RentalVehicle `json:"vehicle"`
}

type RentalCost struct {
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type UnverifiedUser struct {
	ID          uuid.UUID `json:"id"`
	Login       string    `json:"login"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Pesel       string    `json:"pesel"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
}

type VehicleListItem struct {
	ID               uuid.UUID       `json:"id"`
	Brand            string          `json:"brand"`
	Model            string          `json:"model"`
	YearOfProduction int             `json:"yearOfProduction"`
	Price            decimal.Decimal `json:"price"`
}

type VehicleDetail struct {
	ID               uuid.UUID       `json:"id"`
	Brand            string          `json:"brand"`
	Model            string          `json:"model"`
	Fuel             string          `json:"fuel"`
	Description      string          `json:"description"`
	Registration     string          `json:"registration"`
	YearOfProduction int             `json:"yearOfProduction"`
	Seats            int             `json:"seats"`
	Price            decimal.Decimal `json:"price"`
	DepartmentID     uuid.UUID       `json:"departmentId"`
	Department       string          `json:"department"`
}

// VehicleFilterOptions lists the values the fleet listing can be narrowed by.
type VehicleFilterOptions struct {
	Brands      []CatalogEntry `json:"brands"`
	Models      []ModelEntry   `json:"models"`
	Fuels       []CatalogEntry `json:"fuels"`
	Departments []CatalogEntry `json:"departments"`
}

type DepartmentSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

type DepartmentDetail struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Address   string            `json:"address"`
	ManagerID uuid.UUID         `json:"managerId"`
	Manager   string            `json:"manager"`
	Vehicles  []VehicleListItem `json:"vehicles"`
}

type EmployeeAccount struct {
	ID           uuid.UUID `json:"id"`
	Login        string    `json:"login"`
	DepartmentID uuid.UUID `json:"departmentId"`
}
