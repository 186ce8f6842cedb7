package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinProductionYear is the oldest production year accepted for a fleet vehicle.
const MinProductionYear = 1950

var ErrInvalidVehicle = errors.New("vehicle needs a description, seats, a production year from 1950 and a positive price")

type Vehicle struct {
	ID               uuid.UUID       `json:"id"`
	ModelID          uuid.UUID       `json:"model_id"`
	Model            string          `json:"model"`
	Brand            string          `json:"brand"`
	FuelID           uuid.UUID       `json:"fuel_id"`
	Fuel             string          `json:"fuel"`
	DepartmentID     uuid.UUID       `json:"department_id"`
	Department       string          `json:"department"`
	Description      string          `json:"description"`
	Registration     string          `json:"registration"`
	VIN              string          `json:"vin"`
	Seats            int             `json:"seats"`
	YearOfProduction int             `json:"year_of_production"`
	PricePerDay      decimal.Decimal `json:"price_per_day"`
}

// ValidateDetails checks the fields a staff member may edit.
func (v *Vehicle) ValidateDetails() error {
	switch {
	case v.Description == "",
		v.Seats <= 0,
		v.YearOfProduction < MinProductionYear,
		!v.PricePerDay.IsPositive():
		return ErrInvalidVehicle
	}
	return nil
}

// VehicleSummary carries the display data of a vehicle.
type VehicleSummary struct {
	ID               uuid.UUID `json:"id"`
	DepartmentID     uuid.UUID `json:"department_id"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	YearOfProduction int       `json:"year_of_production"`
}

type VehiclePrice struct {
	VehicleID   uuid.UUID       `json:"vehicle_id"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
}

// VehicleFilter narrows the fleet listing. Nil fields do not filter.
type VehicleFilter struct {
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Seats        *int
	BrandID      *uuid.UUID
	ModelID      *uuid.UUID
	FuelID       *uuid.UUID
	DepartmentID *uuid.UUID
}

type CatalogEntry struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ModelEntry struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	BrandID uuid.UUID `json:"brandId"`
}
