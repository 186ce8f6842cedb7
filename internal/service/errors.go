package service

import (
	"errors"

	"carrotrent-backend/internal/domain"
)

// Business rejections. Anything else returned by a service is an
// infrastructure fault.
var (
	ErrUnauthenticated    = errors.New("no authenticated user")
	ErrForbidden          = errors.New("operation not permitted for this user")
	ErrRentalNotFound     = errors.New("rental not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrStatusNotFound     = errors.New("rental status not configured")
	ErrRoleNotFound       = errors.New("role not configured")
	ErrPriceNotFound      = errors.New("vehicle has no price")
	ErrInvalidRentalState = errors.New("rental status does not allow this operation")
	ErrInvalidDateRange   = domain.ErrInvalidDateRange
	ErrRentalOverlap      = errors.New("vehicle is already rented in this period")
	ErrConcurrentUpdate   = errors.New("rental was modified concurrently")
	ErrUserNotUnverified  = errors.New("user is already verified")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrAccountDataTaken   = errors.New("account data already in use")
	ErrInvalidVehicleData = domain.ErrInvalidVehicle
	ErrVehicleDataTaken   = errors.New("vehicle data already in use")
	ErrModelNotFound      = errors.New("vehicle model not found")
	ErrFuelNotFound       = errors.New("fuel not found")
	ErrVehicleInUse       = errors.New("vehicle has rentals and cannot be deleted")
)

var rejections = []error{
	ErrUnauthenticated, ErrForbidden,
	ErrRentalNotFound, ErrDepartmentNotFound, ErrVehicleNotFound, ErrUserNotFound,
	ErrStatusNotFound, ErrRoleNotFound, ErrPriceNotFound,
	ErrInvalidRentalState, ErrInvalidDateRange, ErrRentalOverlap, ErrConcurrentUpdate,
	ErrUserNotUnverified, ErrInvalidCredentials, ErrAccountDataTaken,
	ErrInvalidVehicleData, ErrVehicleDataTaken, ErrModelNotFound, ErrFuelNotFound, ErrVehicleInUse,
}

// IsRejection reports whether err is an expected business outcome rather
// than an infrastructure fault.
func IsRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the addressed entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRentalNotFound) ||
		errors.Is(err, ErrDepartmentNotFound) ||
		errors.Is(err, ErrVehicleNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
