package repository

import (
	"context"
	"errors"
	"time"

	"carrotrent-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("repository: record not found")
	// ErrConflict reports a lost race: a conditional update matched no row
	// or the database aborted a serializable transaction.
	ErrConflict = errors.New("repository: concurrent modification")
	// ErrOverlap is raised by the rental exclusion constraint.
	ErrOverlap   = errors.New("repository: overlapping rental")
	ErrDuplicate = errors.New("repository: duplicate value")
	// ErrReference reports a foreign key pointing at a missing row.
	ErrReference = errors.New("repository: referenced record missing")
)

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error)
	// GetByIDForUpdate locks the rental row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Rental, error)
	// Update persists the rental only if its stored status is still expectedStatusID.
	Update(ctx context.Context, rental *domain.Rental, expectedStatusID uuid.UUID) error
	GetStatusIDByName(ctx context.Context, status domain.RentalStatus) (uuid.UUID, error)
	GetDepartmentID(ctx context.Context, rentalID uuid.UUID) (uuid.UUID, error)
	ListOverlapping(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) ([]domain.Rental, error)
	ListByDepartment(ctx context.Context, departmentID uuid.UUID, archived bool) ([]domain.Rental, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, archived bool) ([]domain.Rental, error)
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error)
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	// List returns departments without their employee ids.
	List(ctx context.Context) ([]domain.Department, error)
	// ListIDsByStaffMember returns departments the user manages or works in.
	ListIDsByStaffMember(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type VehicleRepository interface {
	GetSummary(ctx context.Context, id uuid.UUID) (*domain.VehicleSummary, error)
	GetPricePerDay(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
	GetDepartmentID(ctx context.Context, vehicleID uuid.UUID) (uuid.UUID, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	// Update changes description, price, seats and production year.
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	// Delete returns ErrReference while rentals still point at the vehicle.
	Delete(ctx context.Context, id uuid.UUID) error
	// FindTakenFields returns "vin" and/or "registration" when already registered.
	FindTakenFields(ctx context.Context, vin, registration string) ([]string, error)
	ModelExists(ctx context.Context, id uuid.UUID) (bool, error)
	FuelExists(ctx context.Context, id uuid.UUID) (bool, error)
	GetFilterOptions(ctx context.Context) (*domain.VehicleFilterOptions, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	// FindTakenFields returns the names of unique fields already used by another account.
	FindTakenFields(ctx context.Context, login, email, pesel, phoneNumber string) ([]string, error)
	GetRole(ctx context.Context, userID uuid.UUID) (domain.Role, error)
	GetRoleIDByName(ctx context.Context, role domain.Role) (uuid.UUID, error)
	UpdateRole(ctx context.Context, userID, roleID uuid.UUID) error
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}
