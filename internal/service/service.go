package service

import (
	"context"
	"time"

	"carrotrent-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RentalService interface {
	CreateRental(ctx context.Context, actor *domain.Actor, in CreateRentalInput) (*domain.Rental, error)
	IssueRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (*domain.Rental, error)
	ReceiveRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (*domain.RentalCost, error)
	CancelRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (*domain.Rental, error)
	GetRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (*domain.RentalDetail, error)
	ListMyRentals(ctx context.Context, actor *domain.Actor, archived bool) ([]domain.RentalSummary, error)
	ListDepartmentRentals(ctx context.Context, actor *domain.Actor, departmentID uuid.UUID, archived bool) ([]domain.RentalSummary, error)
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, login, password string) (*AuthResult, error)
	VerifyUser(ctx context.Context, actor *domain.Actor, userID uuid.UUID) error
	ListUnverifiedUsers(ctx context.Context, actor *domain.Actor) ([]domain.UnverifiedUser, error)
	// RegisterEmployee creates an Employee account attached to departmentID.
	RegisterEmployee(ctx context.Context, actor *domain.Actor, departmentID uuid.UUID, in RegisterInput) (*domain.EmployeeAccount, error)
	// ResolveActor loads the current role of an authenticated user.
	ResolveActor(ctx context.Context, userID uuid.UUID) (*domain.Actor, error)
}

type VehicleService interface {
	CreateVehicle(ctx context.Context, actor *domain.Actor, in CreateVehicleInput) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, actor *domain.Actor, vehicleID uuid.UUID, in UpdateVehicleInput) error
	DeleteVehicle(ctx context.Context, actor *domain.Actor, vehicleID uuid.UUID) error
	GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.VehicleDetail, error)
	ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.VehicleListItem, error)
	GetFilterOptions(ctx context.Context) (*domain.VehicleFilterOptions, error)
}

type DepartmentService interface {
	ListDepartments(ctx context.Context) ([]domain.DepartmentSummary, error)
	GetDepartment(ctx context.Context, departmentID uuid.UUID) (*domain.DepartmentDetail, error)
}

// TransactionManager scopes repository calls made with the passed context
// to one database transaction.
type TransactionManager interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
	WithinSerializable(ctx context.Context, fn func(context.Context) error) error
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the wall clock in UTC.
func SystemClock() Clock { return systemClock{} }

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (noopTransactionManager) WithinSerializable(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// NoopTransactionManager runs callbacks without opening a transaction.
func NoopTransactionManager() TransactionManager { return noopTransactionManager{} }

type CreateRentalInput struct {
	VehicleID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

type RegisterInput struct {
	Login       string
	Password    string
	FirstName   string
	LastName    string
	Pesel       string
	PhoneNumber string
	Email       string
	Address     domain.Address
}

type CreateVehicleInput struct {
	ModelID          uuid.UUID
	FuelID           uuid.UUID
	DepartmentID     uuid.UUID
	Description      string
	Registration     string
	VIN              string
	Seats            int
	YearOfProduction int
	PricePerDay      decimal.Decimal
}

type UpdateVehicleInput struct {
	Description      string
	Seats            int
	YearOfProduction int
	PricePerDay      decimal.Decimal
}

type AuthResult struct {
	Login         string      `json:"login"`
	Role          domain.Role `json:"role"`
	Token         string      `json:"token"`
	DepartmentIDs []uuid.UUID `json:"departmentIds"`
}
