package http_test

import (
	"context"
	"errors"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) CreateRental(ctx context.Context, actor *domain.Actor, in service.CreateRentalInput) (*domain.Rental, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) IssueRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (*domain.Rental, error) {
	args := m.Called(ctx, actor, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ReceiveRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (*domain.RentalCost, error) {
	args := m.Called(ctx, actor, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalCost), args.Error(1)
}
func (m *MockRentalService) CancelRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (*domain.Rental, error) {
	args := m.Called(ctx, actor, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (*domain.RentalDetail, error) {
	args := m.Called(ctx, actor, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalDetail), args.Error(1)
}
func (m *MockRentalService) ListMyRentals(ctx context.Context, actor *domain.Actor, archived bool) ([]domain.RentalSummary, error) {
	args := m.Called(ctx, actor, archived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalSummary), args.Error(1)
}
func (m *MockRentalService) ListDepartmentRentals(ctx context.Context, actor *domain.Actor, departmentID uuid.UUID, archived bool) ([]domain.RentalSummary, error) {
	args := m.Called(ctx, actor, departmentID, archived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalSummary), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}
func (m *MockAccountService) Login(ctx context.Context, login, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}
func (m *MockAccountService) VerifyUser(ctx context.Context, actor *domain.Actor, userID uuid.UUID) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}
func (m *MockAccountService) ListUnverifiedUsers(ctx context.Context, actor *domain.Actor) ([]domain.UnverifiedUser, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnverifiedUser), args.Error(1)
}
func (m *MockAccountService) ResolveActor(ctx context.Context, userID uuid.UUID) (*domain.Actor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

func (m *MockAccountService) RegisterEmployee(ctx context.Context, actor *domain.Actor, departmentID uuid.UUID, in service.RegisterInput) (*domain.EmployeeAccount, error) {
	args := m.Called(ctx, actor, departmentID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeeAccount), args.Error(1)
}

type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) CreateVehicle(ctx context.Context, actor *domain.Actor, in service.CreateVehicleInput) (*domain.Vehicle, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleService) UpdateVehicle(ctx context.Context, actor *domain.Actor, vehicleID uuid.UUID, in service.UpdateVehicleInput) error {
	args := m.Called(ctx, actor, vehicleID, in)
	return args.Error(0)
}
func (m *MockVehicleService) DeleteVehicle(ctx context.Context, actor *domain.Actor, vehicleID uuid.UUID) error {
	args := m.Called(ctx, actor, vehicleID)
	return args.Error(0)
}
func (m *MockVehicleService) GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.VehicleDetail, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleDetail), args.Error(1)
}
func (m *MockVehicleService) ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.VehicleListItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VehicleListItem), args.Error(1)
}
func (m *MockVehicleService) GetFilterOptions(ctx context.Context) (*domain.VehicleFilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleFilterOptions), args.Error(1)
}

type MockDepartmentService struct {
	mock.Mock
}

func (m *MockDepartmentService) ListDepartments(ctx context.Context) ([]domain.DepartmentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentSummary), args.Error(1)
}
func (m *MockDepartmentService) GetDepartment(ctx context.Context, departmentID uuid.UUID) (*domain.DepartmentDetail, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepartmentDetail), args.Error(1)
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

var errDatabaseDown = errors.New("dial tcp: connection refused")
