package service_test

import (
	"context"
	"time"

	"carrotrent-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental, expectedStatusID uuid.UUID) error {
	args := m.Called(ctx, rental, expectedStatusID)
	return args.Error(0)
}
func (m *MockRentalRepo) GetStatusIDByName(ctx context.Context, status domain.RentalStatus) (uuid.UUID, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
func (m *MockRentalRepo) GetDepartmentID(ctx context.Context, rentalID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
func (m *MockRentalRepo) ListOverlapping(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, vehicleID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByDepartment(ctx context.Context, departmentID uuid.UUID, archived bool) ([]domain.Rental, error) {
	args := m.Called(ctx, departmentID, archived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByClient(ctx context.Context, clientID uuid.UUID, archived bool) ([]domain.Rental, error) {
	args := m.Called(ctx, clientID, archived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockDepartmentRepo
type MockDepartmentRepo struct {
	mock.Mock
}

func (m *MockDepartmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}
func (m *MockDepartmentRepo) ListIDsByStaffMember(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
func (m *MockDepartmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetSummary(ctx context.Context, id uuid.UUID) (*domain.VehicleSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleSummary), args.Error(1)
}
func (m *MockVehicleRepo) GetPricePerDay(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) GetDepartmentID(ctx context.Context, vehicleID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) FindTakenFields(ctx context.Context, vin, registration string) ([]string, error) {
	args := m.Called(ctx, vin, registration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockVehicleRepo) ModelExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockVehicleRepo) FuelExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockVehicleRepo) GetFilterOptions(ctx context.Context) (*domain.VehicleFilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleFilterOptions), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) FindTakenFields(ctx context.Context, login, email, pesel, phoneNumber string) ([]string, error) {
	args := m.Called(ctx, login, email, pesel, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockUserRepo) GetRole(ctx context.Context, userID uuid.UUID) (domain.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Role), args.Error(1)
}
func (m *MockUserRepo) GetRoleIDByName(ctx context.Context, role domain.Role) (uuid.UUID, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// conflictingTx simulates a serializable transaction the database keeps aborting.
type conflictingTx struct {
	err error
}

func (c conflictingTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return c.err
}

func (c conflictingTx) WithinSerializable(ctx context.Context, fn func(context.Context) error) error {
	return c.err
}
