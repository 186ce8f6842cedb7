package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/repository"

	"github.com/google/uuid"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	deptRepo    repository.DepartmentRepository
	tx          TransactionManager
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	deptRepo repository.DepartmentRepository,
	tx TransactionManager,
) VehicleService {
	if tx == nil {
		tx = NoopTransactionManager()
	}
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		deptRepo:    deptRepo,
		tx:          tx,
	}
}

// CreateVehicle adds a vehicle to a department. Only that department's
// manager may do so.
func (s *vehicleService) CreateVehicle(ctx context.Context, actor *domain.Actor, in CreateVehicleInput) (*domain.Vehicle, error) {
	logger.EnterMethod("vehicleService.CreateVehicle", "departmentID", in.DepartmentID, "vin", in.VIN)
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	v := &domain.Vehicle{
		ModelID:          in.ModelID,
		FuelID:           in.FuelID,
		DepartmentID:     in.DepartmentID,
		Description:      in.Description,
		Registration:     in.Registration,
		VIN:              in.VIN,
		Seats:            in.Seats,
		YearOfProduction: in.YearOfProduction,
		PricePerDay:      in.PricePerDay,
	}
	if err := v.ValidateDetails(); err != nil {
		return nil, err
	}

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		dept, err := s.department(ctx, in.DepartmentID)
		if err != nil {
			return err
		}
		if !domain.CanCreateVehicle(actor, dept) {
			return ErrForbidden
		}

		taken, err := s.vehicleRepo.FindTakenFields(ctx, in.VIN, in.Registration)
		if err != nil {
			return fmt.Errorf("check vehicle availability: %w", err)
		}
		if len(taken) > 0 {
			return fmt.Errorf("%w: %s", ErrVehicleDataTaken, strings.Join(taken, ", "))
		}

		if found, err := s.vehicleRepo.FuelExists(ctx, in.FuelID); err != nil {
			return fmt.Errorf("check fuel: %w", err)
		} else if !found {
			return ErrFuelNotFound
		}
		if found, err := s.vehicleRepo.ModelExists(ctx, in.ModelID); err != nil {
			return fmt.Errorf("check model: %w", err)
		} else if !found {
			return ErrModelNotFound
		}

		if err := s.vehicleRepo.Create(ctx, v); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrVehicleDataTaken
			}
			return fmt.Errorf("create vehicle: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.ExitMethod("vehicleService.CreateVehicle", "vehicleID", v.ID)
	return v, nil
}

// UpdateVehicle is open to the manager and employees of the vehicle's department.
func (s *vehicleService) UpdateVehicle(ctx context.Context, actor *domain.Actor, vehicleID uuid.UUID, in UpdateVehicleInput) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	v := &domain.Vehicle{
		ID:               vehicleID,
		Description:      in.Description,
		Seats:            in.Seats,
		YearOfProduction: in.YearOfProduction,
		PricePerDay:      in.PricePerDay,
	}
	if err := v.ValidateDetails(); err != nil {
		return err
	}

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		dept, err := s.vehicleDepartment(ctx, vehicleID)
		if err != nil {
			return err
		}
		if !domain.CanUpdateVehicle(actor, dept) {
			return ErrForbidden
		}

		if err := s.vehicleRepo.Update(ctx, v); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrVehicleNotFound
			}
			return fmt.Errorf("update vehicle: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Vehicle updated", "vehicleID", vehicleID, "updatedBy", actor.ID)
	return nil
}

// DeleteVehicle removes a vehicle that has never been rented. Only the
// department manager may do so.
func (s *vehicleService) DeleteVehicle(ctx context.Context, actor *domain.Actor, vehicleID uuid.UUID) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		dept, err := s.vehicleDepartment(ctx, vehicleID)
		if err != nil {
			return err
		}
		if !domain.CanDeleteVehicle(actor, dept) {
			return ErrForbidden
		}

		if err := s.vehicleRepo.Delete(ctx, vehicleID); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return ErrVehicleNotFound
			case errors.Is(err, repository.ErrReference):
				return ErrVehicleInUse
			}
			return fmt.Errorf("delete vehicle: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Vehicle deleted", "vehicleID", vehicleID, "deletedBy", actor.ID)
	return nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.VehicleDetail, error) {
	v, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	detail := MapVehicleToDetail(v)
	return &detail, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.VehicleListItem, error) {
	vehicles, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return MapVehiclesToListItems(vehicles), nil
}

func (s *vehicleService) GetFilterOptions(ctx context.Context) (*domain.VehicleFilterOptions, error) {
	opts, err := s.vehicleRepo.GetFilterOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("get vehicle filter options: %w", err)
	}
	return opts, nil
}

func (s *vehicleService) department(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return dept, nil
}

func (s *vehicleService) vehicleDepartment(ctx context.Context, vehicleID uuid.UUID) (*domain.Department, error) {
	deptID, err := s.vehicleRepo.GetDepartmentID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("get vehicle department: %w", err)
	}
	return s.department(ctx, deptID)
}
