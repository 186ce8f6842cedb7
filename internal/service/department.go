package service

import (
	"context"
	"errors"
	"fmt"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/repository"

	"github.com/google/uuid"
)

type departmentService struct {
	deptRepo    repository.DepartmentRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
}

func NewDepartmentService(
	deptRepo repository.DepartmentRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
) DepartmentService {
	return &departmentService{
		deptRepo:    deptRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
	}
}

func (s *departmentService) ListDepartments(ctx context.Context) ([]domain.DepartmentSummary, error) {
	depts, err := s.deptRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	out := make([]domain.DepartmentSummary, 0, len(depts))
	for i := range depts {
		out = append(out, MapDepartmentToSummary(&depts[i]))
	}
	return out, nil
}

// GetDepartment returns the department with its manager name and vehicles.
func (s *departmentService) GetDepartment(ctx context.Context, departmentID uuid.UUID) (*domain.DepartmentDetail, error) {
	dept, err := s.deptRepo.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("get department: %w", err)
	}

	var manager *domain.User
	if dept.ManagerID != uuid.Nil {
		manager, err = s.userRepo.GetByID(ctx, dept.ManagerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("get department manager: %w", err)
		}
	}

	vehicles, err := s.vehicleRepo.List(ctx, domain.VehicleFilter{DepartmentID: &dept.ID})
	if err != nil {
		return nil, fmt.Errorf("list department vehicles: %w", err)
	}

	detail := MapDepartmentToDetail(dept, manager, vehicles)
	return &detail, nil
}
