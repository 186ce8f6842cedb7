package service

import (
	"context"
	"errors"
	"fmt"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/metrics"
	"carrotrent-backend/internal/repository"
	"carrotrent-backend/internal/utils"

	"github.com/google/uuid"
)

type rentalService struct {
	rentalRepo  repository.RentalRepository
	deptRepo    repository.DepartmentRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	tx          TransactionManager
	clock       Clock
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	deptRepo repository.DepartmentRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	tx TransactionManager,
	clock Clock,
) RentalService {
	if tx == nil {
		tx = NoopTransactionManager()
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &rentalService{
		rentalRepo:  rentalRepo,
		deptRepo:    deptRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		tx:          tx,
		clock:       clock,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, actor *domain.Actor, in CreateRentalInput) (rental *domain.Rental, err error) {
	defer observe("create", &err)

	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if !domain.CanReserve(actor) {
		return nil, ErrForbidden
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, ErrInvalidDateRange
	}

	err = s.tx.WithinSerializable(ctx, func(ctx context.Context) error {
		existing, err := s.rentalRepo.ListOverlapping(ctx, in.VehicleID, in.StartDate, in.EndDate)
		if err != nil {
			return fmt.Errorf("list overlapping rentals: %w", err)
		}
		for i := range existing {
			if existing[i].OverlapsRange(in.StartDate, in.EndDate) {
				return ErrRentalOverlap
			}
		}

		statusID, err := s.statusID(ctx, domain.RentalStatusReserved)
		if err != nil {
			return err
		}

		rt, err := domain.NewReservation(actor.ID, in.VehicleID, statusID, in.StartDate, in.EndDate)
		if err != nil {
			return err
		}
		if err := s.rentalRepo.Create(ctx, rt); err != nil {
			switch {
			case errors.Is(err, repository.ErrOverlap):
				return ErrRentalOverlap
			case errors.Is(err, repository.ErrReference):
				return ErrVehicleNotFound
			}
			return fmt.Errorf("create rental: %w", err)
		}
		rental = rt
		return nil
	})
	if errors.Is(err, repository.ErrConflict) {
		err = ErrConcurrentUpdate
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Rental reserved", "rentalID", rental.ID, "vehicleID", rental.VehicleID, "clientID", actor.ID)
	return rental, nil
}

func (s *rentalService) IssueRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (issued *domain.Rental, err error) {
	defer observe("issue", &err)

	if actor == nil {
		return nil, ErrUnauthenticated
	}

	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		rt, err := s.loadManagedRental(ctx, actor, rentalID)
		if err != nil {
			return err
		}
		activeID, err := s.statusID(ctx, domain.RentalStatusActive)
		if err != nil {
			return err
		}

		expected := rt.StatusID
		if err := rt.Issue(actor.ID, activeID); err != nil {
			return ErrInvalidRentalState
		}
		if err := s.update(ctx, rt, expected); err != nil {
			return err
		}
		issued = rt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental issued", "rentalID", rentalID, "renterID", actor.ID)
	return issued, nil
}

// ReceiveRental closes a rental and charges it. Receipt is gated on the
// rental still being Reserved, the same gate as IssueRental.
func (s *rentalService) ReceiveRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (cost *domain.RentalCost, err error) {
	defer observe("receive", &err)

	if actor == nil {
		return nil, ErrUnauthenticated
	}

	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		rt, err := s.loadManagedRental(ctx, actor, rentalID)
		if err != nil {
			return err
		}
		archivedID, err := s.statusID(ctx, domain.RentalStatusArchived)
		if err != nil {
			return err
		}
		price, err := s.vehicleRepo.GetPricePerDay(ctx, rt.VehicleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrPriceNotFound
			}
			return fmt.Errorf("get vehicle price: %w", err)
		}

		// Days are counted against the agreed end, before it is overwritten.
		now := s.clock.Now()
		breakdown := utils.CalculateRentalCost(rt.StartDate, rt.EndDate, now, price)

		expected := rt.StatusID
		if err := rt.Receive(actor.ID, archivedID, now); err != nil {
			return ErrInvalidRentalState
		}
		if err := s.update(ctx, rt, expected); err != nil {
			return err
		}

		c := MapRentalCost(breakdown)
		cost = &c
		logger.Info("Rental received", "rentalID", rt.ID, "receiverID", actor.ID,
			"reservedDays", breakdown.ReservedDays, "exceededDays", breakdown.ExceededDays, "total", breakdown.TotalCost.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cost, nil
}

func (s *rentalService) CancelRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (cancelled *domain.Rental, err error) {
	defer observe("cancel", &err)

	if actor == nil {
		return nil, ErrUnauthenticated
	}

	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		rt, err := s.lockRental(ctx, rentalID)
		if err != nil {
			return err
		}
		dept, err := s.rentalDepartment(ctx, rt.ID)
		if err != nil {
			return err
		}
		if !domain.CanCancelRental(actor, rt, dept) {
			return ErrForbidden
		}
		if rt.Status != domain.RentalStatusReserved {
			return ErrInvalidRentalState
		}
		archivedID, err := s.statusID(ctx, domain.RentalStatusArchived)
		if err != nil {
			return err
		}

		expected := rt.StatusID
		if err := rt.Cancel(archivedID); err != nil {
			return ErrInvalidRentalState
		}
		if err := s.update(ctx, rt, expected); err != nil {
			return err
		}
		cancelled = rt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental cancelled", "rentalID", rentalID, "actorID", actor.ID)
	return cancelled, nil
}

func (s *rentalService) GetRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (*domain.RentalDetail, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, fmt.Errorf("get rental: %w", err)
	}
	if !domain.CanViewRental(actor, rt) {
		return nil, ErrForbidden
	}

	vehicle, err := s.vehicleRepo.GetSummary(ctx, rt.VehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}

	client, err := s.user(ctx, &rt.ClientID)
	if err != nil {
		return nil, err
	}
	renter, err := s.user(ctx, rt.RenterID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.user(ctx, rt.ReceiverID)
	if err != nil {
		return nil, err
	}

	detail := MapRentalToDetail(rt, vehicle, client, renter, receiver)
	return &detail, nil
}

func (s *rentalService) ListMyRentals(ctx context.Context, actor *domain.Actor, archived bool) ([]domain.RentalSummary, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if actor.Role != domain.RoleClient {
		return nil, ErrForbidden
	}

	rentals, err := s.rentalRepo.ListByClient(ctx, actor.ID, archived)
	if err != nil {
		return nil, fmt.Errorf("list client rentals: %w", err)
	}
	return s.summarize(ctx, rentals)
}

func (s *rentalService) ListDepartmentRentals(ctx context.Context, actor *domain.Actor, departmentID uuid.UUID, archived bool) ([]domain.RentalSummary, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	dept, err := s.deptRepo.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	if !domain.IsStaffOfDepartment(actor, dept) {
		return nil, ErrForbidden
	}

	rentals, err := s.rentalRepo.ListByDepartment(ctx, departmentID, archived)
	if err != nil {
		return nil, fmt.Errorf("list department rentals: %w", err)
	}
	return s.summarize(ctx, rentals)
}

// loadManagedRental locks the rental and checks the Issue/Receive gate.
func (s *rentalService) loadManagedRental(ctx context.Context, actor *domain.Actor, rentalID uuid.UUID) (*domain.Rental, error) {
	rt, err := s.lockRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Status != domain.RentalStatusReserved {
		return nil, ErrInvalidRentalState
	}
	dept, err := s.rentalDepartment(ctx, rt.ID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageRental(actor, rt, dept) {
		return nil, ErrForbidden
	}
	return rt, nil
}

func (s *rentalService) lockRental(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByIDForUpdate(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, fmt.Errorf("lock rental: %w", err)
	}
	return rt, nil
}

func (s *rentalService) rentalDepartment(ctx context.Context, rentalID uuid.UUID) (*domain.Department, error) {
	deptID, err := s.rentalRepo.GetDepartmentID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("get rental department: %w", err)
	}
	dept, err := s.deptRepo.GetByID(ctx, deptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return dept, nil
}

func (s *rentalService) statusID(ctx context.Context, status domain.RentalStatus) (uuid.UUID, error) {
	id, err := s.rentalRepo.GetStatusIDByName(ctx, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrStatusNotFound, status)
		}
		return uuid.Nil, fmt.Errorf("get status %s: %w", status, err)
	}
	return id, nil
}

func (s *rentalService) update(ctx context.Context, rt *domain.Rental, expectedStatusID uuid.UUID) error {
	if err := s.rentalRepo.Update(ctx, rt, expectedStatusID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrConcurrentUpdate
		}
		return fmt.Errorf("update rental: %w", err)
	}
	return nil
}

// user returns nil for a nil id.
func (s *rentalService) user(ctx context.Context, id *uuid.UUID) (*domain.User, error) {
	if id == nil {
		return nil, nil
	}
	u, err := s.userRepo.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *rentalService) summarize(ctx context.Context, rentals []domain.Rental) ([]domain.RentalSummary, error) {
	vehicles := make(map[uuid.UUID]*domain.VehicleSummary)
	summaries := make([]domain.RentalSummary, 0, len(rentals))
	for i := range rentals {
		rt := &rentals[i]
		v, ok := vehicles[rt.VehicleID]
		if !ok {
			var err error
			v, err = s.vehicleRepo.GetSummary(ctx, rt.VehicleID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, ErrVehicleNotFound
				}
				return nil, fmt.Errorf("get vehicle: %w", err)
			}
			vehicles[rt.VehicleID] = v
		}
		summaries = append(summaries, MapRentalToSummary(rt, v))
	}
	return summaries, nil
}

func observe(transition string, err *error) {
	switch {
	case *err == nil:
		metrics.RecordRentalTransition(transition, metrics.OutcomeOK)
	case IsRejection(*err):
		metrics.RecordRentalTransition(transition, metrics.OutcomeRejected)
	default:
		metrics.RecordRentalTransition(transition, metrics.OutcomeError)
	}
}
