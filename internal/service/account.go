package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/repository"
	"carrotrent-backend/internal/security"

	"github.com/google/uuid"
)

type accountService struct {
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
	tokens   security.TokenManager
	hasher   security.PasswordHasher
	tx       TransactionManager
}

func NewAccountService(
	userRepo repository.UserRepository,
	deptRepo repository.DepartmentRepository,
	tokens security.TokenManager,
	hasher security.PasswordHasher,
	tx TransactionManager,
) AccountService {
	if tx == nil {
		tx = NoopTransactionManager()
	}
	return &accountService{
		userRepo: userRepo,
		deptRepo: deptRepo,
		tokens:   tokens,
		hasher:   hasher,
		tx:       tx,
	}
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	logger.EnterMethod("accountService.Register", "login", in.Login)

	user, err := s.createAccount(ctx, in, domain.RoleUnverified, nil)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Login, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	logger.ExitMethod("accountService.Register", "userID", user.ID)
	return &AuthResult{Login: user.Login, Role: user.Role, Token: token, DepartmentIDs: []uuid.UUID{}}, nil
}

// RegisterEmployee lets a department manager hire staff for that department.
func (s *accountService) RegisterEmployee(ctx context.Context, actor *domain.Actor, departmentID uuid.UUID, in RegisterInput) (*domain.EmployeeAccount, error) {
	logger.EnterMethod("accountService.RegisterEmployee", "login", in.Login, "departmentID", departmentID)
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	var user *domain.User
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		dept, err := s.deptRepo.GetByID(ctx, departmentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrDepartmentNotFound
			}
			return fmt.Errorf("get department: %w", err)
		}
		if !domain.CanRegisterEmployee(actor, dept) {
			return ErrForbidden
		}

		user, err = s.createAccount(ctx, in, domain.RoleEmployee, &dept.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.ExitMethod("accountService.RegisterEmployee", "userID", user.ID, "createdBy", actor.ID)
	return &domain.EmployeeAccount{ID: user.ID, Login: user.Login, DepartmentID: departmentID}, nil
}

func (s *accountService) createAccount(ctx context.Context, in RegisterInput, role domain.Role, departmentID *uuid.UUID) (*domain.User, error) {
	taken, err := s.userRepo.FindTakenFields(ctx, in.Login, in.Email, in.Pesel, in.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("check account availability: %w", err)
	}
	if len(taken) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAccountDataTaken, strings.Join(taken, ", "))
	}

	roleID, err := s.roleID(ctx, role)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Login:        in.Login,
		PasswordHash: hash,
		RoleID:       roleID,
		Role:         role,
		DepartmentID: departmentID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Pesel:        in.Pesel,
		PhoneNumber:  in.PhoneNumber,
		Email:        in.Email,
		Address:      in.Address,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountDataTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *accountService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Login, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	deptIDs, err := s.deptRepo.ListIDsByStaffMember(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	if deptIDs == nil {
		deptIDs = []uuid.UUID{}
	}

	logger.Info("User logged in", "userID", user.ID, "role", user.Role)
	return &AuthResult{Login: user.Login, Role: user.Role, Token: token, DepartmentIDs: deptIDs}, nil
}

// VerifyUser promotes an Unverified account to Client.
func (s *accountService) VerifyUser(ctx context.Context, actor *domain.Actor, userID uuid.UUID) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !domain.CanVerifyUsers(actor) {
		return ErrForbidden
	}

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		role, err := s.userRepo.GetRole(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("get user role: %w", err)
		}
		if role != domain.RoleUnverified {
			return ErrUserNotUnverified
		}

		clientRoleID, err := s.roleID(ctx, domain.RoleClient)
		if err != nil {
			return err
		}
		if err := s.userRepo.UpdateRole(ctx, userID, clientRoleID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("update user role: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("User verified", "userID", userID, "verifiedBy", actor.ID)
	return nil
}

func (s *accountService) ListUnverifiedUsers(ctx context.Context, actor *domain.Actor) ([]domain.UnverifiedUser, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if !domain.CanVerifyUsers(actor) {
		return nil, ErrForbidden
	}

	users, err := s.userRepo.ListByRole(ctx, domain.RoleUnverified)
	if err != nil {
		return nil, fmt.Errorf("list unverified users: %w", err)
	}
	out := make([]domain.UnverifiedUser, 0, len(users))
	for i := range users {
		out = append(out, MapUnverifiedUser(&users[i]))
	}
	return out, nil
}

func (s *accountService) ResolveActor(ctx context.Context, userID uuid.UUID) (*domain.Actor, error) {
	role, err := s.userRepo.GetRole(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve actor: %w", err)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("resolve actor: unknown role %q", role)
	}
	return &domain.Actor{ID: userID, Role: role}, nil
}

func (s *accountService) roleID(ctx context.Context, role domain.Role) (uuid.UUID, error) {
	id, err := s.userRepo.GetRoleIDByName(ctx, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrRoleNotFound, role)
		}
		return uuid.Nil, fmt.Errorf("get role %s: %w", role, err)
	}
	return id, nil
}
