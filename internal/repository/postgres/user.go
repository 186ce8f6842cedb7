package postgres

import (
	"context"
	"time"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const selectUser = `SELECT u.id, u.login, u.password_hash, u.role_id, ro.name AS role, u.department_id,
	u.first_name, u.last_name, u.pesel, u.phone_number, u.email,
	u.post_code, u.city, u.street, u.house_number, COALESCE(u.apartment_number, '') AS apartment_number, u.created_on
	FROM users u JOIN roles ro ON ro.id = u.role_id`

type userRow struct {
	ID              uuid.UUID     `db:"id"`
	Login           string        `db:"login"`
	PasswordHash    string        `db:"password_hash"`
	RoleID          uuid.UUID     `db:"role_id"`
	Role            string        `db:"role"`
	DepartmentID    uuid.NullUUID `db:"department_id"`
	FirstName       string        `db:"first_name"`
	LastName        string        `db:"last_name"`
	Pesel           string        `db:"pesel"`
	PhoneNumber     string        `db:"phone_number"`
	Email           string        `db:"email"`
	PostCode        string        `db:"post_code"`
	City            string        `db:"city"`
	Street          string        `db:"street"`
	HouseNumber     string        `db:"house_number"`
	ApartmentNumber string        `db:"apartment_number"`
	CreatedOn       time.Time     `db:"created_on"`
}

func (row userRow) toDomain() domain.User {
	return domain.User{
		ID:           row.ID,
		Login:        row.Login,
		PasswordHash: row.PasswordHash,
		RoleID:       row.RoleID,
		Role:         domain.Role(row.Role),
		DepartmentID: uuidPtr(row.DepartmentID),
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Pesel:        row.Pesel,
		PhoneNumber:  row.PhoneNumber,
		Email:        row.Email,
		Address: domain.Address{
			PostCode:        row.PostCode,
			City:            row.City,
			Street:          row.Street,
			HouseNumber:     row.HouseNumber,
			ApartmentNumber: row.ApartmentNumber,
		},
		CreatedOn: row.CreatedOn,
	}
}

type userRepository struct {
	db Queryer
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) q(ctx context.Context) Queryer {
	return QueryerFromContext(ctx, r.db)
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	logger.EnterMethod("userRepository.Create", "login", u.Login)
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedOn = time.Now().UTC()
	query := `INSERT INTO users (id, login, password_hash, role_id, first_name, last_name, pesel, phone_number, email,
	          post_code, city, street, house_number, apartment_number, created_on, department_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''), $15, $16)`
	_, err := r.q(ctx).ExecContext(ctx, query, u.ID, u.Login, u.PasswordHash, u.RoleID, u.FirstName, u.LastName,
		u.Pesel, u.PhoneNumber, u.Email, u.Address.PostCode, u.Address.City, u.Address.Street,
		u.Address.HouseNumber, u.Address.ApartmentNumber, u.CreatedOn, nullUUID(u.DepartmentID))
	if err != nil {
		err = translateError(err)
		logger.ExitMethodWithError("userRepository.Create", err, "login", u.Login)
		return err
	}
	logger.ExitMethod("userRepository.Create", "userID", u.ID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.get(ctx, selectUser+` WHERE u.id = $1`, id)
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.get(ctx, selectUser+` WHERE u.login = $1`, login)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, r.q(ctx), &row, query, arg); err != nil {
		return nil, translateError(err)
	}
	u := row.toDomain()
	return &u, nil
}

func (r *userRepository) FindTakenFields(ctx context.Context, login, email, pesel, phoneNumber string) ([]string, error) {
	query := `SELECT field FROM (
	            SELECT 'login' AS field FROM users WHERE login = $1
	            UNION SELECT 'email' FROM users WHERE LOWER(email) = LOWER($2)
	            UNION SELECT 'pesel' FROM users WHERE pesel = $3
	            UNION SELECT 'phoneNumber' FROM users WHERE phone_number = $4
	          ) taken ORDER BY field`
	var fields []string
	if err := sqlx.SelectContext(ctx, r.q(ctx), &fields, query, login, email, pesel, phoneNumber); err != nil {
		return nil, translateError(err)
	}
	return fields, nil
}

func (r *userRepository) GetRole(ctx context.Context, userID uuid.UUID) (domain.Role, error) {
	var role string
	query := `SELECT ro.name FROM users u JOIN roles ro ON ro.id = u.role_id WHERE u.id = $1`
	if err := sqlx.GetContext(ctx, r.q(ctx), &role, query, userID); err != nil {
		return "", translateError(err)
	}
	return domain.Role(role), nil
}

func (r *userRepository) GetRoleIDByName(ctx context.Context, role domain.Role) (uuid.UUID, error) {
	var id uuid.UUID
	if err := sqlx.GetContext(ctx, r.q(ctx), &id, `SELECT id FROM roles WHERE name = $1`, string(role)); err != nil {
		return uuid.Nil, translateError(err)
	}
	return id, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID, roleID uuid.UUID) error {
	res, err := r.q(ctx).ExecContext(ctx, `UPDATE users SET role_id = $1 WHERE id = $2`, roleID, userID)
	if err != nil {
		return translateError(err)
	}
	return requireAffected("userRepository.UpdateRole", res)
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	query, args, err := goqu.Dialect(dialectPostgres).
		From(goqu.T("users").As("u")).
		Join(goqu.T("roles").As("ro"), goqu.On(goqu.I("ro.id").Eq(goqu.I("u.role_id")))).
		Select(
			goqu.I("u.id"), goqu.I("u.login"), goqu.I("u.password_hash"), goqu.I("u.role_id"),
			goqu.I("ro.name").As("role"), goqu.I("u.department_id"), goqu.I("u.first_name"),
			goqu.I("u.last_name"), goqu.I("u.pesel"), goqu.I("u.phone_number"), goqu.I("u.email"),
			goqu.I("u.post_code"), goqu.I("u.city"), goqu.I("u.street"), goqu.I("u.house_number"),
			goqu.COALESCE(goqu.I("u.apartment_number"), "").As("apartment_number"), goqu.I("u.created_on"),
		).
		Where(goqu.I("ro.name").Eq(string(role))).
		Order(goqu.I("u.created_on").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}
	logger.DatabaseCall("userRepository.ListByRole", query)

	var rows []userRow
	if err := sqlx.SelectContext(ctx, r.q(ctx), &rows, query, args...); err != nil {
		return nil, translateError(err)
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}
