package postgres

import (
	"context"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type departmentRepository struct {
	db Queryer
}

func NewDepartmentRepository(db *sqlx.DB) repository.DepartmentRepository {
	return &departmentRepository{db: db}
}

type departmentRow struct {
	ID          uuid.UUID     `db:"id"`
	Name        string        `db:"name"`
	ManagerID   uuid.NullUUID `db:"manager_id"`
	City        string        `db:"city"`
	Street      string        `db:"street"`
	HouseNumber string        `db:"house_number"`
	PostCode    string        `db:"post_code"`
}

func (row departmentRow) toDomain() domain.Department {
	return domain.Department{
		ID:        row.ID,
		Name:      row.Name,
		ManagerID: row.ManagerID.UUID,
		Address: domain.Address{
			PostCode:    row.PostCode,
			City:        row.City,
			Street:      row.Street,
			HouseNumber: row.HouseNumber,
		},
	}
}

const selectDepartment = `SELECT id, name, manager_id, city, street, house_number, post_code FROM departments`

func (r *departmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	q := QueryerFromContext(ctx, r.db)

	var row departmentRow
	if err := sqlx.GetContext(ctx, q, &row, selectDepartment+` WHERE id = $1`, id); err != nil {
		return nil, translateError(err)
	}

	var employees []uuid.UUID
	query := `SELECT id FROM users WHERE department_id = $1 ORDER BY created_on, id`
	if err := sqlx.SelectContext(ctx, q, &employees, query, id); err != nil {
		return nil, translateError(err)
	}

	dept := row.toDomain()
	dept.EmployeeIDs = employees
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var rows []departmentRow
	if err := sqlx.SelectContext(ctx, QueryerFromContext(ctx, r.db), &rows, selectDepartment+` ORDER BY name, id`); err != nil {
		return nil, translateError(err)
	}
	depts := make([]domain.Department, 0, len(rows))
	for _, row := range rows {
		depts = append(depts, row.toDomain())
	}
	return depts, nil
}

func (r *departmentRepository) ListIDsByStaffMember(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT id FROM departments WHERE manager_id = $1
	          UNION
	          SELECT department_id FROM users WHERE id = $1 AND department_id IS NOT NULL`
	var ids []uuid.UUID
	if err := sqlx.SelectContext(ctx, QueryerFromContext(ctx, r.db), &ids, query, userID); err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}
