package postgres

import (
	"context"
	"fmt"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type vehicleRow struct {
	ID               uuid.UUID           `db:"id"`
	ModelID          uuid.UUID           `db:"model_id"`
	Model            string              `db:"model"`
	Brand            string              `db:"brand"`
	FuelID           uuid.NullUUID       `db:"fuel_id"`
	Fuel             string              `db:"fuel"`
	DepartmentID     uuid.NullUUID       `db:"department_id"`
	Department       string              `db:"department"`
	Description      string              `db:"description"`
	Registration     string              `db:"registration"`
	VIN              string              `db:"vin"`
	Seats            int                 `db:"seats"`
	YearOfProduction int                 `db:"year_of_production"`
	PricePerDay      decimal.NullDecimal `db:"price_per_day"`
}

func (row vehicleRow) toDomain() domain.Vehicle {
	return domain.Vehicle{
		ID:               row.ID,
		ModelID:          row.ModelID,
		Model:            row.Model,
		Brand:            row.Brand,
		FuelID:           row.FuelID.UUID,
		Fuel:             row.Fuel,
		DepartmentID:     row.DepartmentID.UUID,
		Department:       row.Department,
		Description:      row.Description,
		Registration:     row.Registration,
		VIN:              row.VIN,
		Seats:            row.Seats,
		YearOfProduction: row.YearOfProduction,
		PricePerDay:      row.PricePerDay.Decimal,
	}
}

type vehicleRepository struct {
	db Queryer
}

func NewVehicleRepository(db *sqlx.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) q(ctx context.Context) Queryer {
	return QueryerFromContext(ctx, r.db)
}

func (r *vehicleRepository) GetSummary(ctx context.Context, id uuid.UUID) (*domain.VehicleSummary, error) {
	var row struct {
		ID               uuid.UUID     `db:"id"`
		DepartmentID     uuid.NullUUID `db:"department_id"`
		Brand            string        `db:"brand"`
		Model            string        `db:"model"`
		YearOfProduction int           `db:"year_of_production"`
	}
	query := `SELECT v.id, v.department_id, b.name AS brand, m.name AS model, v.year_of_production
	          FROM vehicles v
	          JOIN models m ON m.id = v.model_id
	          JOIN brands b ON b.id = m.brand_id
	          WHERE v.id = $1`
	if err := sqlx.GetContext(ctx, r.q(ctx), &row, query, id); err != nil {
		return nil, translateError(err)
	}
	return &domain.VehicleSummary{
		ID:               row.ID,
		DepartmentID:     row.DepartmentID.UUID,
		Brand:            row.Brand,
		Model:            row.Model,
		YearOfProduction: row.YearOfProduction,
	}, nil
}

// GetPricePerDay returns ErrNotFound when the vehicle has no price.
func (r *vehicleRepository) GetPricePerDay(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	var price decimal.NullDecimal
	query := `SELECT price_per_day FROM vehicles WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.q(ctx), &price, query, id); err != nil {
		return decimal.Zero, translateError(err)
	}
	if !price.Valid {
		return decimal.Zero, repository.ErrNotFound
	}
	return price.Decimal, nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	query, args, err := vehicleDataset().Where(goqu.I("v.id").Eq(id.String())).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("vehicleRepository.GetByID: build query: %w", err)
	}
	logger.DatabaseCall("vehicleRepository.GetByID", query)

	var row vehicleRow
	if err := sqlx.GetContext(ctx, r.q(ctx), &row, query, args...); err != nil {
		return nil, translateError(err)
	}
	v := row.toDomain()
	return &v, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	query, args, err := vehicleDataset().
		Where(vehicleConditions(filter)...).
		Order(goqu.I("b.name").Asc(), goqu.I("m.name").Asc(), goqu.I("v.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("vehicleRepository.List: build query: %w", err)
	}
	logger.DatabaseCall("vehicleRepository.List", query)

	var rows []vehicleRow
	if err := sqlx.SelectContext(ctx, r.q(ctx), &rows, query, args...); err != nil {
		return nil, translateError(err)
	}
	vehicles := make([]domain.Vehicle, 0, len(rows))
	for _, row := range rows {
		vehicles = append(vehicles, row.toDomain())
	}
	return vehicles, nil
}

// GetDepartmentID returns ErrNotFound for unknown vehicles and for vehicles
// not assigned to a department.
func (r *vehicleRepository) GetDepartmentID(ctx context.Context, vehicleID uuid.UUID) (uuid.UUID, error) {
	var id uuid.NullUUID
	if err := sqlx.GetContext(ctx, r.q(ctx), &id, `SELECT department_id FROM vehicles WHERE id = $1`, vehicleID); err != nil {
		return uuid.Nil, translateError(err)
	}
	if !id.Valid {
		return uuid.Nil, repository.ErrNotFound
	}
	return id.UUID, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	logger.EnterMethod("vehicleRepository.Create", "vin", v.VIN)
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	query := `INSERT INTO vehicles (id, model_id, department_id, fuel_id, year_of_production, registration, vin,
	          price_per_day, seats, description)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q(ctx).ExecContext(ctx, query, v.ID, v.ModelID, v.DepartmentID, v.FuelID, v.YearOfProduction,
		v.Registration, v.VIN, v.PricePerDay, v.Seats, v.Description)
	if err != nil {
		err = translateError(err)
		logger.ExitMethodWithError("vehicleRepository.Create", err, "vin", v.VIN)
		return err
	}
	logger.ExitMethod("vehicleRepository.Create", "vehicleID", v.ID)
	return nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET description = $1, price_per_day = $2, seats = $3, year_of_production = $4
	          WHERE id = $5`
	res, err := r.q(ctx).ExecContext(ctx, query, v.Description, v.PricePerDay, v.Seats, v.YearOfProduction, v.ID)
	if err != nil {
		return translateError(err)
	}
	return requireAffected("vehicleRepository.Update", res)
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q(ctx).ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return requireAffected("vehicleRepository.Delete", res)
}

func (r *vehicleRepository) FindTakenFields(ctx context.Context, vin, registration string) ([]string, error) {
	query := `SELECT field FROM (
	            SELECT 'registration' AS field FROM vehicles WHERE registration = $2
	            UNION SELECT 'vin' FROM vehicles WHERE vin = $1
	          ) taken ORDER BY field`
	var fields []string
	if err := sqlx.SelectContext(ctx, r.q(ctx), &fields, query, vin, registration); err != nil {
		return nil, translateError(err)
	}
	return fields, nil
}

func (r *vehicleRepository) ModelExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM models WHERE id = $1)`, id)
}

func (r *vehicleRepository) FuelExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM fuels WHERE id = $1)`, id)
}

func (r *vehicleRepository) exists(ctx context.Context, query string, id uuid.UUID) (bool, error) {
	var found bool
	if err := sqlx.GetContext(ctx, r.q(ctx), &found, query, id); err != nil {
		return false, translateError(err)
	}
	return found, nil
}

type catalogRow struct {
	ID      uuid.UUID     `db:"id"`
	Name    string        `db:"name"`
	BrandID uuid.NullUUID `db:"brand_id"`
}

func (r *vehicleRepository) GetFilterOptions(ctx context.Context) (*domain.VehicleFilterOptions, error) {
	brands, err := r.catalog(ctx, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		return nil, err
	}
	models, err := r.catalog(ctx, `SELECT id, name, brand_id FROM models ORDER BY name`)
	if err != nil {
		return nil, err
	}
	fuels, err := r.catalog(ctx, `SELECT id, name FROM fuels ORDER BY name`)
	if err != nil {
		return nil, err
	}
	departments, err := r.catalog(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}

	opts := &domain.VehicleFilterOptions{
		Brands:      entries(brands),
		Models:      make([]domain.ModelEntry, 0, len(models)),
		Fuels:       entries(fuels),
		Departments: entries(departments),
	}
	for _, m := range models {
		opts.Models = append(opts.Models, domain.ModelEntry{ID: m.ID, Name: m.Name, BrandID: m.BrandID.UUID})
	}
	return opts, nil
}

func (r *vehicleRepository) catalog(ctx context.Context, query string) ([]catalogRow, error) {
	var rows []catalogRow
	if err := sqlx.SelectContext(ctx, r.q(ctx), &rows, query); err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func entries(rows []catalogRow) []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CatalogEntry{ID: row.ID, Name: row.Name})
	}
	return out
}

func vehicleDataset() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(goqu.T("vehicles").As("v")).
		Join(goqu.T("models").As("m"), goqu.On(goqu.I("m.id").Eq(goqu.I("v.model_id")))).
		Join(goqu.T("brands").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("m.brand_id")))).
		LeftJoin(goqu.T("fuels").As("f"), goqu.On(goqu.I("f.id").Eq(goqu.I("v.fuel_id")))).
		LeftJoin(goqu.T("departments").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("v.department_id")))).
		Select(
			goqu.I("v.id"), goqu.I("v.model_id"), goqu.I("m.name").As("model"), goqu.I("b.name").As("brand"),
			goqu.I("v.fuel_id"), goqu.COALESCE(goqu.I("f.name"), "").As("fuel"),
			goqu.I("v.department_id"), goqu.COALESCE(goqu.I("d.name"), "").As("department"),
			goqu.I("v.description"), goqu.I("v.registration"), goqu.I("v.vin"), goqu.I("v.seats"),
			goqu.I("v.year_of_production"), goqu.I("v.price_per_day"),
		)
}

// vehicleConditions turns the set fields of filter into WHERE clauses.
// Seats matches vehicles with at least that many seats.
func vehicleConditions(filter domain.VehicleFilter) []goqu.Expression {
	var conds []goqu.Expression
	if filter.MinPrice != nil {
		conds = append(conds, goqu.I("v.price_per_day").Gte(filter.MinPrice.String()))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, goqu.I("v.price_per_day").Lte(filter.MaxPrice.String()))
	}
	if filter.Seats != nil {
		conds = append(conds, goqu.I("v.seats").Gte(*filter.Seats))
	}
	if filter.BrandID != nil {
		conds = append(conds, goqu.I("m.brand_id").Eq(filter.BrandID.String()))
	}
	if filter.ModelID != nil {
		conds = append(conds, goqu.I("v.model_id").Eq(filter.ModelID.String()))
	}
	if filter.FuelID != nil {
		conds = append(conds, goqu.I("v.fuel_id").Eq(filter.FuelID.String()))
	}
	if filter.DepartmentID != nil {
		conds = append(conds, goqu.I("v.department_id").Eq(filter.DepartmentID.String()))
	}
	return conds
}
