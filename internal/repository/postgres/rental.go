package postgres

import (
	"context"
	"fmt"
	"time"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const dialectPostgres = "postgres"

const selectRental = `SELECT r.id, r.start_date, r.end_date, r.client_id, r.renter_id, r.receiver_id,
	r.vehicle_id, r.rent_status_id, s.name AS status
	FROM rents r JOIN rent_statuses s ON s.id = r.rent_status_id`

type rentalRow struct {
	ID         uuid.UUID     `db:"id"`
	StartDate  time.Time     `db:"start_date"`
	EndDate    time.Time     `db:"end_date"`
	ClientID   uuid.UUID     `db:"client_id"`
	RenterID   uuid.NullUUID `db:"renter_id"`
	ReceiverID uuid.NullUUID `db:"receiver_id"`
	VehicleID  uuid.UUID     `db:"vehicle_id"`
	StatusID   uuid.UUID     `db:"rent_status_id"`
	Status     string        `db:"status"`
}

func (row rentalRow) toDomain() domain.Rental {
	return domain.Rental{
		ID:         row.ID,
		StartDate:  row.StartDate,
		EndDate:    row.EndDate,
		ClientID:   row.ClientID,
		RenterID:   uuidPtr(row.RenterID),
		ReceiverID: uuidPtr(row.ReceiverID),
		VehicleID:  row.VehicleID,
		StatusID:   row.StatusID,
		Status:     domain.RentalStatus(row.Status),
	}
}

type rentalRepository struct {
	db Queryer
}

func NewRentalRepository(db *sqlx.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) q(ctx context.Context) Queryer {
	return QueryerFromContext(ctx, r.db)
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	logger.EnterMethod("rentalRepository.Create", "vehicleID", rt.VehicleID, "clientID", rt.ClientID)
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	query := `INSERT INTO rents (id, start_date, end_date, client_id, vehicle_id, rent_status_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := r.q(ctx).ExecContext(ctx, query, rt.ID, rt.StartDate, rt.EndDate, rt.ClientID, rt.VehicleID, rt.StatusID, time.Now().UTC())
	if err != nil {
		err = translateError(err)
		logger.ExitMethodWithError("rentalRepository.Create", err, "vehicleID", rt.VehicleID)
		return err
	}
	logger.ExitMethod("rentalRepository.Create", "rentalID", rt.ID)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	return r.get(ctx, selectRental+` WHERE r.id = $1`, id)
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	return r.get(ctx, selectRental+` WHERE r.id = $1 FOR UPDATE OF r`, id)
}

func (r *rentalRepository) get(ctx context.Context, query string, id uuid.UUID) (*domain.Rental, error) {
	var row rentalRow
	if err := sqlx.GetContext(ctx, r.q(ctx), &row, query, id); err != nil {
		return nil, translateError(err)
	}
	rt := row.toDomain()
	return &rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental, expectedStatusID uuid.UUID) error {
	logger.EnterMethod("rentalRepository.Update", "rentalID", rt.ID, "status", rt.Status)
	query := `UPDATE rents SET end_date=$1, renter_id=$2, receiver_id=$3, rent_status_id=$4, updated_on=$5
	          WHERE id=$6 AND rent_status_id=$7`
	res, err := r.q(ctx).ExecContext(ctx, query, rt.EndDate, nullUUID(rt.RenterID), nullUUID(rt.ReceiverID), rt.StatusID, time.Now().UTC(), rt.ID, expectedStatusID)
	if err != nil {
		err = translateError(err)
		logger.ExitMethodWithError("rentalRepository.Update", err, "rentalID", rt.ID)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("rentalRepository.Update", n, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("rental %s: %w", rt.ID, repository.ErrConflict)
	}
	logger.ExitMethod("rentalRepository.Update", "rentalID", rt.ID)
	return nil
}

func (r *rentalRepository) GetStatusIDByName(ctx context.Context, status domain.RentalStatus) (uuid.UUID, error) {
	var id uuid.UUID
	err := sqlx.GetContext(ctx, r.q(ctx), &id, `SELECT id FROM rent_statuses WHERE name = $1`, string(status))
	if err != nil {
		return uuid.Nil, translateError(err)
	}
	return id, nil
}

func (r *rentalRepository) GetDepartmentID(ctx context.Context, rentalID uuid.UUID) (uuid.UUID, error) {
	var id uuid.NullUUID
	query := `SELECT v.department_id FROM rents r JOIN vehicles v ON v.id = r.vehicle_id WHERE r.id = $1`
	if err := sqlx.GetContext(ctx, r.q(ctx), &id, query, rentalID); err != nil {
		return uuid.Nil, translateError(err)
	}
	if !id.Valid {
		return uuid.Nil, repository.ErrNotFound
	}
	return id.UUID, nil
}

// ListOverlapping returns the non-archived rentals of the vehicle whose range
// intersects [start, end).
func (r *rentalRepository) ListOverlapping(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) ([]domain.Rental, error) {
	ds := rentalDataset().Where(
		goqu.I("r.vehicle_id").Eq(vehicleID.String()),
		goqu.I("r.start_date").Lt(end),
		goqu.I("r.end_date").Gt(start),
		goqu.I("s.name").Neq(string(domain.RentalStatusArchived)),
	)
	return r.list(ctx, "rentalRepository.ListOverlapping", ds)
}

func (r *rentalRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID, archived bool) ([]domain.Rental, error) {
	ds := rentalDataset().
		Join(goqu.T("vehicles").As("v"), goqu.On(goqu.I("v.id").Eq(goqu.I("r.vehicle_id")))).
		Where(goqu.I("v.department_id").Eq(departmentID.String()), statusFilter(archived))
	return r.list(ctx, "rentalRepository.ListByDepartment", ds)
}

func (r *rentalRepository) ListByClient(ctx context.Context, clientID uuid.UUID, archived bool) ([]domain.Rental, error) {
	ds := rentalDataset().Where(goqu.I("r.client_id").Eq(clientID.String()), statusFilter(archived))
	return r.list(ctx, "rentalRepository.ListByClient", ds)
}

// ListOverdue returns issued rentals whose agreed end date has passed.
func (r *rentalRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	ds := rentalDataset().Where(
		goqu.I("s.name").Eq(string(domain.RentalStatusActive)),
		goqu.I("r.end_date").Lt(now),
	)
	return r.list(ctx, "rentalRepository.ListOverdue", ds)
}

func (r *rentalRepository) list(ctx context.Context, op string, ds *goqu.SelectDataset) ([]domain.Rental, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}
	logger.DatabaseCall(op, query)

	var rows []rentalRow
	if err := sqlx.SelectContext(ctx, r.q(ctx), &rows, query, args...); err != nil {
		err = translateError(err)
		logger.DatabaseResult(op, 0, err)
		return nil, err
	}
	logger.DatabaseResult(op, int64(len(rows)), nil)

	rentals := make([]domain.Rental, 0, len(rows))
	for _, row := range rows {
		rentals = append(rentals, row.toDomain())
	}
	return rentals, nil
}

func rentalDataset() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(goqu.T("rents").As("r")).
		Join(goqu.T("rent_statuses").As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("r.rent_status_id")))).
		Select(
			goqu.I("r.id"), goqu.I("r.start_date"), goqu.I("r.end_date"), goqu.I("r.client_id"),
			goqu.I("r.renter_id"), goqu.I("r.receiver_id"), goqu.I("r.vehicle_id"),
			goqu.I("r.rent_status_id"), goqu.I("s.name").As("status"),
		).
		Order(goqu.I("r.start_date").Asc(), goqu.I("r.id").Asc())
}

// statusFilter selects archived rentals, or the open (Reserved and Active) ones.
func statusFilter(archived bool) goqu.Expression {
	if archived {
		return goqu.I("s.name").Eq(string(domain.RentalStatusArchived))
	}
	return goqu.I("s.name").In(string(domain.RentalStatusReserved), string(domain.RentalStatusActive))
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
