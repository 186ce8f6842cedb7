package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rentalColumns = []string{"id", "start_date", "end_date", "client_id", "renter_id", "receiver_id", "vehicle_id", "rent_status_id", "status"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rental := &domain.Rental{
		ID:        uuid.New(),
		StartDate: start,
		EndDate:   start.Add(72 * time.Hour),
		ClientID:  uuid.New(),
		VehicleID: uuid.New(),
		StatusID:  uuid.New(),
		Status:    domain.RentalStatusReserved,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO rents").
			WithArgs(rental.ID, rental.StartDate, rental.EndDate, rental.ClientID, rental.VehicleID, rental.StatusID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, rental))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Exclusion Violation", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO rents").
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "rents_vehicle_period_excl"})

		err := repo.Create(ctx, rental)
		assert.ErrorIs(t, err, repository.ErrOverlap)
	})

	t.Run("Unknown Vehicle", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO rents").
			WillReturnError(&pq.Error{Code: "23503", Constraint: "rents_vehicle_id_fkey"})

		err := repo.Create(ctx, rental)
		assert.ErrorIs(t, err, repository.ErrReference)
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	id, client, renter, vehicle, status := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalColumns).
			AddRow(id.String(), start, start.Add(48*time.Hour), client.String(), renter.String(), nil, vehicle.String(), status.String(), "Active")
		mock.ExpectQuery(`FROM rents r JOIN rent_statuses s (.+) WHERE r.id = \$1$`).
			WithArgs(id).
			WillReturnRows(rows)

		rt, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, rt.ID)
		assert.Equal(t, domain.RentalStatusActive, rt.Status)
		require.NotNil(t, rt.RenterID)
		assert.Equal(t, renter, *rt.RenterID)
		assert.Nil(t, rt.ReceiverID)
	})

	t.Run("For Update Locks Row", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalColumns).
			AddRow(id.String(), start, start.Add(48*time.Hour), client.String(), nil, nil, vehicle.String(), status.String(), "Reserved")
		mock.ExpectQuery(`WHERE r.id = \$1 FOR UPDATE OF r`).
			WithArgs(id).
			WillReturnRows(rows)

		rt, err := repo.GetByIDForUpdate(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReserved, rt.Status)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("FROM rents").WithArgs(id).WillReturnRows(sqlmock.NewRows(rentalColumns))

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestRentalRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	renter := uuid.New()
	rental := &domain.Rental{
		ID:       uuid.New(),
		EndDate:  time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC),
		RenterID: &renter,
		StatusID: uuid.New(),
		Status:   domain.RentalStatusActive,
	}
	expected := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rents SET (.+) WHERE id=\$6 AND rent_status_id=\$7`).
			WithArgs(rental.EndDate, renter, nil, rental.StatusID, sqlmock.AnyArg(), rental.ID, expected).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, rental, expected))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Status Changed Underneath", func(t *testing.T) {
		mock.ExpectExec("UPDATE rents").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, rental, expected)
		assert.ErrorIs(t, err, repository.ErrConflict)
	})
}

func TestRentalRepository_Lookups(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Status ID", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT id FROM rent_statuses WHERE name = \$1`).
			WithArgs("Archived").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

		got, err := repo.GetStatusIDByName(ctx, domain.RentalStatusArchived)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("Missing Status", func(t *testing.T) {
		mock.ExpectQuery("FROM rent_statuses").WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetStatusIDByName(ctx, domain.RentalStatusActive)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("Department Of Rental", func(t *testing.T) {
		rentalID, deptID := uuid.New(), uuid.New()
		mock.ExpectQuery(`SELECT v.department_id FROM rents r JOIN vehicles v`).
			WithArgs(rentalID).
			WillReturnRows(sqlmock.NewRows([]string{"department_id"}).AddRow(deptID.String()))

		got, err := repo.GetDepartmentID(ctx, rentalID)
		require.NoError(t, err)
		assert.Equal(t, deptID, got)
	})

	t.Run("Vehicle Without Department", func(t *testing.T) {
		mock.ExpectQuery(`SELECT v.department_id`).
			WillReturnRows(sqlmock.NewRows([]string{"department_id"}).AddRow(nil))

		_, err := repo.GetDepartmentID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestRentalRepository_Lists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	vehicle, client, dept := uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	row := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows(rentalColumns).
			AddRow(uuid.NewString(), start, start.Add(24*time.Hour), client.String(), nil, nil, vehicle.String(), uuid.NewString(), status)
	}

	t.Run("Overlapping Is Vehicle Scoped And Skips Archived", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`"r"."vehicle_id" = '`+vehicle.String()+`'`) + `(.+)` + regexp.QuoteMeta(`"s"."name" != 'Archived'`)).
			WillReturnRows(row("Reserved"))

		rentals, err := repo.ListOverlapping(ctx, vehicle, start, start.Add(48*time.Hour))
		require.NoError(t, err)
		require.Len(t, rentals, 1)
		assert.Equal(t, vehicle, rentals[0].VehicleID)
	})

	t.Run("Client Open Rentals", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`"r"."client_id" = '`+client.String()+`'`) + `(.+)` + regexp.QuoteMeta(`IN ('Reserved', 'Active')`)).
			WillReturnRows(row("Active"))

		rentals, err := repo.ListByClient(ctx, client, false)
		require.NoError(t, err)
		assert.Len(t, rentals, 1)
	})

	t.Run("Department Archived Rentals", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`"v"."department_id" = '`+dept.String()+`'`) + `(.+)` + regexp.QuoteMeta(`"s"."name" = 'Archived'`)).
			WillReturnRows(row("Archived"))

		rentals, err := repo.ListByDepartment(ctx, dept, true)
		require.NoError(t, err)
		require.Len(t, rentals, 1)
		assert.Equal(t, domain.RentalStatusArchived, rentals[0].Status)
	})

	t.Run("Empty List", func(t *testing.T) {
		mock.ExpectQuery(`FROM "rents"`).WillReturnRows(sqlmock.NewRows(rentalColumns))

		rentals, err := repo.ListOverdue(ctx, start)
		require.NoError(t, err)
		assert.Empty(t, rentals)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
