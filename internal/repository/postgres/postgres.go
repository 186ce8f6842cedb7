package postgres

import (
	"carrotrent-backend/internal/repository"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
	*TransactionManager
	repository.UserRepository
	repository.DepartmentRepository
	repository.VehicleRepository
	repository.RentalRepository
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:                   db,
		TransactionManager:   NewTransactionManager(db),
		UserRepository:       NewUserRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		VehicleRepository:    NewVehicleRepository(db),
		RentalRepository:     NewRentalRepository(db),
	}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}
