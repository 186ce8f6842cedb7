package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/repository"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	codeUniqueViolation      = pq.ErrorCode("23505")
	codeForeignKeyViolation  = pq.ErrorCode("23503")
	codeExclusionViolation   = pq.ErrorCode("23P01")
	codeSerializationFailure = pq.ErrorCode("40001")
	codeDeadlockDetected     = pq.ErrorCode("40P01")
)

// translateError maps driver errors onto repository sentinels, keeping the
// original error in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case codeExclusionViolation:
		return fmt.Errorf("%w: %w", repository.ErrOverlap, err)
	case codeSerializationFailure, codeDeadlockDetected:
		return fmt.Errorf("%w: %w", repository.ErrConflict, err)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %w", repository.ErrDuplicate, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %w", repository.ErrReference, err)
	}
	return err
}

// requireAffected maps an update or delete that matched no row to ErrNotFound.
func requireAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	logger.DatabaseResult(op, n, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
