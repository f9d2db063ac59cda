package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/creditmeter/internal/domain"
)

//go:generate mockgen -source=txmanager.go -destination=mock_txmanager.go -package=pg

type TransactionalFn func(ctx context.Context) error

type TXManager interface {
	Begin(ctx context.Context, fn TransactionalFn) error
}

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

type TxManager struct {
	pool Pool
}

func NewTXManager(pool Pool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin runs fn inside a transaction. A Begin nested in another joins the
// outer transaction, so the outermost call decides commit or rollback.
func (m *TxManager) Begin(ctx context.Context, fn TransactionalFn) (err error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return Classify(fmt.Errorf("can't begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			zap.L().Error("failed to rollback transaction", zap.Error(rbErr))
		}
		return Classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Classify(fmt.Errorf("can't commit transaction: %w", err))
	}
	return nil
}

// Classify maps aborts that the caller may retry as a whole onto
// domain.ErrConcurrencyConflict, keeping the driver error in the chain.
func Classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected:
			return fmt.Errorf("%w: %w", domain.ErrConcurrencyConflict, err)
		}
	}
	return err
}

// IsUniqueViolation reports a 23505 error, optionally for a given constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
