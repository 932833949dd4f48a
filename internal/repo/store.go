package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

// Repos bundles one repository per record set, all bound to the same
// underlying connection. Inside Store.InTx every repo runs on the same
// transaction, so reads and the eventual commit share one snapshot.
type Repos struct {
	Users    UserRepo
	Rides    RideRepo
	Requests RequestRepo
}

// Store owns the connection pool and hands out repositories, either bound to
// the pool for plain reads or bound to a single serializable transaction for
// reservation mutations.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store backed by the provided pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Repos returns pool-bound repositories for operations that need no
// multi-record atomicity. Each call runs on whatever connection the pool
// hands out.
func (s *Store) Repos() Repos {
	return newRepos(s.pool)
}

// InTx runs fn inside a single serializable transaction and commits it if fn
// returns nil. The transaction is rolled back on any error, panic, or context
// cancellation, so no partial writes ever become visible.
//
// Serialization failures (two transactions racing on the same ride's seats)
// and unique-index violations surface as domain.ErrConflict. The losing
// caller decides whether to retry; InTx never retries on its own.
func (s *Store) InTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("repo.Store.InTx: begin: %w", err)
	}
	// Rollback after a successful commit is a harmless no-op; keeping it in a
	// defer guarantees release on every exit path, including panics.
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(newRepos(tx)); err != nil {
		return conflictOr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return conflictOr(fmt.Errorf("repo.Store.InTx: commit: %w", err))
	}
	return nil
}

func newRepos(db db) Repos {
	return Repos{
		Users:    NewUserRepo(db),
		Rides:    NewRideRepo(db),
		Requests: NewRequestRepo(db),
	}
}

// conflictOr maps Postgres concurrency errors onto domain.ErrConflict and
// passes everything else through unchanged.
//
// 40001 serialization_failure: the snapshot this transaction read from was
// invalidated by a concurrent commit — e.g. two hosts approving against the
// same remaining seat.
// 40P01 deadlock_detected: treated the same way; the transaction was aborted
// and the caller may retry.
func conflictOr(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return fmt.Errorf("transaction aborted by concurrent update: %w", domain.ErrConflict)
		case "23505":
			return fmt.Errorf("duplicate record: %w", domain.ErrConflict)
		}
	}
	return err
}
