package model

import (
	"context"
	"errors"
)

var (
	// ErrTransactionConflict marks a transaction aborted by concurrent
	// modification (deadlock, lock wait timeout). The whole operation is
	// safe to retry from the start.
	ErrTransactionConflict = errors.New("transaction aborted by concurrent modification")

	// ErrStorageUnavailable marks a storage failure unrelated to user
	// input. Nothing was committed.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// RepositoryProvider exposes the repositories bound to one storage scope,
// either a plain connection or a running transaction.
type RepositoryProvider interface {
	Users() UserRepository
	Products() ProductRepository
	Categories() CategoryRepository
	Orders() OrderRepository
	Reviews() ReviewRepository
}

// UnitOfWork runs fn against a transactional repository scope. All writes
// made by fn take effect together on commit; any error returned by fn rolls
// every write back with no observable intermediate state.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(RepositoryProvider) error) error
}
