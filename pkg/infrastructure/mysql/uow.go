package mysql

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"marketplace/pkg/domain/model"
)

// database is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx, so the
// repositories can run both inside and outside a transaction.
type database interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

var _ model.UnitOfWork = &UnitOfWork{}

type UnitOfWork struct {
	db *sqlx.DB
}

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(model.RepositoryProvider) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapStorageErr(err, "begin transaction")
	}

	if err := fn(&repositoryProvider{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.WithError(rbErr).Error("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapStorageErr(err, "commit transaction")
	}
	return nil
}

var _ model.RepositoryProvider = &repositoryProvider{}

type repositoryProvider struct {
	db database
}

func (p *repositoryProvider) Users() model.UserRepository {
	return &userRepository{db: p.db}
}

func (p *repositoryProvider) Products() model.ProductRepository {
	return &productRepository{db: p.db}
}

func (p *repositoryProvider) Categories() model.CategoryRepository {
	return &categoryRepository{db: p.db}
}

func (p *repositoryProvider) Orders() model.OrderRepository {
	return &orderRepository{db: p.db}
}

func (p *repositoryProvider) Reviews() model.ReviewRepository {
	return &reviewRepository{db: p.db}
}
