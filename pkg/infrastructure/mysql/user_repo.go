package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"marketplace/pkg/domain/model"
)

type userRepository struct {
	db database
}

type userRow struct {
	ID             uuid.UUID `db:"id"`
	Username       string    `db:"username"`
	PasswordHashed string    `db:"password_hashed"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r userRow) toModel() model.User {
	return model.User{
		ID:             r.ID,
		Username:       r.Username,
		HashedPassword: r.PasswordHashed,
		CreatedAt:      r.CreatedAt.UTC(),
	}
}

func (r *userRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	const query = "INSERT INTO users (id, username, password_hashed, created_at) VALUES (?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.HashedPassword, user.CreatedAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return model.ErrUsernameTaken
		}
		return wrapStorageErr(err, "insert user")
	}
	return nil
}

func (r *userRepository) Find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *userRepository) findBy(ctx context.Context, column string, arg interface{}) (*model.User, error) {
	var row userRow
	query := "SELECT id, username, password_hashed, created_at FROM users WHERE " + column + " = ?"
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, wrapStorageErr(err, "find user")
	}
	user := row.toModel()
	return &user, nil
}
