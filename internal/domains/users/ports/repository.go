package ports

import (
	"context"
	"errors"

	"github.com/bookworks/bookstore-api/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")

// Repository persists bookstore accounts.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.User, error)
}
