package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookworks/bookstore-api/internal/domains/users/adapters/memory"
	"github.com/bookworks/bookstore-api/internal/domains/users/domain"
	"github.com/bookworks/bookstore-api/internal/domains/users/ports"
)

func TestCreateUser(t *testing.T) {
	svc := NewService(memory.NewRepository())

	user, err := domain.NewUser("alice", "alice@example.com")
	require.NoError(t, err)
	created, err := svc.CreateUser(context.Background(), user)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "alice", created.Username)
	require.Equal(t, domain.RoleUser, created.Role)

	byName, err := svc.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := domain.NewUser("", "a@b")
	require.ErrorIs(t, err, domain.ErrEmptyUsername)

	user := &domain.User{Username: "bob", Email: "not-an-email"}
	_, err = svc.CreateUser(context.Background(), user)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := NewService(memory.NewRepository())
	user, err := domain.NewUser("carol", "carol@example.com")
	require.NoError(t, err)
	created, err := svc.CreateUser(context.Background(), user)
	require.NoError(t, err)

	updated := &domain.User{Username: "carol", Email: "carol@example.com", FullName: "Carol C", Role: domain.RoleAdmin}
	saved, err := svc.Update(context.Background(), created.ID, updated)
	require.NoError(t, err)
	require.True(t, saved.IsAdmin())
	require.Equal(t, created.ID, saved.ID)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.GetByID(context.Background(), created.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
