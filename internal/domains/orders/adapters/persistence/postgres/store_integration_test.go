//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	"github.com/bookworks/bookstore-api/internal/domains/orders/ports"
	"github.com/bookworks/bookstore-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("bookstore_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedBook(t *testing.T, db *gorm.DB, title string, price string, stock int) int64 {
	t.Helper()
	row := bookRow{Title: title, Price: decimal.RequireFromString(price), Stock: stock}
	require.NoError(t, db.Create(&row).Error)
	return row.ID
}

func seedUser(t *testing.T, db *gorm.DB, username string) int64 {
	t.Helper()
	row := userRow{Username: username}
	require.NoError(t, db.Create(&row).Error)
	return row.ID
}

func TestStore_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()

	userID := seedUser(t, db, "alice")

	order, err := domain.NewOrder(userID, "alice", "12 Baker Street")
	require.NoError(t, err)
	require.NoError(t, order.AddLine(1, "The Go Programming Language", decimal.RequireFromString("39.99"), 2))
	order.OrderNumber = "ORD-TEST0001"

	saved, err := store.Save(ctx, order)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "ORD-TEST0001", saved.OrderNumber)

	fetched, err := store.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, fetched.UserID)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "The Go Programming Language", fetched.Items[0].BookTitle)
	assert.True(t, fetched.TotalAmount.Equal(decimal.RequireFromString("79.98")))
}

func TestStore_SaveUpdatesStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()

	userID := seedUser(t, db, "bob")
	order, err := domain.NewOrder(userID, "bob", "3 Elm Court")
	require.NoError(t, err)
	order.OrderNumber = "ORD-TEST0002"
	saved, err := store.Save(ctx, order)
	require.NoError(t, err)

	require.NoError(t, saved.SetStatus(domain.StatusShipped))
	updated, err := store.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
}

func TestStore_ListQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	for i, userID := range []int64{alice, alice, bob} {
		order, err := domain.NewOrder(userID, "u", "addr")
		require.NoError(t, err)
		order.OrderNumber = "ORD-LIST000" + string(rune('0'+i))
		_, err = store.Save(ctx, order)
		require.NoError(t, err)
	}

	mine, err := store.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pending, err := store.ListByStatus(ctx, domain.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_LockByIDAndSaveStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()

	bookID := seedBook(t, db, "Clean Architecture", "31.50", 10)

	err := store.WithinTransaction(ctx, func(ctx context.Context) error {
		ref, err := store.LockByID(ctx, bookID)
		require.NoError(t, err)
		assert.Equal(t, 10, ref.Stock)
		assert.True(t, ref.Price.Equal(decimal.RequireFromString("31.50")))
		return store.SaveStock(ctx, bookID, ref.Stock-3)
	})
	require.NoError(t, err)

	ref, err := store.LockByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 7, ref.Stock)

	_, err = store.LockByID(ctx, 99999)
	assert.ErrorIs(t, err, ports.ErrBookNotFound)
}

func TestStore_TransactionRollsBackOnError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()

	bookID := seedBook(t, db, "Refactoring", "47.00", 5)

	err := store.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := store.SaveStock(ctx, bookID, 0); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	ref, err := store.LockByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 5, ref.Stock, "stock write must not survive a failed transaction")
}

func TestStore_UserDirectory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()

	id := seedUser(t, db, "carol")

	buyer, err := store.Users().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "carol", buyer.Username)

	_, err = store.Users().GetByID(ctx, 4242)
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}
