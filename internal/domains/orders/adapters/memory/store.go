package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	"github.com/bookworks/bookstore-api/internal/domains/orders/ports"
)

var (
	_ ports.Repository    = (*Store)(nil)
	_ ports.BookCatalog   = (*Store)(nil)
	_ ports.UserDirectory = userView{}
	_ ports.Transactor    = (*Store)(nil)
)

type txKey struct{}

// Store is an in-memory adapter covering every port the orders context needs.
// WithinTransaction holds the store lock for the whole callback, which also
// serializes reservations the way the row lock does in Postgres.
type Store struct {
	mu          sync.Mutex
	books       map[int64]*ports.BookRef
	users       map[int64]*ports.Buyer
	orders      map[int64]*domain.Order
	nextOrderID int64
	nextItemID  int64
}

func NewStore() *Store {
	return &Store{
		books:  map[int64]*ports.BookRef{},
		users:  map[int64]*ports.Buyer{},
		orders: map[int64]*domain.Order{},
	}
}

// SeedBook registers a book the ledger can reserve against.
func (s *Store) SeedBook(book ports.BookRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := book
	s.books[book.ID] = &clone
}

// SeedUser registers an order owner.
func (s *Store) SeedUser(user ports.Buyer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := user
	s.users[user.ID] = &clone
}

// Reset drops every order, book and user. Contract tests use it to get a
// clean slate between provider states.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = map[int64]*ports.BookRef{}
	s.users = map[int64]*ports.Buyer{}
	s.orders = map[int64]*domain.Order{}
	s.nextOrderID = 0
	s.nextItemID = 0
}

// StockOf reports the current stock for test assertions.
func (s *Store) StockOf(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if book, ok := s.books[id]; ok {
		return book.Stock
	}
	return 0
}

// WithinTransaction snapshots mutable state and restores it when fn fails,
// giving the same all-or-nothing behavior as a database transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return errors.New("memory store does not support nested transactions")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	books, orders := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		s.books, s.orders = books, orders
		return err
	}
	return nil
}

func (s *Store) snapshot() (map[int64]*ports.BookRef, map[int64]*domain.Order) {
	books := make(map[int64]*ports.BookRef, len(s.books))
	for id, book := range s.books {
		clone := *book
		books[id] = &clone
	}
	orders := make(map[int64]*domain.Order, len(s.orders))
	for id, order := range s.orders {
		orders[id] = cloneOrder(order)
	}
	return books, orders
}

// lock takes the store lock unless the caller already holds it via
// WithinTransaction. Returns the matching unlock.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) LockByID(ctx context.Context, id int64) (*ports.BookRef, error) {
	defer s.lock(ctx)()
	book, ok := s.books[id]
	if !ok {
		return nil, ports.ErrBookNotFound
	}
	clone := *book
	return &clone, nil
}

func (s *Store) SaveStock(ctx context.Context, id int64, stock int) error {
	defer s.lock(ctx)()
	book, ok := s.books[id]
	if !ok {
		return ports.ErrBookNotFound
	}
	book.Stock = stock
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	defer s.lock(ctx)()
	order, ok := s.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (s *Store) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	defer s.lock(ctx)()
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	now := time.Now()
	if clone.ID == 0 {
		s.nextOrderID++
		clone.ID = s.nextOrderID
		clone.CreatedAt = now
	}
	for i := range clone.Items {
		if clone.Items[i].ID == 0 {
			s.nextItemID++
			clone.Items[i].ID = s.nextItemID
		}
	}
	clone.UpdatedAt = now
	s.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (s *Store) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.list(ctx, func(o *domain.Order) bool { return o.UserID == userID })
}

func (s *Store) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	return s.list(ctx, func(o *domain.Order) bool { return o.Status == status })
}

func (s *Store) List(ctx context.Context) ([]*domain.Order, error) {
	return s.list(ctx, func(*domain.Order) bool { return true })
}

func (s *Store) list(ctx context.Context, keep func(*domain.Order) bool) ([]*domain.Order, error) {
	defer s.lock(ctx)()
	result := make([]*domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if keep(order) {
			result = append(result, cloneOrder(order))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Users exposes the buyer lookup side of the store. Kept as a view because
// the repository already owns the GetByID name for orders.
func (s *Store) Users() ports.UserDirectory {
	return userView{store: s}
}

type userView struct {
	store *Store
}

func (v userView) GetByID(ctx context.Context, id int64) (*ports.Buyer, error) {
	return v.store.userByID(ctx, id)
}

func (s *Store) userByID(ctx context.Context, id int64) (*ports.Buyer, error) {
	defer s.lock(ctx)()
	user, ok := s.users[id]
	if !ok {
		return nil, ports.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.OrderItem(nil), order.Items...)
	return &clone
}
