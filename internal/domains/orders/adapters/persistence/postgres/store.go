package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	"github.com/bookworks/bookstore-api/internal/domains/orders/ports"
)

var (
	_ ports.Repository  = (*Store)(nil)
	_ ports.BookCatalog = (*Store)(nil)
	_ ports.Transactor  = (*Store)(nil)
)

type txKey struct{}

// Store persists orders in PostgreSQL using GORM and exposes the catalog and
// user lookups the orders context needs against the shared schema.
type Store struct {
	db *gorm.DB
}

// NewStore wires a PostgreSQL-backed store. Caller manages DB lifecycle.
func NewStore(db *gorm.DB) *Store {
	store := &Store{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return store
}

// WithinTransaction runs fn inside one database transaction. The transaction
// handle travels in the context so every port call joins the same unit.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the ambient transaction when one is open.
func (s *Store) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID              int64             `gorm:"primaryKey;column:id"`
	OrderNumber     string            `gorm:"column:order_number;uniqueIndex"`
	UserID          int64             `gorm:"column:user_id;index"`
	Username        string            `gorm:"column:username"`
	ShippingAddress string            `gorm:"column:shipping_address"`
	Status          string            `gorm:"column:status;type:varchar(32);index"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2)"`
	Items           []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;index"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// orderItemRecord rows live and die with their order.
type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	BookID    int64           `gorm:"column:book_id;index"`
	BookTitle string          `gorm:"column:book_title"`
	Quantity  int             `gorm:"column:quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// bookRow is the narrow projection of the catalog's books table.
type bookRow struct {
	ID    int64           `gorm:"primaryKey;column:id"`
	Title string          `gorm:"column:title"`
	Price decimal.Decimal `gorm:"column:price"`
	Stock int             `gorm:"column:stock"`
}

func (bookRow) TableName() string { return "books" }

type userRow struct {
	ID       int64  `gorm:"primaryKey;column:id"`
	Username string `gorm:"column:username"`
}

func (userRow) TableName() string { return "users" }

// Save inserts a new order with its items or updates the order row of an
// existing one. Items are immutable after creation and are never rewritten.
func (s *Store) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	db := s.conn(ctx)
	if record.ID == 0 {
		if err := db.Create(&record).Error; err != nil {
			return nil, err
		}
	} else {
		updates := map[string]any{
			"status":     record.Status,
			"updated_at": gorm.Expr("NOW()"),
		}
		result := db.Model(&orderRecord{}).Where("id = ?", record.ID).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ports.ErrNotFound
		}
	}
	return s.GetByID(ctx, record.ID)
}

// GetByID fetches an order and its items.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := s.conn(ctx).Preload("Items").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByUser returns one user's orders, newest first.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.listWhere(ctx, "user_id = ?", userID)
}

// ListByStatus returns orders currently in the given status.
func (s *Store) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	return s.listWhere(ctx, "status = ?", string(status))
}

// List returns all orders.
func (s *Store) List(ctx context.Context) ([]*domain.Order, error) {
	return s.listWhere(ctx, "")
}

func (s *Store) listWhere(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	db := s.conn(ctx).Preload("Items").Order("created_at DESC")
	if query != "" {
		db = db.Where(query, args...)
	}
	var records []orderRecord
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// LockByID reads a book row under FOR UPDATE so concurrent reservations on
// the same book serialize until the surrounding transaction ends.
func (s *Store) LockByID(ctx context.Context, id int64) (*ports.BookRef, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var row bookRow
	if err := s.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrBookNotFound
		}
		return nil, err
	}
	return &ports.BookRef{ID: row.ID, Title: row.Title, Price: row.Price, Stock: row.Stock}, nil
}

// SaveStock writes the new stock level back to the locked book row.
func (s *Store) SaveStock(ctx context.Context, id int64, stock int) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	result := s.conn(ctx).Model(&bookRow{}).Where("id = ?", id).
		Updates(map[string]any{"stock": stock, "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrBookNotFound
	}
	return nil
}

// Users exposes the buyer lookup side of the shared schema.
func (s *Store) Users() ports.UserDirectory {
	return userDirectory{store: s}
}

type userDirectory struct {
	store *Store
}

var _ ports.UserDirectory = userDirectory{}

func (d userDirectory) GetByID(ctx context.Context, id int64) (*ports.Buyer, error) {
	if err := d.store.ensureDB(); err != nil {
		return nil, err
	}
	var row userRow
	if err := d.store.conn(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrUserNotFound
		}
		return nil, err
	}
	return &ports.Buyer{ID: row.ID, Username: row.Username}, nil
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres order store not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	record := orderRecord{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID,
		Username:        order.Username,
		ShippingAddress: order.ShippingAddress,
		Status:          string(order.Status),
		TotalAmount:     order.TotalAmount,
	}
	for _, item := range order.Items {
		record.Items = append(record.Items, orderItemRecord{
			ID:        item.ID,
			BookID:    item.BookID,
			BookTitle: item.BookTitle,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return record
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:              r.ID,
		OrderNumber:     r.OrderNumber,
		UserID:          r.UserID,
		Username:        r.Username,
		ShippingAddress: r.ShippingAddress,
		Status:          domain.Status(r.Status),
		TotalAmount:     r.TotalAmount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        item.ID,
			BookID:    item.BookID,
			BookTitle: item.BookTitle,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return order
}
