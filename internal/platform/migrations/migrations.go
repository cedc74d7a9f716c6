package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for all bounded contexts in dependency order.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&authorRecord{},
		&categoryRecord{},
		&bookRecord{},
		&userRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Book schema mirrors the catalog Postgres adapter.
type bookRecord struct {
	ID              int64           `gorm:"primaryKey;column:id"`
	Title           string          `gorm:"column:title;index"`
	Description     string          `gorm:"column:description"`
	ISBN            string          `gorm:"column:isbn"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Stock           int             `gorm:"column:stock"`
	PublicationDate *time.Time      `gorm:"column:publication_date"`
	ImageURL        string          `gorm:"column:image_url"`
	AuthorID        int64           `gorm:"column:author_id;index"`
	AuthorName      string          `gorm:"column:author_name"`
	CategoryIDs     pq.Int64Array   `gorm:"column:category_ids;type:bigint[]"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (bookRecord) TableName() string { return "books" }

type authorRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;index"`
	Biography string    `gorm:"column:biography"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (authorRecord) TableName() string { return "authors" }

type categoryRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name;index"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	Email     string    `gorm:"column:email"`
	FullName  string    `gorm:"column:full_name"`
	Role      string    `gorm:"column:role;type:varchar(16)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID              int64           `gorm:"primaryKey;column:id"`
	OrderNumber     string          `gorm:"column:order_number;uniqueIndex"`
	UserID          int64           `gorm:"column:user_id;index"`
	Username        string          `gorm:"column:username"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	Status          string          `gorm:"column:status;type:varchar(32);index"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)"`
	CreatedAt       time.Time       `gorm:"column:created_at;index"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

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
