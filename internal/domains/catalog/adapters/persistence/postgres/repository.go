package postgres

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bookworks/bookstore-api/internal/domains/catalog/domain"
	"github.com/bookworks/bookstore-api/internal/domains/catalog/ports"
)

var (
	_ ports.BookRepository     = (*Repository)(nil)
	_ ports.AuthorRepository   = authorView{}
	_ ports.CategoryRepository = categoryView{}
)

// Repository persists catalog aggregates in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&authorRecord{}, &categoryRecord{}, &bookRecord{}); err != nil {
			log.Printf("postgres repository migration failed: %v", err)
		}
	}
	return repo
}

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

func newBookRecord(b *domain.Book) bookRecord {
	return bookRecord{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		ISBN:            b.ISBN,
		Price:           b.Price,
		Stock:           b.Stock,
		PublicationDate: b.PublicationDate,
		ImageURL:        b.ImageURL,
		AuthorID:        b.AuthorID,
		AuthorName:      b.AuthorName,
		CategoryIDs:     copyInt64Array(b.CategoryIDs),
	}
}

// Save inserts or updates a book.
func (r *Repository) Save(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.New("cannot save nil book")
	}
	record := newBookRecord(book)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"title":            record.Title,
				"description":      record.Description,
				"isbn":             record.ISBN,
				"price":            record.Price,
				"stock":            record.Stock,
				"publication_date": record.PublicationDate,
				"image_url":        record.ImageURL,
				"author_id":        record.AuthorID,
				"author_name":      record.AuthorName,
				"category_ids":     record.CategoryIDs,
				"updated_at":       gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a book by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record bookRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrBookNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a book by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&bookRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrBookNotFound
	}
	return nil
}

// List returns every catalog entry.
func (r *Repository) List(ctx context.Context) ([]*domain.Book, error) {
	return r.findBooks(ctx, nil)
}

// SearchByTitle returns books whose title contains the query, case insensitive.
func (r *Repository) SearchByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(title)) + "%"
	return r.findBooks(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("lower(title) LIKE ?", pattern)
	})
}

// ListByAuthor returns the author's books.
func (r *Repository) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Book, error) {
	return r.findBooks(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	})
}

// ListByCategory returns books shelved under the category.
func (r *Repository) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Book, error) {
	return r.findBooks(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("? = ANY(category_ids)", categoryID)
	})
}

// ListInStock returns books with at least one copy available.
func (r *Repository) ListInStock(ctx context.Context) ([]*domain.Book, error) {
	return r.findBooks(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("stock > 0")
	})
}

func (r *Repository) findBooks(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx).Order("id")
	if scope != nil {
		db = scope(db)
	}
	var records []bookRecord
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}
	books := make([]*domain.Book, 0, len(records))
	for i := range records {
		books = append(books, records[i].toDomain())
	}
	return books, nil
}

// Authors exposes the repository through the author port. Book and author
// persistence share one DB handle but distinct interface method sets.
func (r *Repository) Authors() ports.AuthorRepository {
	return authorView{repo: r}
}

// Categories exposes the repository through the category port.
func (r *Repository) Categories() ports.CategoryRepository {
	return categoryView{repo: r}
}

type authorView struct {
	repo *Repository
}

func (v authorView) Save(ctx context.Context, author *domain.Author) (*domain.Author, error) {
	return v.repo.SaveAuthor(ctx, author)
}

func (v authorView) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	return v.repo.GetAuthorByID(ctx, id)
}

func (v authorView) Delete(ctx context.Context, id int64) error {
	return v.repo.DeleteAuthor(ctx, id)
}

func (v authorView) List(ctx context.Context) ([]*domain.Author, error) {
	return v.repo.ListAuthors(ctx)
}

type categoryView struct {
	repo *Repository
}

func (v categoryView) Save(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	return v.repo.SaveCategory(ctx, category)
}

func (v categoryView) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return v.repo.GetCategoryByID(ctx, id)
}

func (v categoryView) Delete(ctx context.Context, id int64) error {
	return v.repo.DeleteCategory(ctx, id)
}

func (v categoryView) List(ctx context.Context) ([]*domain.Category, error) {
	return v.repo.ListCategories(ctx)
}

// SaveAuthor inserts or updates an author.
func (r *Repository) SaveAuthor(ctx context.Context, author *domain.Author) (*domain.Author, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if author == nil {
		return nil, errors.New("cannot save nil author")
	}
	record := authorRecord{ID: author.ID, Name: author.Name, Biography: author.Biography}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"biography":  record.Biography,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetAuthorByID(ctx, record.ID)
}

// GetAuthorByID fetches an author by identifier.
func (r *Repository) GetAuthorByID(ctx context.Context, id int64) (*domain.Author, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record authorRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrAuthorNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// DeleteAuthor removes an author by identifier.
func (r *Repository) DeleteAuthor(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&authorRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrAuthorNotFound
	}
	return nil
}

// ListAuthors returns every author.
func (r *Repository) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []authorRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	authors := make([]*domain.Author, 0, len(records))
	for i := range records {
		authors = append(authors, records[i].toDomain())
	}
	return authors, nil
}

// SaveCategory inserts or updates a category.
func (r *Repository) SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.New("cannot save nil category")
	}
	record := categoryRecord{ID: category.ID, Name: category.Name, Description: category.Description}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"description": record.Description,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetCategoryByID(ctx, record.ID)
}

// GetCategoryByID fetches a category by identifier.
func (r *Repository) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record categoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCategoryNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// DeleteCategory removes a category by identifier.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&categoryRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrCategoryNotFound
	}
	return nil
}

// ListCategories returns every category.
func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(records))
	for i := range records {
		categories = append(categories, records[i].toDomain())
	}
	return categories, nil
}

func (r *bookRecord) toDomain() *domain.Book {
	if r == nil {
		return nil
	}
	book := &domain.Book{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ISBN:        r.ISBN,
		Price:       r.Price,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		AuthorID:    r.AuthorID,
		AuthorName:  r.AuthorName,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.PublicationDate != nil {
		date := *r.PublicationDate
		book.PublicationDate = &date
	}
	if len(r.CategoryIDs) > 0 {
		book.CategoryIDs = append([]int64{}, r.CategoryIDs...)
	}
	return book
}

func (r *authorRecord) toDomain() *domain.Author {
	if r == nil {
		return nil
	}
	return &domain.Author{
		ID:        r.ID,
		Name:      r.Name,
		Biography: r.Biography,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *categoryRecord) toDomain() *domain.Category {
	if r == nil {
		return nil
	}
	return &domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}

func copyInt64Array(values []int64) pq.Int64Array {
	if len(values) == 0 {
		return nil
	}
	dup := append([]int64{}, values...)
	return pq.Int64Array(dup)
}
