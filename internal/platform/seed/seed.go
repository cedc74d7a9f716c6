// Package seed loads a small sample catalog so a fresh install has data to browse.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/bookworks/bookstore-api/internal/domains/catalog/domain"
	catalogports "github.com/bookworks/bookstore-api/internal/domains/catalog/ports"
	userdomain "github.com/bookworks/bookstore-api/internal/domains/users/domain"
	userports "github.com/bookworks/bookstore-api/internal/domains/users/ports"
)

// Repositories groups the stores the seeder writes into.
type Repositories struct {
	Books      catalogports.BookRepository
	Authors    catalogports.AuthorRepository
	Categories catalogports.CategoryRepository
	Users      userports.Repository
}

type sampleBook struct {
	title       string
	description string
	isbn        string
	price       string
	stock       int
	author      string
	categories  []string
}

var sampleAuthors = []struct {
	name      string
	biography string
}{
	{"Alan A. A. Donovan", "Co-author of The Go Programming Language."},
	{"Martin Kleppmann", "Researcher and author on data-intensive systems."},
	{"Ursula K. Le Guin", "American author of speculative fiction."},
	{"Frank Herbert", "American science fiction writer best known for Dune."},
}

var sampleCategories = []struct {
	name        string
	description string
}{
	{"Programming", "Software construction and languages"},
	{"Databases", "Storage engines and data systems"},
	{"Science Fiction", "Speculative futures"},
	{"Fantasy", "Other worlds"},
}

var sampleBooks = []sampleBook{
	{"The Go Programming Language", "The definitive Go reference.", "978-0134190440", "39.99", 12, "Alan A. A. Donovan", []string{"Programming"}},
	{"Designing Data-Intensive Applications", "Reliable, scalable, maintainable systems.", "978-1449373320", "47.50", 8, "Martin Kleppmann", []string{"Programming", "Databases"}},
	{"A Wizard of Earthsea", "The first Earthsea novel.", "978-0547773742", "9.99", 20, "Ursula K. Le Guin", []string{"Fantasy"}},
	{"The Left Hand of Darkness", "A Hainish cycle novel.", "978-0441478125", "11.25", 6, "Ursula K. Le Guin", []string{"Science Fiction"}},
	{"Dune", "Arrakis, the desert planet.", "978-0441172719", "12.00", 15, "Frank Herbert", []string{"Science Fiction"}},
}

var sampleUsers = []struct {
	username string
	email    string
	fullName string
	role     userdomain.Role
}{
	{"admin", "admin@bookworks.dev", "Store Administrator", userdomain.RoleAdmin},
	{"reader", "reader@bookworks.dev", "Avid Reader", userdomain.RoleUser},
}

// Apply inserts the sample data set. It is a no-op when books already exist,
// so it is safe to run on every start.
func Apply(ctx context.Context, repos Repositories, logger *slog.Logger) error {
	existing, err := repos.Books.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list books: %w", err)
	}
	if len(existing) > 0 {
		if logger != nil {
			logger.Info("seed skipped, catalog already populated", slog.Int("books", len(existing)))
		}
		return nil
	}

	authorIDs := make(map[string]int64, len(sampleAuthors))
	for _, a := range sampleAuthors {
		author, err := catalogdomain.NewAuthor(a.name, a.biography)
		if err != nil {
			return fmt.Errorf("seed: author %q: %w", a.name, err)
		}
		saved, err := repos.Authors.Save(ctx, author)
		if err != nil {
			return fmt.Errorf("seed: save author %q: %w", a.name, err)
		}
		authorIDs[a.name] = saved.ID
	}

	categoryIDs := make(map[string]int64, len(sampleCategories))
	for _, c := range sampleCategories {
		category, err := catalogdomain.NewCategory(c.name, c.description)
		if err != nil {
			return fmt.Errorf("seed: category %q: %w", c.name, err)
		}
		saved, err := repos.Categories.Save(ctx, category)
		if err != nil {
			return fmt.Errorf("seed: save category %q: %w", c.name, err)
		}
		categoryIDs[c.name] = saved.ID
	}

	for _, b := range sampleBooks {
		price, err := decimal.NewFromString(b.price)
		if err != nil {
			return fmt.Errorf("seed: price for %q: %w", b.title, err)
		}
		book, err := catalogdomain.NewBook(b.title, price, b.stock, authorIDs[b.author])
		if err != nil {
			return fmt.Errorf("seed: book %q: %w", b.title, err)
		}
		book.Description = b.description
		book.ISBN = b.isbn
		book.AuthorName = b.author
		for _, name := range b.categories {
			book.CategoryIDs = append(book.CategoryIDs, categoryIDs[name])
		}
		if _, err := repos.Books.Save(ctx, book); err != nil {
			return fmt.Errorf("seed: save book %q: %w", b.title, err)
		}
	}

	for _, u := range sampleUsers {
		user, err := userdomain.NewUser(u.username, u.email)
		if err != nil {
			return fmt.Errorf("seed: user %q: %w", u.username, err)
		}
		user.FullName = u.fullName
		if err := user.SetRole(u.role); err != nil {
			return fmt.Errorf("seed: user %q: %w", u.username, err)
		}
		if _, err := repos.Users.Save(ctx, user); err != nil {
			return fmt.Errorf("seed: save user %q: %w", u.username, err)
		}
	}

	if logger != nil {
		logger.Info("sample data loaded",
			slog.Int("authors", len(sampleAuthors)),
			slog.Int("categories", len(sampleCategories)),
			slog.Int("books", len(sampleBooks)),
			slog.Int("users", len(sampleUsers)))
	}
	return nil
}
