package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyAuthorName   = errors.New("author name is required")
	ErrEmptyCategoryName = errors.New("category name is required")
)

// Author groups books under a writer.
type Author struct {
	ID        int64
	Name      string
	Biography string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewAuthor(name, biography string) (*Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyAuthorName
	}
	return &Author{Name: name, Biography: strings.TrimSpace(biography)}, nil
}

// Category is a catalog shelving label. Books may carry several.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}
	return &Category{Name: name, Description: strings.TrimSpace(description)}, nil
}
