package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrInvalidRole   = errors.New("user role is invalid")
)

// Role controls access to privileged order views.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a bookstore account.
type User struct {
	ID        int64
	Username  string
	Email     string
	FullName  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a user ensuring required invariants.
func NewUser(username, email string) (*User, error) {
	user := &User{Role: RoleUser}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// SetEmail validates the address when present.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetRole accepts only known roles.
func (u *User) SetRole(role Role) error {
	switch role {
	case RoleUser, RoleAdmin:
		u.Role = role
		return nil
	default:
		return ErrInvalidRole
	}
}

// IsAdmin reports whether the user may use privileged operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return u.SetRole(u.Role)
}
