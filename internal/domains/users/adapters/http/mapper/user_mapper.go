package mapper

import (
	"time"

	userdomain "github.com/bookworks/bookstore-api/internal/domains/users/domain"
)

// User represents the transport-level user payload.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MutationUser carries the writable user fields.
type MutationUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// ToDomainUser converts a transport payload to its domain counterpart.
func ToDomainUser(payload MutationUser) (*userdomain.User, error) {
	user, err := userdomain.NewUser(payload.Username, payload.Email)
	if err != nil {
		return nil, err
	}
	user.FullName = payload.FullName
	if payload.Role != "" {
		if err := user.SetRole(userdomain.Role(payload.Role)); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
