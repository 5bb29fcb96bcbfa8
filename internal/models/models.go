// Package models holds the request and response shapes of the product API.
package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// User is an account as the API returns and accepts it.
type User struct {
	ID        int64  `json:"id,omitempty" db:"id"`
	Username  string `json:"username" db:"username" validate:"required,min=3"`
	Email     string `json:"email" db:"email" validate:"required,email"`
	FirstName string `json:"first_name" db:"first_name" validate:"required"`
	LastName  string `json:"last_name" db:"last_name" validate:"required"`
	Password  string `json:"password,omitempty" db:"password"`
	Phone     string `json:"phone,omitempty" db:"phone"`
	IsActive  bool   `json:"is_active" db:"is_active"`
	CreatedAt string `json:"created_at,omitempty" db:"created_at"`
}

// NewUser returns a user with the API defaults applied.
func NewUser() User {
	return User{IsActive: true}
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// WithoutID returns a copy suitable as a create/update body.
func (u User) WithoutID() User {
	u.ID = 0
	return u
}

func (u User) Validate() error {
	return validationError("user", validate.Struct(u))
}

// Contact is an address book entry owned by a user.
type Contact struct {
	ID        int64  `json:"id,omitempty" db:"id"`
	FirstName string `json:"first_name" db:"first_name" validate:"required"`
	LastName  string `json:"last_name" db:"last_name" validate:"required"`
	Email     string `json:"email" db:"email" validate:"required,email"`
	Phone     string `json:"phone" db:"phone" validate:"required"`
	Address   string `json:"address,omitempty" db:"address"`
	Notes     string `json:"notes,omitempty" db:"notes"`
	CreatedAt string `json:"created_at,omitempty" db:"created_at"`
	UserID    int64  `json:"user_id" db:"user_id" validate:"required"`
}

func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Contact) WithoutID() Contact {
	c.ID = 0
	return c
}

func (c Contact) Validate() error {
	return validationError("contact", validate.Struct(c))
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	return validationError("login request", validate.Struct(r))
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// APIError is the error body returned for 4xx/5xx responses.
type APIError struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// Page is one page of a paginated collection.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page,omitempty"`
	Size  int `json:"size,omitempty"`
	Pages int `json:"pages,omitempty"`
}

// validationError flattens validator output into one readable error.
func validationError(kind string, err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid %s: %w", kind, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid %s: %s", kind, strings.Join(parts, ", "))
}
