package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User é um usuário da aplicação, sempre vinculado a uma organização
type User struct {
	ID             int        `json:"id"`
	OrganizationID string     `json:"organization_id"`
	Name           string     `json:"name"`
	Lastname       string     `json:"lastname"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"password"`
	Active         bool       `json:"active"`
	RoleID         int        `json:"role_id"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

// UpdateUserRequest carrega as alterações parciais de um usuário
type UpdateUserRequest struct {
	ID       int     `json:"id"`
	Name     *string `json:"name,omitempty"`
	Lastname *string `json:"lastname,omitempty"`
	Email    *string `json:"email,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	RoleID   *int    `json:"role_id,omitempty"`
}

// Claims são as claims do JWT emitido no login
type Claims struct {
	UserID         int    `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Email          string `json:"email"`
	UserRoleID     int    `json:"user_role_id"`
	jwt.RegisteredClaims
}
