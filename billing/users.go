package billing

import (
	"context"
	"net/http"
	"net/url"
)

// UsersService manages staff accounts.
type UsersService struct {
	client *Client
}

// CreateUserRequest creates a staff account with an initial password.
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        Role   `json:"role" validate:"required,oneof=admin doctor billing_clerk"`
	FullName    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Specialty   string `json:"specialty,omitempty"`
}

// UpdateUserRequest carries a partial account update. Nil fields are
// left unchanged by the server.
type UpdateUserRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName    *string `json:"full_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Specialty   *string `json:"specialty,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// List returns all users, optionally filtered by role.
func (s *UsersService) List(ctx context.Context, role Role) ([]User, error) {
	query := url.Values{}
	if role != "" {
		query.Set("role", string(role))
	}
	var users []User
	if err := s.client.do(ctx, http.MethodGet, "/users", query, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns one user by id.
func (s *UsersService) Get(ctx context.Context, id string) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create adds a staff account.
func (s *UsersService) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var user User
	if err := s.client.do(ctx, http.MethodPost, "/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update to a user.
func (s *UsersService) Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var user User
	if err := s.client.do(ctx, http.MethodPut, "/users/"+id, nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user.
func (s *UsersService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil)
}
