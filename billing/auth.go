package billing

import (
	"context"
	"net/http"
)

// AuthService handles credential exchange and profile lookups.
type AuthService struct {
	client *Client
}

// LoginRequest carries staff credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the successful credential exchange payload.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// RegisterRequest creates a new staff account.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        Role   `json:"role" validate:"required,oneof=admin doctor billing_clerk"`
	FullName    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Specialty   string `json:"specialty,omitempty"`
}

// Login exchanges credentials for a bearer token. On success the session
// becomes Authenticated and the token is persisted write-through; on
// failure the session is left untouched and the error surfaces.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password}
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var resp LoginResponse
	if err := s.client.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if err := s.client.session.SetToken(resp.Token, &resp.User); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. It does not log the new account in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var user User
	if err := s.client.do(ctx, http.MethodPost, "/auth/register", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches the identity behind the current token.
func (s *AuthService) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout discards the session locally. The token is cleared from memory
// and persistent storage; no server call is made.
func (s *AuthService) Logout() error {
	return s.client.session.Clear()
}
